package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/term"
)

// Progress is a labelled mpb progress bar for one extraction stage. The bar
// is created on the first Update, when the stage knows its total.
type Progress struct {
	container   *mpb.Progress
	bar         *mpb.Bar
	enabled     bool
	label       string
	description string
}

var descLength = 24

// NewProgress creates a progress bar for the stage named label. It stays
// silent when disabled or when stderr is not a terminal.
func NewProgress(label string, enabled bool) *Progress {
	return &Progress{
		enabled: enabled && isTerminal(),
		label:   label,
	}
}

func (p *Progress) start(total int) {
	// Add space before progress bar
	fmt.Fprintln(os.Stderr)

	p.container = mpb.New(
		mpb.WithOutput(os.Stderr),
		mpb.WithWidth(64),
		mpb.WithRefreshRate(100*time.Millisecond),
	)

	p.bar = p.container.New(int64(total),
		mpb.BarStyle().Lbound("[").Filler("█").Tip("█").Padding("░").Rbound("]"),
		mpb.PrependDecorators(
			decor.Name(p.label, decor.WC{W: 12, C: decor.DindentRight}),
			decor.Any(func(decor.Statistics) string {
				if len(p.description) > descLength {
					return p.description[:descLength-2] + ".."
				}
				return p.description
			}, decor.WC{W: descLength, C: decor.DindentRight}),
			decor.CountersNoUnit("%d/%d", decor.WC{C: decor.DindentRight}),
		),
		mpb.AppendDecorators(
			decor.Percentage(),
		),
	)
}

// Update moves the bar to current out of total and shows description next
// to the label. It matches the progress callbacks of the export and
// database packages.
func (p *Progress) Update(current, total int, description string) {
	if !p.enabled {
		return
	}
	if p.bar == nil {
		p.start(total)
	}

	p.description = description
	p.bar.SetTotal(int64(total), false)
	p.bar.SetCurrent(int64(current))
}

// Finish completes the bar and waits for the final render
func (p *Progress) Finish() {
	if p.container == nil {
		return
	}

	p.bar.SetTotal(-1, true)
	p.container.Wait()

	// Add space after progress bar
	fmt.Fprintln(os.Stderr)
}

// isTerminal checks if stderr is a terminal (TTY)
func isTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
