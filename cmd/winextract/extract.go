package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"

	"github.com/jchantrell/winextract/internal/archive"
	"github.com/jchantrell/winextract/internal/cache"
	"github.com/jchantrell/winextract/internal/chunk"
	"github.com/jchantrell/winextract/internal/config"
	"github.com/jchantrell/winextract/internal/database"
	"github.com/jchantrell/winextract/internal/export"
	"github.com/jchantrell/winextract/internal/utils"
	"github.com/spf13/cobra"
)

type ExtractionStats struct {
	StartTime      time.Time
	EndTime        time.Time
	DecodeErrors   int
	ResolveErrors  int
	FilesWritten   int
	FilesSkipped   int
	BytesWritten   int64
	CatalogRows    int64
	CatalogWritten bool
}

var (
	forceCatalog bool
	noCatalog    bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract assets and build the metadata catalog",
	Long: `Extract decodes every recognized chunk of the archive, materializes the
selected assets and writes them below the output directory:

  pages/        texture pages as PNG
  sprites/      one directory per sprite holding its frames
  fonts/        font sheets and one PNG per glyph
  backgrounds/  background textures and their tiles
  sounds/       embedded and external audio

The archive's metadata is recorded in a SQLite catalog, by default in the
per-user cache directory. Use --force to rebuild an existing catalog.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		stats := &ExtractionStats{
			StartTime: time.Now(),
		}

		slog.Info("Opening archive", "path", cfg.Archive, "audio_groups", len(cfg.AudioGroups))

		a, err := openArchive()
		if err != nil {
			return err
		}

		if err := a.DecodeAll(); err != nil {
			slog.Warn("Some chunks failed to decode", "error", err)
			stats.DecodeErrors = countErrors(err)
		}

		g := a.General()
		if g == nil {
			return fmt.Errorf("archive has no usable GEN8 chunk")
		}

		slog.Info("Archive decoded",
			"name", g.DisplayName,
			"version", g.Version(),
			"chunks", len(a.Tags()),
			"size", utils.Number(int64(a.Size())))
		warnUnknownLayout(g)

		processingStartTime := time.Now()

		stats.ResolveErrors = resolveAssets(a)

		exporter := export.NewExporter(a, nil, cfg.Output)
		exporter.SoundDir = filepath.Dir(cfg.Archive)

		stages := []struct {
			kind string
			run  func(export.ProgressCallback) (export.Stats, error)
		}{
			{config.AssetPages, exporter.ExportPages},
			{config.AssetSprites, exporter.ExportSprites},
			{config.AssetFonts, exporter.ExportFonts},
			{config.AssetBackgrounds, exporter.ExportBackgrounds},
			{config.AssetSounds, exporter.ExportSounds},
		}

		for _, stage := range stages {
			if !cfg.Wants(stage.kind) {
				continue
			}

			select {
			case <-ctx.Done():
				slog.Warn("Extraction canceled")
				return fmt.Errorf("extraction canceled: %w", ctx.Err())
			default:
			}

			slog.Info("Exporting", "assets", stage.kind)
			progress := newStageProgress(stage.kind)
			s, err := stage.run(progress.Update)
			progress.Finish()
			if err != nil {
				return fmt.Errorf("exporting %s: %w", stage.kind, err)
			}

			stats.FilesWritten += s.Files
			stats.FilesSkipped += s.Skipped
			stats.BytesWritten += s.Bytes
		}

		if !noCatalog {
			rows, err := writeCatalog(ctx, a, g)
			if err != nil {
				return err
			}
			stats.CatalogRows = rows
			stats.CatalogWritten = true
		}

		stats.EndTime = time.Now()

		totalDuration := stats.EndTime.Sub(stats.StartTime)
		processingDuration := stats.EndTime.Sub(processingStartTime)

		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)
		totalMemoryMB := float64(memStats.Alloc) / 1024.0 / 1024.0

		var fileRate float64
		if seconds := processingDuration.Seconds(); seconds > 0 {
			fileRate = float64(stats.FilesWritten) / seconds
		}

		fmt.Printf("Game: %s (%s)\n", g.DisplayName, g.Version())
		fmt.Printf("Files written: %s\n", utils.Number(int64(stats.FilesWritten)))
		fmt.Printf("Files skipped: %s\n", utils.Number(int64(stats.FilesSkipped)))
		fmt.Printf("Bytes written: %s\n", utils.Bytes(stats.BytesWritten))
		fmt.Printf("Decode errors: %d\n", stats.DecodeErrors)
		fmt.Printf("Resolve errors: %d\n", stats.ResolveErrors)
		if stats.CatalogWritten {
			fmt.Printf("Catalog rows: %s\n", utils.Number(stats.CatalogRows))
		}
		fmt.Printf("Total duration: %s\n", utils.Duration(totalDuration))
		fmt.Printf("Export rate: %s files/sec\n", utils.Rate(fileRate))
		fmt.Printf("Memory usage: %.2fmb\n", totalMemoryMB)
		if stats.CatalogWritten {
			fmt.Println("Try running: winextract query --tables")
		}

		return nil
	},
}

func openArchive() (*archive.Archive, error) {
	a, err := archive.OpenFile(cfg.Archive, cfg.AudioGroups,
		archive.WithWorkers(cfg.Workers),
		archive.WithLogger(slog.Default()))
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	return a, nil
}

func warnUnknownLayout(g *chunk.General) {
	known, err := utils.IsKnownLayout(g.Version())
	if err != nil {
		slog.Warn("Could not parse engine version", "version", g.Version(), "error", err)
		return
	}
	if !known {
		slog.Warn("Archive was built by a newer engine, chunk layouts may differ",
			"version", g.Version(),
			"first_unknown", utils.FirstUnknownLayout)
	}
}

// resolveAssets materializes every selected asset kind whose chunks decoded.
// Failures are logged and counted so one broken kind does not stop the rest.
func resolveAssets(a *archive.Archive) int {
	needsPages := cfg.Wants(config.AssetPages) || cfg.Wants(config.AssetSprites) ||
		cfg.Wants(config.AssetFonts) || cfg.Wants(config.AssetBackgrounds)

	steps := []struct {
		kind    string
		wanted  bool
		needs   []chunk.Kind
		resolve func() error
	}{
		{config.AssetPages, needsPages, []chunk.Kind{chunk.KindPages}, a.ResolvePages},
		{config.AssetSprites, cfg.Wants(config.AssetSprites), []chunk.Kind{chunk.KindSprites, chunk.KindPages}, a.ResolveSprites},
		{config.AssetFonts, cfg.Wants(config.AssetFonts), []chunk.Kind{chunk.KindFonts, chunk.KindPages}, a.ResolveFonts},
		{config.AssetBackgrounds, cfg.Wants(config.AssetBackgrounds), []chunk.Kind{chunk.KindBackgrounds, chunk.KindPages}, func() error {
			return a.ResolveBackgrounds(cfg.BackgroundColumns)
		}},
		{config.AssetSounds, cfg.Wants(config.AssetSounds), []chunk.Kind{chunk.KindSounds, chunk.KindAudio}, a.ResolveSounds},
	}

	failures := 0
	for _, step := range steps {
		if !step.wanted {
			continue
		}
		if missing, ok := firstMissing(a, step.needs); !ok {
			slog.Info("Skipping assets, chunk not available", "assets", step.kind, "chunk", missing.Tag())
			continue
		}

		start := time.Now()
		if err := step.resolve(); err != nil {
			slog.Error("Failed to resolve assets", "assets", step.kind, "error", err)
			failures++
			continue
		}
		slog.Debug("Resolved assets", "assets", step.kind, "duration", utils.Duration(time.Since(start)))
	}
	return failures
}

func firstMissing(a *archive.Archive, kinds []chunk.Kind) (chunk.Kind, bool) {
	for _, k := range kinds {
		if !a.Decoded(k) {
			return k, false
		}
	}
	return 0, true
}

// writeCatalog records every decoded chunk into the catalog database and
// returns the number of rows written
func writeCatalog(ctx context.Context, a *archive.Archive, g *chunk.General) (int64, error) {
	path := cfg.Catalog
	if path == "" {
		path = cache.CacheManager().GetCatalogPath(g.DisplayName, g.Timestamp)
	}

	db, err := database.NewDatabase(database.DefaultDatabaseOptions(path))
	if err != nil {
		return 0, fmt.Errorf("creating catalog: %w", err)
	}
	defer db.Close()

	hasTables, err := db.HasUserTables(ctx)
	if err != nil {
		return 0, fmt.Errorf("checking catalog tables: %w", err)
	}
	if hasTables && !forceCatalog {
		return 0, fmt.Errorf("catalog %s already contains tables, use --force to rebuild it", path)
	}

	catalog := database.NewCatalog(db, database.DefaultBulkInsertOptions())

	slog.Info("Creating catalog schemas", "path", path, "count", len(database.Tables))
	progress := newStageProgress("catalog")
	err = catalog.Reset(ctx, progress.Update)
	progress.Finish()
	if err != nil {
		return 0, fmt.Errorf("creating catalog schemas: %w", err)
	}

	var rows int64
	write := func(name string, n int, fn func() error) error {
		if err := fn(); err != nil {
			return fmt.Errorf("writing %s to catalog: %w", name, err)
		}
		rows += int64(n)
		return nil
	}

	if err := write("general", 1, func() error { return catalog.WriteGeneral(ctx, g) }); err != nil {
		return rows, err
	}
	if o := a.Options(); o != nil {
		if err := write("options", len(o.Constants), func() error { return catalog.WriteOptions(ctx, o) }); err != nil {
			return rows, err
		}
	}
	if t := a.Atlas(); t != nil {
		if err := write("atlas", len(t.Entries), func() error { return catalog.WriteAtlas(ctx, t) }); err != nil {
			return rows, err
		}
	}
	if p := a.Pages(); p != nil {
		if err := write("pages", len(p.Pages), func() error { return catalog.WritePages(ctx, p) }); err != nil {
			return rows, err
		}
	}
	if s := a.Sprites(); s != nil {
		if err := write("sprites", s.Len(), func() error { return catalog.WriteSprites(ctx, s) }); err != nil {
			return rows, err
		}
	}
	if s := a.Sounds(); s != nil {
		if err := write("sounds", s.Len(), func() error { return catalog.WriteSounds(ctx, s) }); err != nil {
			return rows, err
		}
	}
	if f := a.Fonts(); f != nil {
		n := f.Len()
		for _, font := range f.All() {
			n += len(font.Glyphs)
		}
		if err := write("fonts", n, func() error { return catalog.WriteFonts(ctx, f) }); err != nil {
			return rows, err
		}
	}
	if b := a.Backgrounds(); b != nil {
		if err := write("backgrounds", b.Len(), func() error { return catalog.WriteBackgrounds(ctx, b) }); err != nil {
			return rows, err
		}
	}

	slog.Info("Catalog written", "path", db.Path(), "rows", utils.Number(rows))
	return rows, nil
}

// countErrors reports how many errors a joined error carries
func countErrors(err error) int {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return len(joined.Unwrap())
	}
	return 1
}

func newStageProgress(label string) *utils.Progress {
	return utils.NewProgress(label, !(noProgress || cfg.LogFormat == "json" || cfg.LogLevel == "debug"))
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringP("output", "o", "", "output directory for extracted assets")
	extractCmd.Flags().StringSlice("assets", []string{}, "comma-separated asset kinds to extract (pages, sprites, fonts, backgrounds, sounds)")
	extractCmd.Flags().IntP("workers", "w", 0, "number of assets materialized in parallel")
	extractCmd.Flags().StringToInt("background-columns", map[string]int{}, "tile column overrides by background name (name=columns,...)")
	extractCmd.Flags().BoolVar(&forceCatalog, "force", false, "rebuild the catalog even if it already has tables")
	extractCmd.Flags().BoolVar(&noCatalog, "no-catalog", false, "skip writing the metadata catalog")
}
