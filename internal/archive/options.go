package archive

import (
	"io"
	"log/slog"

	"github.com/jchantrell/winextract/internal/codec"
)

type settings struct {
	codec   codec.Codec
	workers int
	logger  *slog.Logger
}

func defaults() settings {
	return settings{
		codec:   codec.New(),
		workers: 1,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option configures an archive
type Option func(*settings)

// WithCodec replaces the image codec used to decode texture pages
func WithCodec(c codec.Codec) Option {
	return func(s *settings) {
		if c != nil {
			s.codec = c
		}
	}
}

// WithWorkers sets how many records bulk resolution processes at once.
// Values below 1 select sequential resolution.
func WithWorkers(n int) Option {
	return func(s *settings) {
		s.workers = max(n, 1)
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}
