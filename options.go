package seps

import "log/slog"

// Option configures a single Generate call.
// Use functional options to inject capabilities without widening Config.
//
// Example:
//
//	// Default: package logger, one worker per CPU
//	res, err := seps.Generate(img, cfg)
//
//	// Injected log sink and a fixed worker count
//	res, err := seps.Generate(img, cfg, seps.WithLogger(l), seps.WithWorkers(2))
type Option func(*genOptions)

// genOptions holds optional per-call configuration for Generate.
type genOptions struct {
	logger  *slog.Logger
	workers int
}

// defaultGenOptions returns the default Generate options.
func defaultGenOptions() genOptions {
	return genOptions{
		logger:  Logger(),
		workers: 0, // GOMAXPROCS
	}
}

// WithLogger sets the structured log sink for one Generate call,
// overriding the package-wide logger. Pass nil to silence the call.
func WithLogger(l *slog.Logger) Option {
	return func(o *genOptions) {
		if l == nil {
			l = newNopLogger()
		}
		o.logger = l
	}
}

// WithWorkers caps the number of workers used to process channels and
// scan rows in parallel. Zero or negative selects GOMAXPROCS. One
// reproduces the fully sequential reference behavior.
func WithWorkers(n int) Option {
	return func(o *genOptions) {
		o.workers = n
	}
}
