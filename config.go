package ringbuf

import "go.uber.org/zap"

// Config holds the tunables for Create. The zero value is not valid on
// its own; use NewConfig, or NewDevelopmentConfig for the debug-mode
// named constructor, both of which apply the same safe Logger default
// the teacher's constructor family (New, NewWithDefaults, NewWithConfig)
// applies to its own logger.
type Config struct {
	// Capacity is the fixed buffer capacity in bytes. Must satisfy
	// 0 < Capacity < 2^32-1 (2^32-1 is the reserved sentinel).
	Capacity uint32

	// Workers is the number of worker slots to allocate. Must be > 0.
	Workers int

	// Debug enables internal invariant assertions (spec §7): violations
	// panic instead of being reported only as a returned error. Off by
	// default; enable in tests and development builds.
	Debug bool

	// BackoffLimit overrides the default bounded spin count used while
	// waiting out the wrap lock. Zero means "use the default" (128).
	BackoffLimit int

	// Logger receives diagnostic events at debug level: worker
	// registration/unregistration and forced wraps. Failed assertions
	// panic (when Debug is set) and are not logged. Defaults to a
	// no-op logger.
	Logger *zap.Logger
}

// Option configures a Config produced by NewConfig.
type Option func(*Config)

// WithDebug enables debug-mode assertions.
func WithDebug(debug bool) Option {
	return func(c *Config) { c.Debug = debug }
}

// WithLogger sets the diagnostic logger. A nil logger is replaced with
// zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.Logger = logger
	}
}

// WithBackoffLimit overrides the bounded spin count.
func WithBackoffLimit(n int) Option {
	return func(c *Config) { c.BackoffLimit = n }
}

// NewConfig builds a Config with production-sensible defaults (no
// assertions, no-op logger, default back-off limit), then applies opts.
func NewConfig(capacity uint32, workers int, opts ...Option) Config {
	cfg := Config{
		Capacity:     capacity,
		Workers:      workers,
		Debug:        false,
		BackoffLimit: backoffLimit,
		Logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.BackoffLimit <= 0 {
		cfg.BackoffLimit = backoffLimit
	}
	return cfg
}

// NewDevelopmentConfig builds a Config with debug assertions enabled
// and a development zap logger, mirroring the teacher ecosystem's
// "NewDevelopment" constructor convention (synchronous, verbose,
// fail-fast — suited to catching invariant violations early).
func NewDevelopmentConfig(capacity uint32, workers int, opts ...Option) (Config, error) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return Config{}, err
	}
	base := []Option{WithDebug(true), WithLogger(logger)}
	return NewConfig(capacity, workers, append(base, opts...)...), nil
}
