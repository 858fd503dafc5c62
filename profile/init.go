package profile

// Config holds the profiler settings applied by [Start].
type Config struct {
	mode  string
	path  string
	quiet bool
}

// Option overrides a single [Config] field.
type Option func(Config) Config

// WithMode sets the profiling mode. An empty or unrecognized mode disables
// profiling.
func WithMode(mode string) Option {
	return func(c Config) Config {
		c.mode = mode

		return c
	}
}

// WithPath sets the directory profile files are written to.
func WithPath(path string) Option {
	return func(c Config) Config {
		c.path = path

		return c
	}
}

// WithQuiet suppresses the profiler's own logging.
func WithQuiet(quiet bool) Option {
	return func(c Config) Config {
		c.quiet = quiet

		return c
	}
}

// Start initializes the profiler and returns an interface for stopping it.
//
// Without the pprof build tag, or when no mode is configured, Start returns
// a no-op implementation. Both Start and Stop are always safely callable.
func Start(opts ...Option) interface{ Stop() } {
	var c Config
	for _, opt := range opts {
		c = opt(c)
	}

	if c.mode == "" {
		return ignore{}
	}

	return start(c.mode, c.path, c.quiet)
}

type ignore struct{}

func (ignore) Stop() {}
