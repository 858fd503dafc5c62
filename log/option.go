package log

// Option applies a configuration option to config.
type Option func(config) config

// with returns a copy of the config with opts applied in order.
func (c config) with(opts ...Option) config {
	for _, opt := range opts {
		c = opt(c)
	}

	return c
}
