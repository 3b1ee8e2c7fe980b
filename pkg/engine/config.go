package engine

import "time"

// Config holds configuration for the core engine.
type Config struct {
	// DefaultModel is used when the request omits the model field.
	DefaultModel string

	// SupportedModels is the allow-list, in listing order.
	SupportedModels []string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

func (c Config) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
