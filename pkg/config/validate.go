package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// Validate checks the configuration for required fields and valid values.
// Every problem is reported, each with its field path.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.MaxBodySize <= 0 {
		errs = append(errs, fmt.Errorf("server.max_body_size must be > 0, got %d", c.Server.MaxBodySize))
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("server timeouts must not be negative"))
	}

	if err := validateHTTPURL(c.Upstream.StatusURL); err != nil {
		errs = append(errs, fmt.Errorf("upstream.status_url: %w", err))
	}
	if err := validateHTTPURL(c.Upstream.ChatURL); err != nil {
		errs = append(errs, fmt.Errorf("upstream.chat_url: %w", err))
	}
	if c.Upstream.Timeout < 0 {
		errs = append(errs, fmt.Errorf("upstream.timeout must not be negative, got %s", c.Upstream.Timeout))
	}

	if len(c.Models.Supported) == 0 {
		errs = append(errs, fmt.Errorf("models.supported must list at least one model"))
	}
	seen := make(map[string]bool, len(c.Models.Supported))
	for _, m := range c.Models.Supported {
		if seen[m] {
			errs = append(errs, fmt.Errorf("models.supported lists %q more than once", m))
		}
		seen[m] = true
	}
	if c.Models.Default == "" {
		errs = append(errs, fmt.Errorf("models.default is required"))
	} else if len(c.Models.Supported) > 0 && !slices.Contains(c.Models.Supported, c.Models.Default) {
		errs = append(errs, fmt.Errorf("models.default %q is not in models.supported", c.Models.Default))
	}

	if c.Observability.Metrics.Enabled && !strings.HasPrefix(c.Observability.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("observability.metrics.path must start with \"/\", got %q", c.Observability.Metrics.Path))
	}

	switch strings.ToUpper(strings.TrimSpace(c.Logging.Level)) {
	case "", "TRACE", "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
		// valid
	default:
		errs = append(errs, fmt.Errorf("logging.level must be one of TRACE, DEBUG, INFO, WARN, ERROR, got %q", c.Logging.Level))
	}

	return errors.Join(errs...)
}

func validateHTTPURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("host is required")
	}
	return nil
}
