// Package config provides unified configuration for the duckgate shim.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. .env file loaded into the process environment
//  4. Environment variable overrides (DUCKGATE_ prefix, plus legacy API_KEYS)
//  5. File reference resolution (_file suffix fields)
//  6. Validation
//
// The resulting Config is treated as immutable once Load returns.
package config

import (
	"strings"
	"time"
)

// Upstream endpoints of the DuckDuckGo chat service.
const (
	DefaultStatusURL = "https://duckduckgo.com/duckchat/v1/status"
	DefaultChatURL   = "https://duckduckgo.com/duckchat/v1/chat"
)

// DefaultModel is used when a request does not name a model.
const DefaultModel = "gpt-4o-mini"

// DefaultSupportedModels lists the models the upstream accepts.
var DefaultSupportedModels = []string{
	"gpt-4o-mini",
	"o3-mini",
	"claude-3-haiku-20240307",
	"meta-llama/Meta-Llama-3.1-70B-Instruct-Turbo",
	"mistralai/Mixtral-8x7B-Instruct-v0.1",
}

// Config holds all configuration for the duckgate shim.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Upstream      UpstreamConfig      `yaml:"upstream"`
	Auth          AuthConfig          `yaml:"auth"`
	Models        ModelsConfig        `yaml:"models"`
	Observability ObservabilityConfig `yaml:"observability"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`             // default: 8080
	ReadTimeout     time.Duration `yaml:"read_timeout"`     // default: 30s
	WriteTimeout    time.Duration `yaml:"write_timeout"`    // default: 0 (none)
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // default: 30s
	MaxBodySize     int64         `yaml:"max_body_size"`    // default: 10 MiB
}

// UpstreamConfig holds the chat upstream endpoints.
type UpstreamConfig struct {
	StatusURL string        `yaml:"status_url"`
	ChatURL   string        `yaml:"chat_url"`
	Timeout   time.Duration `yaml:"timeout"`    // per call, default: 0 (none)
	UserAgent string        `yaml:"user_agent"` // optional override of the browser User-Agent
}

// AuthConfig holds the static shared-secret allow-list.
type AuthConfig struct {
	APIKeys     string `yaml:"api_keys"`      // comma-separated
	APIKeysFile string `yaml:"api_keys_file"` // _file variant for api_keys
}

// Keys splits the comma-separated allow-list. Entries are trimmed and empty
// entries are dropped.
func (a AuthConfig) Keys() []string {
	var keys []string
	for _, k := range strings.Split(a.APIKeys, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// ModelsConfig holds the model gate settings.
type ModelsConfig struct {
	Default   string   `yaml:"default"`
	Supported []string `yaml:"supported"`
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// LoggingConfig holds log level and debug category settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // TRACE, DEBUG, INFO, WARN, ERROR; default: INFO
	Debug string `yaml:"debug"` // comma-separated debug categories
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			MaxBodySize:     10 << 20,
		},
		Upstream: UpstreamConfig{
			StatusURL: DefaultStatusURL,
			ChatURL:   DefaultChatURL,
		},
		Models: ModelsConfig{
			Default:   DefaultModel,
			Supported: append([]string(nil), DefaultSupportedModels...),
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
		Logging: LoggingConfig{
			Level: "INFO",
		},
	}
}
