package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, DUCKGATE_CONFIG env, ./config.yaml, /etc/duckgate/config.yaml)
//  3. .env file (DUCKGATE_ENV_FILE or ./.env); existing variables are not overwritten
//  4. Environment variable overrides
//  5. File reference resolution (_file suffix)
//  6. Validation
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	if err := loadDotEnv(); err != nil {
		return nil, fmt.Errorf("loading env file: %w", err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}

	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// 1. Explicit configPath argument
// 2. DUCKGATE_CONFIG environment variable
// 3. ./config.yaml in the current directory
// 4. /etc/duckgate/config.yaml
//
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}

	if envPath := os.Getenv("DUCKGATE_CONFIG"); envPath != "" {
		return envPath
	}

	candidates := []string{
		"config.yaml",
		"/etc/duckgate/config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// loadDotEnv loads DUCKGATE_ENV_FILE, or ./.env when present, into the
// process environment. An explicitly named file must exist.
func loadDotEnv() error {
	if path := os.Getenv("DUCKGATE_ENV_FILE"); path != "" {
		return godotenv.Load(path)
	}
	if _, err := os.Stat(".env"); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return godotenv.Load(".env")
}

// applyEnvOverrides maps environment variables to config fields.
// API_KEYS is the legacy variable name;
// DUCKGATE_API_KEYS wins when both are set.
func applyEnvOverrides(cfg *Config) error {
	var errs []error

	if v := os.Getenv("DUCKGATE_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("DUCKGATE_PORT: %w", err))
		} else {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("DUCKGATE_STATUS_URL"); v != "" {
		cfg.Upstream.StatusURL = v
	}
	if v := os.Getenv("DUCKGATE_CHAT_URL"); v != "" {
		cfg.Upstream.ChatURL = v
	}
	if v := os.Getenv("DUCKGATE_UPSTREAM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("DUCKGATE_UPSTREAM_TIMEOUT: %w", err))
		} else {
			cfg.Upstream.Timeout = d
		}
	}
	if v := os.Getenv("DUCKGATE_DEFAULT_MODEL"); v != "" {
		cfg.Models.Default = v
	}
	if v := os.Getenv("DUCKGATE_MODELS"); v != "" {
		cfg.Models.Supported = splitList(v)
	}
	if v := os.Getenv("API_KEYS"); v != "" {
		cfg.Auth.APIKeys = v
	}
	if v := os.Getenv("DUCKGATE_API_KEYS"); v != "" {
		cfg.Auth.APIKeys = v
	}
	if v := os.Getenv("DUCKGATE_API_KEYS_FILE"); v != "" {
		cfg.Auth.APIKeysFile = v
	}
	if v := os.Getenv("DUCKGATE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("DUCKGATE_DEBUG"); v != "" {
		cfg.Logging.Debug = v
	}
	if v := os.Getenv("DUCKGATE_METRICS_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("DUCKGATE_METRICS_ENABLED: %w", err))
		} else {
			cfg.Observability.Metrics.Enabled = enabled
		}
	}

	return errors.Join(errs...)
}

// resolveFileReferences reads _file fields and populates the corresponding value fields.
// The file is only read when the value field is empty.
func resolveFileReferences(cfg *Config) error {
	// auth.api_keys_file -> auth.api_keys
	if cfg.Auth.APIKeysFile != "" && cfg.Auth.APIKeys == "" {
		val, err := readSecretFile(cfg.Auth.APIKeysFile)
		if err != nil {
			return fmt.Errorf("auth.api_keys_file: %w", err)
		}
		// One key per line is accepted as well as a comma-separated line.
		cfg.Auth.APIKeys = strings.Join(strings.Fields(strings.ReplaceAll(val, ",", " ")), ",")
	}
	return nil
}

// readSecretFile reads a file and returns its content with surrounding whitespace trimmed.
func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
