// Package config loads service configuration from an optional YAML file with
// environment-variable overrides. Defaults are sufficient to run with no
// file at all.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the service configuration.
type Config struct {
	// Port the HTTP server listens on.
	Port int `yaml:"port"`
	// DatabaseURL enables analysis history persistence when non-empty.
	DatabaseURL string `yaml:"database_url"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// CORSOrigins lists allowed cross-origin hosts; "*" allows any.
	CORSOrigins []string `yaml:"cors_origins"`
	// PredictorSeed fixes the LCA predictor jitter when non-zero.
	PredictorSeed int64 `yaml:"predictor_seed"`
}

// Default returns the configuration used when nothing is specified.
func Default() Config {
	return Config{
		Port:        8000,
		LogLevel:    "info",
		CORSOrigins: []string{"*"},
	}
}

// Load reads configuration from path (skipped when empty or missing) and
// then applies environment overrides: PORT, DATABASE_URL, LOG_LEVEL,
// CORS_ORIGINS (comma-separated).
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Optional file; fall through to env overrides.
		case err != nil:
			return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return cfg, fmt.Errorf("invalid port %d", cfg.Port)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
		if len(origins) > 0 {
			cfg.CORSOrigins = origins
		}
	}
}
