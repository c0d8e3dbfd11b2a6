// Package config loads gate configuration from environment variables and an
// optional TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultAPIBaseURL is used when neither GITHUB_API_URL nor the config file
// names an API root.
const DefaultAPIBaseURL = "https://api.github.com/"

// Config holds the gate configuration.
type Config struct {
	GitHubToken string
	APIBaseURL  string
	HTTPTimeout time.Duration
	CacheDir    string // Directory for cached GitHub responses; empty disables caching.
	LogLevel    string

	Labels LabelsConfig
	Checks ChecksConfig
}

// LabelsConfig holds defaults for the blocking-label gate.
type LabelsConfig struct {
	Blocking string `toml:"blocking"`
}

// ChecksConfig holds defaults for the dependent-checks gate.
type ChecksConfig struct {
	Required        []string `toml:"required"`
	PassingStatuses []string `toml:"passing_statuses"`
}

// fileConfig is the on-disk TOML layout.
type fileConfig struct {
	GitHub struct {
		APIURL   string `toml:"api_url"`
		CacheDir string `toml:"cache_dir"`
	} `toml:"github"`
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
	Labels LabelsConfig `toml:"labels"`
	Checks ChecksConfig `toml:"checks"`
}

// Load reads configuration from an optional TOML file and then from
// environment variables, which take precedence for shared settings.
//
// path names the TOML file; when empty, MERGEGATE_CONFIG is consulted, and
// when that is empty too no file is read. A path that was named but does not
// exist is an error.
//
// Environment: GITHUB_TOKEN (optional, empty sends unauthenticated requests),
// GITHUB_API_URL (default https://api.github.com/), MERGEGATE_HTTP_TIMEOUT
// (Go duration, default none), MERGEGATE_CACHE_DIR (default none, no response
// cache), MERGEGATE_LOG_LEVEL (default info).
func Load(path string) (*Config, error) {
	cfg := &Config{
		APIBaseURL: DefaultAPIBaseURL,
		LogLevel:   "info",
	}

	if path == "" {
		path = os.Getenv("MERGEGATE_CONFIG")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.GitHubToken = os.Getenv("GITHUB_TOKEN")

	if v, ok := os.LookupEnv("GITHUB_API_URL"); ok && v != "" {
		cfg.APIBaseURL = v
	}

	if v, ok := os.LookupEnv("MERGEGATE_HTTP_TIMEOUT"); ok && v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("MERGEGATE_HTTP_TIMEOUT has invalid duration %q: %w", v, err)
		}
		if parsed < 0 {
			return nil, fmt.Errorf("MERGEGATE_HTTP_TIMEOUT must not be negative, got %s", parsed)
		}
		cfg.HTTPTimeout = parsed
	}

	if v, ok := os.LookupEnv("MERGEGATE_CACHE_DIR"); ok && v != "" {
		cfg.CacheDir = v
	}

	if v, ok := os.LookupEnv("MERGEGATE_LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = v
	}

	if !strings.HasSuffix(cfg.APIBaseURL, "/") {
		cfg.APIBaseURL += "/"
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file %s does not exist", path)
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if fc.GitHub.APIURL != "" {
		c.APIBaseURL = fc.GitHub.APIURL
	}
	if fc.GitHub.CacheDir != "" {
		c.CacheDir = fc.GitHub.CacheDir
	}
	if fc.Log.Level != "" {
		c.LogLevel = fc.Log.Level
	}
	c.Labels = fc.Labels
	c.Checks = fc.Checks

	return nil
}
