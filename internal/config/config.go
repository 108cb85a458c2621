// Package config provides configuration loading and structs for the internai client.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvAPIURL overrides api.base_url when set.
const EnvAPIURL = "INTERNAI_API_URL"

// Config holds all configuration for the application.
type Config struct {
	Debug  bool         `yaml:"debug"`
	API    APIConfig    `yaml:"api"`
	Search SearchConfig `yaml:"search"`
	Logs   LogsConfig   `yaml:"logs"`
	Watch  WatchConfig  `yaml:"watch"`
	Stub   StubConfig   `yaml:"stub"`
}

// APIConfig holds the backend endpoint. It is resolved once at startup.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	// Timeout bounds a single request; zero means no timeout.
	Timeout time.Duration `yaml:"timeout"`
}

// SearchConfig holds the caller-chosen default result limit.
type SearchConfig struct {
	DefaultLimit int `yaml:"default_limit"`
}

// LogsConfig holds daily-log listing and submission settings.
type LogsConfig struct {
	ListLimit  int           `yaml:"list_limit"`
	ResetDelay time.Duration `yaml:"reset_delay"`
}

// WatchConfig holds journal directory watch settings.
type WatchConfig struct {
	Directories []string `yaml:"directories"`
	Extensions  []string `yaml:"extensions"`
	Recursive   *bool    `yaml:"recursive"`
}

// RecursiveOrDefault returns whether to watch recursively; defaults to false when unset.
func (w *WatchConfig) RecursiveOrDefault() bool {
	if w.Recursive != nil {
		return *w.Recursive
	}
	return false
}

// StubConfig holds the listen address of the local stub backend.
type StubConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	for i := range cfg.Watch.Directories {
		cfg.Watch.Directories[i] = expandPath(cfg.Watch.Directories[i], configDir)
	}

	return &cfg, nil
}

// LoadOrDefault behaves like Load but returns a defaulted Config when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = &Config{}
		ApplyDefaults(cfg)
		return cfg, nil
	}
	return cfg, err
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ResolveAPI applies the endpoint overrides in order env then flag, and validates the result.
// It is called once at startup; the returned value is passed to the transport client.
func (c *Config) ResolveAPI(lookupEnv func(string) (string, bool), flagURL string) error {
	if lookupEnv != nil {
		if v, ok := lookupEnv(EnvAPIURL); ok && strings.TrimSpace(v) != "" {
			c.API.BaseURL = strings.TrimSpace(v)
		}
	}
	if strings.TrimSpace(flagURL) != "" {
		c.API.BaseURL = strings.TrimSpace(flagURL)
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid api base url %q: %w", c.API.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api base url %q: scheme must be http or https", c.API.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid api base url %q: missing host", c.API.BaseURL)
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	return nil
}

// DefaultPath returns ~/.config/internai/config.yaml, or config.yaml when the home
// directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "internai", "config.yaml")
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// "~/" paths are relative to the home directory; other relative paths are left as-is.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
