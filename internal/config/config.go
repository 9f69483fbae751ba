// Package config handles configuration for wallchat.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// EnvServer overrides the configured server URL when set
const EnvServer = "WALLCHAT_SERVER"

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`             // "dark", "light", "notty" or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji"`      // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"` // Preserve original line breaks
}

// Config represents the user configuration
type Config struct {
	// ServerURL is the origin of the chat service, e.g. http://localhost:8080
	ServerURL string `json:"server_url"`
	// PollIntervalMs is the wall refresh period in milliseconds.
	PollIntervalMs int `json:"poll_interval_ms"`
	// RequestTimeoutSec bounds every single request.
	RequestTimeoutSec int            `json:"request_timeout_sec"`
	TUITheme          string         `json:"tui_theme,omitempty"`
	LogLevel          string         `json:"log_level,omitempty"`
	LogFile           string         `json:"log_file,omitempty"`
	Markdown          MarkdownConfig `json:"markdown,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	homeDir, _ := os.UserHomeDir()
	return Config{
		ServerURL:         "http://localhost:8080",
		PollIntervalMs:    500,
		RequestTimeoutSec: 10,
		TUITheme:          "tokyonight",
		LogLevel:          "warn",
		LogFile:           filepath.Join(homeDir, ".wallchat", "wallchat.log"),
		Markdown:          DefaultMarkdownConfig(),
	}
}

// PollInterval returns the poll period as a duration
func (c Config) PollInterval() time.Duration {
	if c.PollIntervalMs <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// RequestTimeout returns the per-request timeout as a duration
func (c Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// Validate checks the fields that would make the client unusable
func (c Config) Validate() error {
	if err := ValidateServerURL(c.ServerURL); err != nil {
		return err
	}
	if c.PollIntervalMs < 0 {
		return fmt.Errorf("poll_interval_ms must not be negative")
	}
	if c.RequestTimeoutSec < 0 {
		return fmt.Errorf("request_timeout_sec must not be negative")
	}
	return nil
}

// ValidateServerURL checks that raw is an absolute http(s) URL
func ValidateServerURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid server URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid server URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid server URL %q: missing host", raw)
	}
	return nil
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(home, ".wallchat")
	return configDir, nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// LoadConfig loads the configuration from disk and applies environment overrides
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if server := strings.TrimSpace(os.Getenv(EnvServer)); server != "" {
		cfg.ServerURL = server
	}
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setters maps settable keys to their parsers
var setters = map[string]func(cfg *Config, value string) error{
	"server_url": func(cfg *Config, value string) error {
		if err := ValidateServerURL(value); err != nil {
			return err
		}
		cfg.ServerURL = strings.TrimRight(strings.TrimSpace(value), "/")
		return nil
	},
	"poll_interval_ms": func(cfg *Config, value string) error {
		n, err := parsePositive(value)
		if err != nil {
			return err
		}
		cfg.PollIntervalMs = n
		return nil
	},
	"request_timeout_sec": func(cfg *Config, value string) error {
		n, err := parsePositive(value)
		if err != nil {
			return err
		}
		cfg.RequestTimeoutSec = n
		return nil
	},
	"tui_theme": func(cfg *Config, value string) error {
		cfg.TUITheme = value
		return nil
	},
	"log_level": func(cfg *Config, value string) error {
		cfg.LogLevel = value
		return nil
	},
	"log_file": func(cfg *Config, value string) error {
		cfg.LogFile = value
		return nil
	},
	"markdown.style": func(cfg *Config, value string) error {
		cfg.Markdown.Style = value
		return nil
	},
	"markdown.enable_emoji": func(cfg *Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("expected true or false, got %q", value)
		}
		cfg.Markdown.EnableEmoji = b
		return nil
	},
	"markdown.preserve_newlines": func(cfg *Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("expected true or false, got %q", value)
		}
		cfg.Markdown.PreserveNewLines = b
		return nil
	},
}

func parsePositive(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("expected a number, got %q", value)
	}
	if n <= 0 {
		return 0, fmt.Errorf("expected a positive number, got %d", n)
	}
	return n, nil
}

// Set updates a single key on cfg
func (c *Config) Set(key, value string) error {
	setter, ok := setters[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(SettableKeys(), ", "))
	}
	return setter(c, value)
}

// SettableKeys returns the keys accepted by Set, sorted
func SettableKeys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
