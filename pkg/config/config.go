package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Config represents the repotutor configuration
type Config struct {
	Server ServerConfig `json:"server"`
	Chat   ChatConfig   `json:"chat"`
	Debug  DebugConfig  `json:"debug"`
	Init   InitConfig   `json:"init"`
}

// ServerConfig points the client at a repotutor backend
type ServerConfig struct {
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
}

// ChatConfig contains defaults for the chat operations
type ChatConfig struct {
	Persona string `json:"persona,omitempty"` // persona sent with questions
	Role    string `json:"role,omitempty"`    // default role for summaries
}

// DebugConfig contains debug settings
type DebugConfig struct {
	Enabled  bool   `json:"enabled"`
	KeepLogs bool   `json:"keep_logs"`
	LogLevel string `json:"log_level"`
}

// InitConfig contains initialization settings
type InitConfig struct {
	SkipChecks bool `json:"skip_checks"`
	Verbose    bool `json:"verbose"`
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults
	config.setDefaults()

	// Validate
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadDefault attempts to load .repotutor.json from current directory or home
func LoadDefault() (*Config, error) {
	// Try current directory
	if _, err := os.Stat(".repotutor.json"); err == nil {
		return Load(".repotutor.json")
	}

	// Try home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homePath := filepath.Join(home, ".repotutor.json")
		if _, err := os.Stat(homePath); err == nil {
			return Load(homePath)
		}
	}

	return nil, fmt.Errorf("no .repotutor.json found in current directory or home")
}

// Default returns a config with defaults applied and no file loaded.
// Useful when the backend URL comes entirely from flags.
func Default() *Config {
	config := &Config{}
	config.setDefaults()
	return config
}

// Timeout returns the configured request timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSeconds) * time.Second
}

// setDefaults sets default values for configuration
func (c *Config) setDefaults() {
	// Server defaults
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost:5000"
	}
	if c.Server.TimeoutSeconds == 0 {
		c.Server.TimeoutSeconds = 120
	}

	// Chat defaults
	if c.Chat.Persona == "" {
		c.Chat.Persona = "student (beginner)"
	}
	if c.Chat.Role == "" {
		c.Chat.Role = "developer"
	}

	// Debug defaults
	if c.Debug.LogLevel == "" {
		c.Debug.LogLevel = "info"
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	parsed, err := url.Parse(c.Server.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid base_url scheme: %q (must be http or https)", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("base_url is missing a host: %s", c.Server.BaseURL)
	}

	if c.Server.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative: %d", c.Server.TimeoutSeconds)
	}

	return nil
}
