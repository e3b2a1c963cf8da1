// Package config loads tasterover settings from YAML, .env files and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"tasterover/internal/logging"
)

// Config holds all tasterover configuration.
type Config struct {
	API APIConfig `yaml:"api"`

	// AdminContact is appended to the message shown for quota failures.
	AdminContact string `yaml:"admin_contact" validate:"max=256"`

	UI UIConfig `yaml:"ui"`

	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig locates the backend.
type APIConfig struct {
	BaseURL string `yaml:"base_url" validate:"required,url"`
	// Timeout is a Go duration string; empty means requests never time out.
	Timeout string `yaml:"timeout" validate:"omitempty,duration"`
}

// UIConfig holds terminal interface settings.
type UIConfig struct {
	Theme string `yaml:"theme" validate:"omitempty,oneof=auto light dark"`
	// WordWrap bounds rendered markdown on the menu detail screen.
	WordWrap int `yaml:"word_wrap" validate:"gte=0,lte=400"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	JSONFormat bool            `yaml:"json_format"`
	Dir        string          `yaml:"dir"`
	Categories map[string]bool `yaml:"categories,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
		},
		AdminContact: "jack@tasterover.com",
		UI: UIConfig{
			Theme:    "auto",
			WordWrap: 80,
		},
		Logging: LoggingConfig{
			Level: "info",
			Dir:   filepath.Join(DefaultDir(), "logs"),
		},
	}
}

// DefaultDir is where tasterover keeps its config and logs.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".tasterover"
	}
	return filepath.Join(home, ".tasterover")
}

// DefaultConfigPath returns the config file used when none is given.
func DefaultConfigPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// Load loads configuration from a YAML file, then applies .env files and
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	loadDotEnv(".env", filepath.Join(filepath.Dir(path), ".env"))
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDotEnv reads the given .env files if they exist. Variables already set
// in the environment win.
func loadDotEnv(paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			logging.BootWarn("could not load %s: %v", p, err)
		}
	}
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("TASTEROVER_API_URL"); url != "" {
		c.API.BaseURL = url
	}
	if timeout, ok := os.LookupEnv("TASTEROVER_API_TIMEOUT"); ok {
		c.API.Timeout = timeout
	}
	if contact := os.Getenv("TASTEROVER_ADMIN_CONTACT"); contact != "" {
		c.AdminContact = contact
	}
	switch os.Getenv("TASTEROVER_DEBUG") {
	case "1", "true":
		c.Logging.DebugMode = true
	case "0", "false":
		c.Logging.DebugMode = false
	}
	if os.Getenv("TASTEROVER_DARK_MODE") == "1" {
		c.UI.Theme = "dark"
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		_, err := time.ParseDuration(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// GetAPITimeout returns the HTTP timeout; zero when unset.
func (c *Config) GetAPITimeout() time.Duration {
	if c.API.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// LoggingOptions converts the logging section for logging.Initialize.
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{
		DebugMode:  c.Logging.DebugMode,
		Level:      c.Logging.Level,
		JSONFormat: c.Logging.JSONFormat,
		Dir:        c.Logging.Dir,
		Categories: c.Logging.Categories,
	}
}
