package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, "jack@tasterover.com", cfg.AdminContact)
	assert.Equal(t, time.Duration(0), cfg.GetAPITimeout())
	assert.False(t, cfg.Logging.DebugMode)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().API, cfg.API)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
api:
  base_url: https://tasterover.example.com
  timeout: 45s
admin_contact: ops@example.com
ui:
  theme: dark
logging:
  debug_mode: true
  level: debug
  dir: /tmp/tr-logs
  categories:
    api: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://tasterover.example.com", cfg.API.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.GetAPITimeout())
	assert.Equal(t, "ops@example.com", cfg.AdminContact)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, 80, cfg.UI.WordWrap, "unset fields keep defaults")

	opts := cfg.LoggingOptions()
	assert.True(t, opts.DebugMode)
	assert.Equal(t, "debug", opts.Level)
	assert.Equal(t, "/tmp/tr-logs", opts.Dir)
	assert.Equal(t, map[string]bool{"api": false}, opts.Categories)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unclosed"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base url", func(c *Config) { c.API.BaseURL = "" }},
		{"bad base url", func(c *Config) { c.API.BaseURL = "not a url" }},
		{"bad timeout", func(c *Config) { c.API.Timeout = "soon" }},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }},
		{"bad level", func(c *Config) { c.Logging.Level = "chatty" }},
		{"negative wrap", func(c *Config) { c.UI.WordWrap = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.API.BaseURL = "http://backend:9000"
	cfg.API.Timeout = "5s"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestGetAPITimeout_Unparseable(t *testing.T) {
	cfg := &Config{API: APIConfig{Timeout: "later"}}
	assert.Zero(t, cfg.GetAPITimeout())
}
