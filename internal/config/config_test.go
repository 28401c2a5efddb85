package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGlobalConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadGlobalConfig("")
	require.NoError(t, err)
	assert.Equal(t, ModeWatch, cfg.Mode)
	assert.Equal(t, DefaultScrapeIntervalSeconds, cfg.ScraperConfig.IntervalSeconds)
	assert.Equal(t, DefaultRetryMaxAttempts, cfg.HTTPConfig.RetryConfig.MaxAttempts)
}

func TestLoadGlobalConfig_ExplicitMissingPathErrors(t *testing.T) {
	_, err := LoadGlobalConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadGlobalConfig_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
mode: watch
scraper_config:
  target_url: "https://example.com/status"
  interval_seconds: 60
  selectors:
    headline: "h1.main"
    prices: "span.price"
http_config:
  timeout_seconds: 15
  retry_config:
    max_attempts: 3
    base_delay_secs: 4
    max_delay_secs: 10
batch_config:
  operation: analyze
  input_path: /tmp/in
  glob_pattern: "*.txt"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadGlobalConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/status", cfg.ScraperConfig.TargetURL)
	assert.Equal(t, 60*time.Second, cfg.ScraperConfig.Interval())
	assert.Equal(t, "h1.main", cfg.ScraperConfig.Selectors["headline"])
	assert.Equal(t, 15, cfg.HTTPConfig.TimeoutSeconds)
	assert.Equal(t, "analyze", cfg.BatchConfig.Operation)
	// Defaults survive partial files.
	assert.Equal(t, DefaultBufferCapacity, cfg.ScraperConfig.BufferCapacity)
	assert.Equal(t, DefaultPersistedTailSize, cfg.ScraperConfig.PersistedTailSize)
}

func TestValidateConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()
	cfg.ScraperConfig.TargetURL = "https://example.com"
	require.NoError(t, ValidateConfig(cfg))

	cfg.Mode = "interactive"
	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mode")

	cfg = NewDefaultGlobalConfig()
	cfg.ScraperConfig.IntervalSeconds = -5
	require.Error(t, ValidateConfig(cfg))

	cfg = NewDefaultGlobalConfig()
	cfg.LogConfig.LogLevel = "verbose"
	require.Error(t, ValidateConfig(cfg))
}

func TestGetConfigPath_EnvFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: watch\n"), 0644))

	t.Setenv("PAGEWATCH_CONFIG_PATH", path)
	assert.Equal(t, path, GetConfigPath(""))
}
