package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// Log defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// Scraper defaults
	DefaultScrapeIntervalSeconds = 300
	DefaultCycleCooldownSeconds  = 300
	DefaultBufferCapacity        = 100
	DefaultPersistedTailSize     = 10

	// HTTP defaults
	DefaultHTTPTimeoutSeconds = 30
	DefaultDialTimeoutSeconds = 10
	DefaultUserAgent          = "pagewatch/1.0"
	DefaultRetryMaxAttempts   = 3
	DefaultRetryBaseDelaySecs = 4
	DefaultRetryMaxDelaySecs  = 10

	// Storage defaults
	DefaultSQLiteDBPath = "data/pagewatch.db"
	DefaultArchiveDir   = "data/archive"

	// File operator defaults
	DefaultResultsLogCapacity = 1000
	DefaultHashSizeCeiling    = 100 * 1024 * 1024 // 100 MiB
)

// Mode values selecting the component to run.
const (
	ModeWatch = "watch"
	ModeBatch = "batch"
)

// GlobalConfig is the root configuration for the application.
type GlobalConfig struct {
	Mode          string        `json:"mode,omitempty" yaml:"mode,omitempty" validate:"omitempty,mode"`
	ScraperConfig ScraperConfig `json:"scraper_config,omitempty" yaml:"scraper_config,omitempty"`
	HTTPConfig    HTTPConfig    `json:"http_config,omitempty" yaml:"http_config,omitempty"`
	BatchConfig   BatchConfig   `json:"batch_config,omitempty" yaml:"batch_config,omitempty"`
	StorageConfig StorageConfig `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
	LimiterConfig LimiterConfig `json:"limiter_config,omitempty" yaml:"limiter_config,omitempty"`
	LogConfig     LogConfig     `json:"log_config,omitempty" yaml:"log_config,omitempty"`
}

// NewDefaultGlobalConfig creates a GlobalConfig with all defaults applied.
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Mode:          ModeWatch,
		ScraperConfig: NewDefaultScraperConfig(),
		HTTPConfig:    NewDefaultHTTPConfig(),
		BatchConfig:   NewDefaultBatchConfig(),
		StorageConfig: NewDefaultStorageConfig(),
		LimiterConfig: NewDefaultLimiterConfig(),
		LogConfig:     NewDefaultLogConfig(),
	}
}

// LoadGlobalConfig reads, parses, and defaults the configuration file at the
// given path (or the first default location when the path is empty). A
// missing file yields the defaults rather than an error.
func LoadGlobalConfig(configPath string) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	resolvedPath := GetConfigPath(configPath)
	if resolvedPath == "" {
		if configPath != "" {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(resolvedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", resolvedPath, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", resolvedPath, err)
	}

	return cfg, nil
}
