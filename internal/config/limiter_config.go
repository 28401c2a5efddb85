package config

// LimiterConfig defines the per-cycle resource guard configuration.
type LimiterConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	// MaxMemoryMB bounds the process heap; a cycle exceeding it logs a
	// warning and forces a GC pass.
	MaxMemoryMB int64 `json:"max_memory_mb,omitempty" yaml:"max_memory_mb,omitempty" validate:"omitempty,min=1"`
	// SystemMemThreshold is the fraction of total system memory above
	// which a warning is logged.
	SystemMemThreshold float64 `json:"system_mem_threshold,omitempty" yaml:"system_mem_threshold,omitempty" validate:"omitempty,gt=0,lte=1"`
}

// NewDefaultLimiterConfig creates default limiter configuration.
func NewDefaultLimiterConfig() LimiterConfig {
	return LimiterConfig{
		Enabled:            true,
		MaxMemoryMB:        512,
		SystemMemThreshold: 0.9,
	}
}
