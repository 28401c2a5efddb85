package config

import "time"

// ScraperConfig defines the scrape-poll loop configuration.
type ScraperConfig struct {
	// TargetURL is the single page watched by the poll loop.
	TargetURL string `json:"target_url,omitempty" yaml:"target_url,omitempty" validate:"omitempty,url"`
	// Selectors maps field names to CSS queries evaluated each cycle.
	Selectors map[string]string `json:"selectors,omitempty" yaml:"selectors,omitempty"`

	IntervalSeconds      int `json:"interval_seconds,omitempty" yaml:"interval_seconds,omitempty" validate:"omitempty,min=1"`
	CycleCooldownSeconds int `json:"cycle_cooldown_seconds,omitempty" yaml:"cycle_cooldown_seconds,omitempty" validate:"omitempty,min=1"`

	// BufferCapacity bounds the in-memory history; PersistedTailSize bounds
	// the slice of it saved durably each cycle.
	BufferCapacity    int `json:"buffer_capacity,omitempty" yaml:"buffer_capacity,omitempty" validate:"omitempty,min=1"`
	PersistedTailSize int `json:"persisted_tail_size,omitempty" yaml:"persisted_tail_size,omitempty" validate:"omitempty,min=1"`

	// MaxCycles stops the loop after N cycles; 0 runs until stopped.
	MaxCycles int `json:"max_cycles,omitempty" yaml:"max_cycles,omitempty"`
}

// Interval returns the polling interval as a duration.
func (c ScraperConfig) Interval() time.Duration {
	if c.IntervalSeconds <= 0 {
		return DefaultScrapeIntervalSeconds * time.Second
	}
	return time.Duration(c.IntervalSeconds) * time.Second
}

// CycleCooldown returns the post-failure cooldown as a duration.
func (c ScraperConfig) CycleCooldown() time.Duration {
	if c.CycleCooldownSeconds <= 0 {
		return DefaultCycleCooldownSeconds * time.Second
	}
	return time.Duration(c.CycleCooldownSeconds) * time.Second
}

// NewDefaultScraperConfig creates default scraper configuration.
func NewDefaultScraperConfig() ScraperConfig {
	return ScraperConfig{
		Selectors:            map[string]string{},
		IntervalSeconds:      DefaultScrapeIntervalSeconds,
		CycleCooldownSeconds: DefaultCycleCooldownSeconds,
		BufferCapacity:       DefaultBufferCapacity,
		PersistedTailSize:    DefaultPersistedTailSize,
		MaxCycles:            0,
	}
}
