package limiter

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/aleister1102/pagewatch/internal/config"
)

// ResourceLimiter guards the poll loop against runaway memory use. It is
// checked once per cycle rather than on a background ticker; a long-running
// watch on a small host should degrade by shedding memory, not by dying.
type ResourceLimiter struct {
	config config.LimiterConfig
	logger zerolog.Logger
}

// NewResourceLimiter creates a resource limiter from configuration.
func NewResourceLimiter(cfg config.LimiterConfig, logger zerolog.Logger) *ResourceLimiter {
	if cfg.MaxMemoryMB <= 0 {
		cfg.MaxMemoryMB = 512
	}
	if cfg.SystemMemThreshold <= 0 {
		cfg.SystemMemThreshold = 0.9
	}
	return &ResourceLimiter{
		config: cfg,
		logger: logger.With().Str("component", "ResourceLimiter").Logger(),
	}
}

// CheckMemoryLimit returns an error when the process heap exceeds the
// configured limit.
func (rl *ResourceLimiter) CheckMemoryLimit() error {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	currentMB := int64(m.Alloc / 1024 / 1024)
	if currentMB > rl.config.MaxMemoryMB {
		return fmt.Errorf("memory limit exceeded: current %dMB > limit %dMB", currentMB, rl.config.MaxMemoryMB)
	}
	return nil
}

// CheckSystemMemoryLimit reports whether system-wide memory usage exceeds
// the configured threshold.
func (rl *ResourceLimiter) CheckSystemMemoryLimit() (bool, error) {
	vmStat, err := mem.VirtualMemory()
	if err != nil {
		return false, fmt.Errorf("failed to get system memory stats: %w", err)
	}

	usedFraction := vmStat.UsedPercent / 100.0
	if usedFraction > rl.config.SystemMemThreshold {
		rl.logger.Warn().
			Float64("used_percent", vmStat.UsedPercent).
			Float64("threshold_percent", rl.config.SystemMemThreshold*100).
			Uint64("used_mb", vmStat.Used/1024/1024).
			Uint64("total_mb", vmStat.Total/1024/1024).
			Msg("System memory usage exceeded threshold")
		return true, nil
	}
	return false, nil
}

// CheckCycle runs the per-cycle guard. When either limit trips it forces a
// GC pass and returns memory to the OS; the loop itself keeps running.
func (rl *ResourceLimiter) CheckCycle() {
	if !rl.config.Enabled {
		return
	}

	exceeded := false
	if err := rl.CheckMemoryLimit(); err != nil {
		rl.logger.Warn().Err(err).Msg("Process memory over limit, forcing GC")
		exceeded = true
	}
	if systemExceeded, err := rl.CheckSystemMemoryLimit(); err != nil {
		rl.logger.Error().Err(err).Msg("Failed to check system memory limit")
	} else if systemExceeded {
		exceeded = true
	}

	if exceeded {
		rl.ForceGC()
	}
}

// ForceGC forces garbage collection, returns freed pages to the OS, and
// logs the before/after heap sizes.
func (rl *ResourceLimiter) ForceGC() {
	var m1, m2 runtime.MemStats
	runtime.ReadMemStats(&m1)
	before := m1.Alloc / 1024 / 1024

	runtime.GC()
	debug.FreeOSMemory()

	runtime.ReadMemStats(&m2)
	after := m2.Alloc / 1024 / 1024

	rl.logger.Info().
		Uint64("before_mb", before).
		Uint64("after_mb", after).
		Msg("Forced garbage collection completed")
}
