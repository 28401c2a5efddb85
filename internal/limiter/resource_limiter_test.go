package limiter

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/pagewatch/internal/config"
)

func TestCheckMemoryLimit_WithinLimit(t *testing.T) {
	rl := NewResourceLimiter(config.LimiterConfig{
		Enabled:     true,
		MaxMemoryMB: 1 << 20, // effectively unlimited
	}, zerolog.Nop())

	assert.NoError(t, rl.CheckMemoryLimit())
}

func TestCheckMemoryLimit_Exceeded(t *testing.T) {
	cfg := config.LimiterConfig{Enabled: true, MaxMemoryMB: 1}
	rl := NewResourceLimiter(cfg, zerolog.Nop())

	// Hold enough allocations that the heap is certain to be over 1MB.
	ballast := make([][]byte, 8)
	for i := range ballast {
		ballast[i] = make([]byte, 1<<20)
	}

	err := rl.CheckMemoryLimit()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "memory limit exceeded")
	_ = ballast
}

func TestNewResourceLimiter_Defaults(t *testing.T) {
	rl := NewResourceLimiter(config.LimiterConfig{Enabled: true}, zerolog.Nop())

	assert.Equal(t, int64(512), rl.config.MaxMemoryMB)
	assert.InDelta(t, 0.9, rl.config.SystemMemThreshold, 0.001)
}

func TestCheckCycle_DisabledIsNoop(t *testing.T) {
	rl := NewResourceLimiter(config.LimiterConfig{Enabled: false, MaxMemoryMB: 1}, zerolog.Nop())

	// Must not panic or force GC when disabled.
	rl.CheckCycle()
}
