package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleister1102/pagewatch/internal/config"
)

func TestNew_ConsoleOnly(t *testing.T) {
	cfg := config.NewDefaultLogConfig()
	logger, err := New(cfg)
	require.NoError(t, err)
	logger.Info().Msg("console logger works")
}

func TestNew_FileOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := config.NewDefaultLogConfig()
	cfg.LogFile = filepath.Join(dir, "logs", "pagewatch.log")
	cfg.LogFormat = "json"

	logger, err := New(cfg)
	require.NoError(t, err)
	logger.Info().Str("key", "value").Msg("file logger works")

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "file logger works")
}

func TestNew_InvalidLevelFallsBack(t *testing.T) {
	cfg := config.NewDefaultLogConfig()
	cfg.LogLevel = "definitely-not-a-level"

	_, err := New(cfg)
	require.NoError(t, err)
}
