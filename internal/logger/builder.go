package logger

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aleister1102/pagewatch/internal/config"
)

// LoggerBuilder assembles a zerolog logger from LogConfig.
type LoggerBuilder struct {
	level         zerolog.Level
	format        string
	enableConsole bool
	filePath      string
	maxSizeMB     int
	maxBackups    int
}

// NewLoggerBuilder creates a builder with console output at info level.
func NewLoggerBuilder() *LoggerBuilder {
	return &LoggerBuilder{
		level:         zerolog.InfoLevel,
		format:        "console",
		enableConsole: true,
		maxSizeMB:     config.DefaultMaxLogSizeMB,
		maxBackups:    config.DefaultMaxLogBackups,
	}
}

// WithConfig applies the application log configuration.
func (lb *LoggerBuilder) WithConfig(cfg config.LogConfig) *LoggerBuilder {
	if cfg.LogLevel != "" {
		if level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err == nil {
			lb.level = level
		}
	}
	if cfg.LogFormat != "" {
		lb.format = strings.ToLower(cfg.LogFormat)
	}
	lb.filePath = cfg.LogFile
	if cfg.MaxLogSizeMB > 0 {
		lb.maxSizeMB = cfg.MaxLogSizeMB
	}
	if cfg.MaxLogBackups > 0 {
		lb.maxBackups = cfg.MaxLogBackups
	}
	return lb
}

// Build creates the logger instance.
func (lb *LoggerBuilder) Build() (zerolog.Logger, error) {
	var writers []io.Writer

	if lb.enableConsole {
		writers = append(writers, newConsoleWriter(lb.format))
	}
	if lb.filePath != "" {
		fileWriter, err := newFileWriter(lb.filePath, lb.format, lb.maxSizeMB, lb.maxBackups)
		if err != nil {
			return zerolog.Logger{}, fmt.Errorf("failed to create log file writer: %w", err)
		}
		writers = append(writers, fileWriter)
	}

	if len(writers) == 0 {
		return zerolog.Logger{}, fmt.Errorf("no log output writers configured")
	}

	multiWriter := zerolog.MultiLevelWriter(writers...)
	instance := zerolog.New(multiWriter).
		Level(lb.level).
		With().
		Timestamp().
		Logger()

	zerolog.SetGlobalLevel(lb.level)

	return instance, nil
}
