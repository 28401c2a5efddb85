package logger

import (
	stdlog "log"

	"github.com/rs/zerolog"

	"github.com/aleister1102/pagewatch/internal/config"
)

// New creates a zerolog logger from the application log configuration.
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	builder := NewLoggerBuilder().WithConfig(cfg)
	instance, err := builder.Build()
	if err != nil {
		return zerolog.Logger{}, err
	}

	// Route the standard log package through zerolog so third-party
	// libraries using it end up in the same sinks.
	stdlog.SetOutput(instance)
	stdlog.SetFlags(0)

	return instance, nil
}
