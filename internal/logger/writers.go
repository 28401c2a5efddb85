package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newConsoleWriter creates the stderr writer for the requested format.
func newConsoleWriter(format string) io.Writer {
	if format == "json" {
		return os.Stderr
	}
	return zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
}

// newFileWriter creates a rotating file writer. Console-formatted file
// output is written without color codes.
func newFileWriter(path, format string, maxSizeMB, maxBackups int) (io.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	rotating := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		LocalTime:  true,
	}

	if format == "json" {
		return rotating, nil
	}
	return zerolog.ConsoleWriter{
		Out:        rotating,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}, nil
}
