// File: internal/logger/logger.go
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Level is shared by every logger built here so --debug can raise verbosity after startup
var Level = new(slog.LevelVar)

func NewLoggerTo(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: Level,
	}

	handler := slog.NewTextHandler(w, opts)

	logger := slog.New(handler)

	slog.SetDefault(logger)
	return logger
}

// Sets the shared level from a config value such as "debug" or "warn"
func SetLevel(name string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", name, err)
	}
	Level.Set(lvl)
	return nil
}
