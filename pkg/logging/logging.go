// Package logging builds the slog logger shared by the CLI commands.
//
// Records always go to a text handler on the given writer (stderr for the
// CLI). When a log file is configured, the same records are also written to
// it as JSON.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// Config configures the logger
type Config struct {
	// Level is one of debug, info, warn, error
	Level string
	// File is an optional path receiving JSON records
	File string
}

// ParseLevel parses a level name
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log level '%s': %w", name, err)
	}
	return level, nil
}

// New builds a logger writing to w and, if configured, to the log file.
// The returned close function releases the log file.
func New(config Config, w io.Writer) (*slog.Logger, func() error, error) {
	level, err := ParseLevel(config.Level)
	if err != nil {
		return nil, nil, err
	}

	options := &slog.HandlerOptions{Level: level}
	handlers := []slog.Handler{slog.NewTextHandler(w, options)}
	closer := func() error { return nil }

	if config.File != "" {
		file, err := os.OpenFile(config.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(file, options))
		closer = file.Close
	}

	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}
