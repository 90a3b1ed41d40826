// Package logging builds the structured logger shared by the CLI commands.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/ccollicutt/chatretro/pkg/config"
)

// Options controls logger construction.
type Options struct {
	// Level is the minimum level to log.
	Level string
	// Format is text or json.
	Format config.LogFormat
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
}

// FromConfig returns logger options for a logging config section.
func FromConfig(lc config.LoggingConfig) Options {
	return Options{Level: lc.Level, Format: lc.Format}
}

// New creates a logger. Unknown levels fall back to info.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	level, err := config.ParseLevel(opts.Level)
	if err != nil {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if opts.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(out, handlerOpts)
	} else {
		handler = slog.NewTextHandler(out, handlerOpts)
	}

	return slog.New(handler)
}
