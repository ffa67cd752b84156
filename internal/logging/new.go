package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Config selects the backend and verbosity.
//
// Format is one of "text" or "json" (slog) or "console" (zerolog).
// Level is one of debug, info, warn, error; anything else means info.
type Config struct {
	Format string
	Level  string
	Out    io.Writer
}

// New builds a Logger from cfg. Out defaults to os.Stderr so that log lines
// do not interleave with the REPL output on stdout.
func New(cfg Config) Logger {
	w := cfg.Out
	if w == nil {
		w = os.Stderr
	}

	switch strings.ToLower(cfg.Format) {
	case "console":
		return newConsole(w, zerologLevel(cfg.Level))
	case "json":
		return newSlog(w, slogLevel(cfg.Level), true)
	default:
		return newSlog(w, slogLevel(cfg.Level), false)
	}
}

func slogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func zerologLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Nop returns a Logger that discards everything.
func Nop() Logger { return nop{} }

type nop struct{}

func (nop) Debug(context.Context, string, ...any) {}
func (nop) Info(context.Context, string, ...any)  {}
func (nop) Warn(context.Context, string, ...any)  {}
func (nop) Error(context.Context, string, ...any) {}
func (n nop) With(...any) Logger                  { return n }
