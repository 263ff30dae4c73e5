// Package logging builds the zerolog loggers used by tickflow components.
//
// Console output is meant for humans (short timestamp, key=value pairs);
// anything else is written as one JSON object per line.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const consoleTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Config selects the level and output format of a logger.
type Config struct {
	// Level is one of trace, debug, info, warn, error. Empty means info.
	Level string `yaml:"level"`

	// Console switches from JSON lines to zerolog.ConsoleWriter.
	Console bool `yaml:"console"`

	// Out is the destination. Nil means os.Stderr.
	Out io.Writer `yaml:"-"`
}

// New creates a logger from cfg.
func New(cfg Config) zerolog.Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	if cfg.Console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: consoleTimeFormat}
	}
	return zerolog.New(out).
		Level(ParseLevel(cfg.Level, zerolog.InfoLevel)).
		With().Timestamp().Logger()
}

// Component returns l tagged with a component field.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

// ParseLevel maps a level name to a zerolog level, falling back to def.
func ParseLevel(s string, def zerolog.Level) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return def
	}
}
