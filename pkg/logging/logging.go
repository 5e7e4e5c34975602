// Package logging builds the zerolog loggers used by the CLI and the server.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	EnvLogLevel     = "LSBMP_LOG_LEVEL"
	EnvLogTimestamp = "LSBMP_LOG_TIMESTAMP"
	EnvLogNoColor   = "LSBMP_LOG_NOCOLOR"
	EnvLogJSON      = "LSBMP_LOG_JSON"
)

// Options controls logger construction.
type Options struct {
	Level     string
	Timestamp bool
	NoColor   bool
	// JSON selects machine-readable output instead of the console writer.
	JSON   bool
	Output io.Writer
}

// DefaultOptions returns options for interactive use.
func DefaultOptions() Options {
	return Options{
		Level:     "info",
		Timestamp: true,
		Output:    os.Stderr,
	}
}

// New builds a logger from opts after applying environment overrides.
func New(opts Options) zerolog.Logger {
	applyEnvOverrides(&opts)
	if opts.Output == nil {
		opts.Output = os.Stderr
	}

	out := opts.Output
	if !opts.JSON {
		out = zerolog.ConsoleWriter{
			Out:        opts.Output,
			NoColor:    opts.NoColor,
			TimeFormat: time.RFC3339,
		}
	}

	lvl, ok := ParseLevel(opts.Level)
	if !ok {
		lvl = zerolog.InfoLevel
	}

	ctx := zerolog.New(out).Level(lvl).With()
	if opts.Timestamp {
		ctx = ctx.Timestamp()
	}
	return ctx.Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// ParseLevel maps a configuration string to a zerolog level.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func applyEnvOverrides(opts *Options) {
	if raw := os.Getenv(EnvLogLevel); raw != "" {
		if _, ok := ParseLevel(raw); ok {
			opts.Level = raw
		}
	}
	if v, ok := parseBool(os.Getenv(EnvLogTimestamp)); ok {
		opts.Timestamp = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		opts.NoColor = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogJSON)); ok {
		opts.JSON = v
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
