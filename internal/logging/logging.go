// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogFileName is written inside the data directory
const LogFileName = "mrmm.log"

// Options controls where log output goes and how much of it there is
type Options struct {
	Verbosity int       // 0 warn, 1 info, 2 debug, 3+ trace
	Level     string    // Explicit level name; overrides Verbosity when set
	Console   io.Writer // Human-readable output, nil to disable (e.g. in the TUI)
	File      string    // Append-mode log file, empty to disable
}

// Setup configures the global logger. It returns a close function for the
// log file, which is safe to call when no file was opened.
func Setup(opts Options) func() error {
	zerolog.SetGlobalLevel(levelFor(opts))

	var writers []io.Writer
	if opts.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        opts.Console,
			TimeFormat: time.Kitchen,
		})
	}

	closeFn := func() error { return nil }
	var fileErr error
	if opts.File != "" {
		f, err := openLogFile(opts.File)
		if err != nil {
			fileErr = err
		} else {
			writers = append(writers, f)
			closeFn = f.Close
		}
	}

	if len(writers) == 0 {
		log.Logger = zerolog.Nop()
		return closeFn
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", opts.File).Msg("Failed to open log file, logging to console only")
	}
	log.Debug().Str("level", zerolog.GlobalLevel().String()).Str("logFile", opts.File).Msg("Logger initialized")

	return closeFn
}

// GetLogger returns a logger tagged with the given component name
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// ParseLevel converts a level name to a zerolog level, defaulting to warn
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || s == "" {
		return zerolog.WarnLevel
	}
	return lvl
}

func levelFor(opts Options) zerolog.Level {
	if opts.Level != "" {
		return ParseLevel(opts.Level)
	}
	switch {
	case opts.Verbosity <= 0:
		return zerolog.WarnLevel
	case opts.Verbosity == 1:
		return zerolog.InfoLevel
	case opts.Verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}
