package log

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/YuminosukeSato/pla/pkg/errors"
	"github.com/rs/zerolog"
)

// ZerologProvider is the LoggerProvider used by the package-level functions.
type ZerologProvider struct {
	mu     sync.RWMutex
	w      io.Writer
	level  Level
	logger Logger
}

// NewZerologProvider creates a provider writing to w.
func NewZerologProvider(w io.Writer, level Level) *ZerologProvider {
	return &ZerologProvider{w: w, level: level, logger: NewZerologLogger(w, level)}
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *ZerologProvider) GetLogger() Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.logger
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *ZerologProvider) GetLoggerWithName(name string) Logger {
	return p.GetLogger().With(ComponentKey, name)
}

// SetLevel implements LoggerProvider.SetLevel.
func (p *ZerologProvider) SetLevel(level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = level
	p.logger = NewZerologLogger(p.w, level)
}

func (p *ZerologProvider) setLogger(l Logger) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logger = l
}

var defaultProvider = NewZerologProvider(os.Stderr, LevelInfo)

// GetLogger returns the process-wide logger.
func GetLogger() Logger {
	return defaultProvider.GetLogger()
}

// GetLoggerWithName returns the process-wide logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	return defaultProvider.GetLoggerWithName(name)
}

// SetLogger replaces the process-wide logger.
func SetLogger(l Logger) {
	defaultProvider.setLogger(l)
}

// ParseLevel converts "debug", "info", "warn" or "error" to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.NewValidationError("log_level", "must be one of debug, info, warn, error", s)
	}
}

// SetupLogger installs a zerolog logger at the given level as the
// process-wide logger and routes library warnings (errors.Warn) to it.
// When pretty is set, records are written through zerolog.ConsoleWriter.
func SetupLogger(w io.Writer, level string, pretty bool) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	logger := NewZerologLogger(w, lvl)
	SetLogger(logger)

	errors.SetZerologWarnFunc(func(warning error) {
		logger.Warn("warning", "warning", warning)
	})
	return nil
}
