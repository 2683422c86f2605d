package log

import (
	"context"
	"fmt"
	"io"

	"github.com/YuminosukeSato/pla/pkg/errors"
	"github.com/rs/zerolog"
)

// ZerologLogger is the default Logger backend.
type ZerologLogger struct {
	zl zerolog.Logger
}

// NewZerologLogger writes JSON records at or above level to w.
func NewZerologLogger(w io.Writer, level Level) *ZerologLogger {
	return FromZerolog(zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger())
}

// FromZerolog wraps an already configured zerolog logger.
func FromZerolog(zl zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{zl: zl}
}

// Debug implements Logger.Debug.
func (l *ZerologLogger) Debug(msg string, fields ...any) {
	emit(l.zl.Debug(), msg, fields)
}

// Info implements Logger.Info.
func (l *ZerologLogger) Info(msg string, fields ...any) {
	emit(l.zl.Info(), msg, fields)
}

// Warn implements Logger.Warn.
func (l *ZerologLogger) Warn(msg string, fields ...any) {
	emit(l.zl.Warn(), msg, fields)
}

// Error implements Logger.Error.
func (l *ZerologLogger) Error(msg string, fields ...any) {
	emit(l.zl.Error(), msg, fields)
}

// With implements Logger.With.
func (l *ZerologLogger) With(fields ...any) Logger {
	ctx := l.zl.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprint(fields[i])
		switch v := fields[i+1].(type) {
		case zerolog.LogObjectMarshaler:
			ctx = ctx.Object(key, v)
		case error:
			ctx = ctx.AnErr(key, v)
		default:
			ctx = ctx.Interface(key, v)
		}
	}
	return &ZerologLogger{zl: ctx.Logger()}
}

// Enabled implements Logger.Enabled.
func (l *ZerologLogger) Enabled(_ context.Context, level Level) bool {
	zlevel := toZerologLevel(level)
	return zlevel >= l.zl.GetLevel() && zlevel >= zerolog.GlobalLevel()
}

// Zerolog exposes the underlying logger.
func (l *ZerologLogger) Zerolog() zerolog.Logger {
	return l.zl
}

func emit(e *zerolog.Event, msg string, fields []any) {
	if e == nil {
		return
	}
	appendFields(e, fields)
	e.Msg(msg)
}

// appendFields adds key/value pairs to e. An error found in a key position is
// attached as the record's error together with its detailed form, which for
// cockroachdb errors includes the stack trace.
func appendFields(e *zerolog.Event, fields []any) {
	for i := 0; i < len(fields); {
		if err, ok := fields[i].(error); ok {
			e.Err(err)
			var m zerolog.LogObjectMarshaler
			if errors.As(err, &m) {
				e.Object(ErrorDetailKey, m)
			}
			if st := stacktrace(err); st != "" {
				e.Str(StacktraceKey, st)
			}
			i++
			continue
		}
		if i+1 >= len(fields) {
			e.Interface("!BADKEY", fields[i])
			return
		}
		key := fmt.Sprint(fields[i])
		switch v := fields[i+1].(type) {
		case zerolog.LogObjectMarshaler:
			e.Object(key, v)
		case error:
			e.AnErr(key, v)
		default:
			e.Interface(key, v)
		}
		i += 2
	}
}

func stacktrace(err error) string {
	detailed := fmt.Sprintf("%+v", err)
	if detailed == err.Error() {
		return ""
	}
	return detailed
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
