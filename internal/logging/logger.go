package logging

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the logging contract used across the application.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
	Printf(format string, args ...any)
	Println(args ...any)
}

// Field is a single structured key/value attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// String creates a string field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates an int field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Uint64 creates a uint64 field.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 creates a float64 field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Duration creates a time.Duration field.
func Duration(key string, value time.Duration) Field { return Field{Key: key, Value: value} }

// Err creates a field holding an error under the "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// ZerologAdapter implements Logger on top of a zerolog.Logger.
type ZerologAdapter struct {
	logger zerolog.Logger
}

var _ Logger = (*ZerologAdapter)(nil)

// NewZerologAdapter wraps an existing zerolog.Logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// NewConsoleLogger returns a human-readable, colorless zerolog logger
// writing to w.
func NewConsoleLogger(w io.Writer, component string, level zerolog.Level) Logger {
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: true}
	return NewZerologAdapter(zerolog.New(cw).Level(level).With().Timestamp().Str("component", component).Logger())
}

// NewLoggerWithLevel returns a JSON logger writing to w, tagging every
// entry with the given component name and dropping entries below level.
func NewLoggerWithLevel(w io.Writer, component string, level zerolog.Level) Logger {
	return NewZerologAdapter(zerolog.New(w).Level(level).With().Timestamp().Str("component", component).Logger())
}

// Log output formats accepted by ParseFormat.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
	FormatText    = "text"
)

// ParseFormat normalizes a configuration format name. An empty name maps
// to FormatJSON.
func ParseFormat(name string) (string, error) {
	switch f := strings.ToLower(name); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatConsole, FormatText:
		return f, nil
	default:
		return "", fmt.Errorf("unknown log format %q (want %s, %s or %s)", name, FormatJSON, FormatConsole, FormatText)
	}
}

// New builds the logger for a format: JSON lines, the zerolog console
// writer, or plain log.Logger lines.
func New(w io.Writer, component, format string, level zerolog.Level) (Logger, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	switch f {
	case FormatConsole:
		return NewConsoleLogger(w, component, level), nil
	case FormatText:
		return NewStdLoggerWithLevel(log.New(w, component+": ", log.LstdFlags), level), nil
	default:
		return NewLoggerWithLevel(w, component, level), nil
	}
}

// ParseLevel maps a configuration level name to a zerolog level.
// An empty name maps to warn.
func ParseLevel(name string) (zerolog.Level, error) {
	if name == "" {
		return zerolog.WarnLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

// Debug logs at debug level.
func (z *ZerologAdapter) Debug(msg string, fields ...Field) {
	applyFields(z.logger.Debug(), fields).Msg(msg)
}

// Info logs at info level.
func (z *ZerologAdapter) Info(msg string, fields ...Field) {
	applyFields(z.logger.Info(), fields).Msg(msg)
}

// Warn logs at warn level.
func (z *ZerologAdapter) Warn(msg string, fields ...Field) {
	applyFields(z.logger.Warn(), fields).Msg(msg)
}

// Error logs at error level with the error attached.
func (z *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	applyFields(z.logger.Error().Err(err), fields).Msg(msg)
}

// Printf logs a formatted message at info level.
func (z *ZerologAdapter) Printf(format string, args ...any) {
	z.logger.Info().Msgf(format, args...)
}

// Println logs its arguments, space separated, at info level.
func (z *ZerologAdapter) Println(args ...any) {
	z.logger.Info().Msg(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

func applyFields(ev *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			ev = ev.Str(f.Key, v)
		case int:
			ev = ev.Int(f.Key, v)
		case int64:
			ev = ev.Int64(f.Key, v)
		case uint64:
			ev = ev.Uint64(f.Key, v)
		case float64:
			ev = ev.Float64(f.Key, v)
		case bool:
			ev = ev.Bool(f.Key, v)
		case time.Duration:
			ev = ev.Dur(f.Key, v)
		case error:
			ev = ev.AnErr(f.Key, v)
		default:
			ev = ev.Interface(f.Key, v)
		}
	}
	return ev
}

// StdLoggerAdapter implements Logger on top of the standard library logger.
// Entries below its level are dropped; Printf and Println count as info.
type StdLoggerAdapter struct {
	logger *log.Logger
	level  zerolog.Level
}

var _ Logger = (*StdLoggerAdapter)(nil)

// NewStdLoggerAdapter wraps a *log.Logger and writes every level.
func NewStdLoggerAdapter(logger *log.Logger) *StdLoggerAdapter {
	return NewStdLoggerWithLevel(logger, zerolog.DebugLevel)
}

// NewStdLoggerWithLevel is NewStdLoggerAdapter with a minimum level.
func NewStdLoggerWithLevel(logger *log.Logger, level zerolog.Level) *StdLoggerAdapter {
	return &StdLoggerAdapter{logger: logger, level: level}
}

func (s *StdLoggerAdapter) enabled(level zerolog.Level) bool {
	return level >= s.level
}

// Debug logs with a [DEBUG] prefix.
func (s *StdLoggerAdapter) Debug(msg string, fields ...Field) {
	if s.enabled(zerolog.DebugLevel) {
		s.logger.Println("[DEBUG] " + msg + formatFields(fields))
	}
}

// Info logs with an [INFO] prefix.
func (s *StdLoggerAdapter) Info(msg string, fields ...Field) {
	if s.enabled(zerolog.InfoLevel) {
		s.logger.Println("[INFO] " + msg + formatFields(fields))
	}
}

// Warn logs with a [WARN] prefix.
func (s *StdLoggerAdapter) Warn(msg string, fields ...Field) {
	if s.enabled(zerolog.WarnLevel) {
		s.logger.Println("[WARN] " + msg + formatFields(fields))
	}
}

// Error logs with an [ERROR] prefix followed by the error.
func (s *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	if s.enabled(zerolog.ErrorLevel) {
		s.logger.Printf("[ERROR] %s: %v%s\n", msg, err, formatFields(fields))
	}
}

// Printf logs a formatted message.
func (s *StdLoggerAdapter) Printf(format string, args ...any) {
	if s.enabled(zerolog.InfoLevel) {
		s.logger.Printf(format, args...)
	}
}

// Println logs its arguments.
func (s *StdLoggerAdapter) Println(args ...any) {
	if s.enabled(zerolog.InfoLevel) {
		s.logger.Println(args...)
	}
}

func formatFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	return b.String()
}
