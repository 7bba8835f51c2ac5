package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides leveled logging with redaction support
type Logger struct {
	debug   bool
	noColor bool
	base    *zap.Logger
	sugar   *zap.SugaredLogger
}

// New creates a new logger instance writing to stderr
func New(debug, noColor bool) *Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig(noColor)),
		stderrSink{},
		zap.NewAtomicLevelAt(level),
	)

	l := NewWithCore(core, debug)
	l.noColor = noColor
	return l
}

// NewWithCore creates a logger on top of an existing zap core.
func NewWithCore(core zapcore.Core, debug bool) *Logger {
	base := zap.New(core)
	return &Logger{
		debug: debug,
		base:  base,
		sugar: base.Sugar(),
	}
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Debug logs a debug message if debug mode is enabled
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.sugar.Debugf(format, args...)
}

// DebugEnabled reports whether debug output is on.
func (l *Logger) DebugEnabled() bool {
	return l.debug
}

// Zap returns the underlying structured logger.
func (l *Logger) Zap() *zap.Logger {
	return l.base
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() error {
	return l.base.Sync()
}

// encoderConfig renders entries as "<glyph> message {fields}" with no
// timestamp, matching the CLI's terminal output.
func encoderConfig(noColor bool) zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "level",
		EncodeLevel:      levelEncoder(noColor),
		ConsoleSeparator: " ",
		EncodeDuration:   zapcore.StringDurationEncoder,
	}
}

func levelEncoder(noColor bool) zapcore.LevelEncoder {
	return func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		glyph, color := "✓", "32"
		switch level {
		case zapcore.DebugLevel:
			glyph, color = "[DEBUG]", "36"
		case zapcore.WarnLevel:
			glyph, color = "⚠", "33"
		case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
			glyph, color = "✗", "31"
		}
		if noColor {
			enc.AppendString(glyph)
			return
		}
		enc.AppendString("\033[" + color + "m" + glyph + "\033[0m")
	}
}

// stderrSink resolves os.Stderr on every write so redirection after the
// logger is built still applies. Sync is a no-op because fsync on a
// terminal fails on several platforms.
type stderrSink struct{}

func (stderrSink) Write(p []byte) (int, error) {
	return os.Stderr.Write(p)
}

func (stderrSink) Sync() error {
	return nil
}

// Secret represents a value that should be redacted in logs
type Secret string

// String implements the Stringer interface, always returning a redacted value
func (s Secret) String() string {
	return "[REDACTED]"
}

// GoString implements the GoStringer interface for %#v formatting
func (s Secret) GoString() string {
	return "[REDACTED]"
}
