package logging

import (
	"io"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides optional verbose logging and lightweight timing helpers.
// The zero value discards everything.
type Logger struct {
	sugar   *zap.SugaredLogger
	Verbose bool
}

// New writes console-encoded entries to writer. Verbose enables debug level.
func New(writer io.Writer, verbose bool) Logger {
	return newLogger(writer, verbose, zapcore.InfoLevel)
}

// NewConsole is New for a terminal that already shows per-file results:
// only warnings get through unless verbose.
func NewConsole(writer io.Writer, verbose bool) Logger {
	return newLogger(writer, verbose, zapcore.WarnLevel)
}

func newLogger(writer io.Writer, verbose bool, level zapcore.Level) Logger {
	if writer == nil {
		return Logger{Verbose: verbose}
	}
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(writer),
		zap.NewAtomicLevelAt(level),
	)
	return Logger{sugar: zap.New(core).Sugar(), Verbose: verbose}
}

// With returns a logger that attaches key/value pairs to every entry.
func (l Logger) With(keysAndValues ...any) Logger {
	if l.sugar == nil {
		return l
	}
	return Logger{sugar: l.sugar.With(keysAndValues...), Verbose: l.Verbose}
}

func (l Logger) Infof(format string, args ...any) {
	if l.sugar == nil {
		return
	}
	l.sugar.Infof(format, args...)
}

func (l Logger) Warnf(format string, args ...any) {
	if l.sugar == nil {
		return
	}
	l.sugar.Warnf(format, args...)
}

func (l Logger) Verbosef(format string, args ...any) {
	if !l.Verbose || l.sugar == nil {
		return
	}
	l.sugar.Debugf(format, args...)
}

// Measure returns a stop function that logs the elapsed time when called.
func (l Logger) Measure(label string) func() {
	if !l.Verbose {
		return func() {}
	}
	start := time.Now()
	return func() {
		elapsed := time.Since(start).Round(time.Millisecond)
		l.Verbosef("%s took %s", label, elapsed)
	}
}

// Sync flushes buffered entries.
func (l Logger) Sync() error {
	if l.sugar == nil {
		return nil
	}
	return l.sugar.Sync()
}
