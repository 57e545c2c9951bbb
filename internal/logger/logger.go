package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is a thin wrapper around logrus that accepts optional field maps.
type Logger struct {
	logger *logrus.Logger
}

// NewLogger builds a logger writing to stdout. Unknown levels fall back to
// info.
func NewLogger(level string, jsonFormat bool) *Logger {
	return newLogger(os.Stdout, level, jsonFormat)
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return newLogger(io.Discard, "panic", false)
}

func newLogger(out io.Writer, level string, jsonFormat bool) *Logger {
	l := logrus.New()
	l.Out = out

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if jsonFormat {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			PadLevelText:  true,
		})
	}
	return &Logger{logger: l}
}

// Level reports the configured level.
func (l *Logger) Level() logrus.Level { return l.logger.GetLevel() }

func (l *Logger) Debug(msg string, fields ...logrus.Fields) {
	l.logWithFields(logrus.DebugLevel, msg, fields...)
}

func (l *Logger) Info(msg string, fields ...logrus.Fields) {
	l.logWithFields(logrus.InfoLevel, msg, fields...)
}

func (l *Logger) Warn(msg string, fields ...logrus.Fields) {
	l.logWithFields(logrus.WarnLevel, msg, fields...)
}

func (l *Logger) Error(msg string, fields ...logrus.Fields) {
	l.logWithFields(logrus.ErrorLevel, msg, fields...)
}

// Fatal logs at error level and exits the process.
func (l *Logger) Fatal(msg string, fields ...logrus.Fields) {
	l.logWithFields(logrus.ErrorLevel, msg, fields...)
	os.Exit(1)
}

func (l *Logger) logWithFields(level logrus.Level, msg string, fields ...logrus.Fields) {
	entry := logrus.NewEntry(l.logger)
	for _, f := range fields {
		entry = entry.WithFields(f)
	}
	entry.Log(level, msg)
}
