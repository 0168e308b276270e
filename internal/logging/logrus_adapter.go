package logging

import (
	"github.com/sirupsen/logrus"
)

// LogrusAdapter adapts logrus.Logger to implement our Logger interface.
// This keeps the rest of the codebase decoupled from the concrete framework.
type LogrusAdapter struct {
	entry *logrus.Entry
}

// NewLogrusAdapter creates a Logger backed by logrus with the given level
// ("debug", "info", "warn", "error") and format ("json" or "text").
func NewLogrusAdapter(level, format string) Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return &LogrusAdapter{entry: logrus.NewEntry(logger)}
}

// NewLogrusAdapterFromLogger wraps an existing logrus.Logger.
func NewLogrusAdapterFromLogger(logger *logrus.Logger) Logger {
	if logger == nil {
		logger = logrus.New()
	}
	return &LogrusAdapter{entry: logrus.NewEntry(logger)}
}

func toLogrusFields(fields []Field) logrus.Fields {
	lf := make(logrus.Fields, len(fields))
	for _, f := range fields {
		lf[f.Key] = f.Value
	}
	return lf
}

// Debug logs a debug-level message with optional fields.
func (a *LogrusAdapter) Debug(msg string, fields ...Field) {
	a.entry.WithFields(toLogrusFields(fields)).Debug(msg)
}

// Info logs an info-level message with optional fields.
func (a *LogrusAdapter) Info(msg string, fields ...Field) {
	a.entry.WithFields(toLogrusFields(fields)).Info(msg)
}

// Warn logs a warning-level message with optional fields.
func (a *LogrusAdapter) Warn(msg string, fields ...Field) {
	a.entry.WithFields(toLogrusFields(fields)).Warn(msg)
}

// Error logs an error-level message with optional fields.
func (a *LogrusAdapter) Error(msg string, fields ...Field) {
	a.entry.WithFields(toLogrusFields(fields)).Error(msg)
}

// WithError returns a new logger with an error field attached.
func (a *LogrusAdapter) WithError(err error) Logger {
	return &LogrusAdapter{entry: a.entry.WithError(err)}
}

// WithField returns a new logger with a single field attached.
func (a *LogrusAdapter) WithField(key string, value interface{}) Logger {
	return &LogrusAdapter{entry: a.entry.WithField(key, value)}
}
