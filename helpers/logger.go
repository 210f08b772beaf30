package helpers

import (
	"sjsage522/contactscraper/logger"
)

// LoggerInterface records a single diagnostic line
type LoggerInterface interface {
	LogDebug(format string, args ...interface{})
}

// Logger adapts a zerolog-backed logger to LoggerInterface. Diagnostics are
// written without a level so LOG_LEVEL never silences them.
type Logger struct {
	log *logger.Logger
}

// NewLogger creates a new logger instance
func NewLogger(log *logger.Logger) *Logger {
	return &Logger{
		log: log,
	}
}

// LogDebug records a diagnostic message
func (l *Logger) LogDebug(format string, args ...interface{}) {
	l.log.Log().Msgf(format, args...)
}
