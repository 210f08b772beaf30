package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Tag prefixes every diagnostic line written to the console
const Tag = "[DEBUG]"

// Logger represents a structured logger
type Logger struct {
	logger zerolog.Logger
}

var (
	// Default is the default logger instance
	Default *Logger
)

// Init initializes the default logger writing to stdout
func Init() {
	level := getLogLevel()

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(level)

	Default = New(os.Stdout)

	Default.Info().
		Str("level", level.String()).
		Msg("Logger initialized")
}

// New creates a console logger writing to w
func New(w io.Writer) *Logger {
	output := zerolog.ConsoleWriter{
		Out:           w,
		TimeFormat:    time.RFC3339,
		NoColor:       w != os.Stdout,
		FormatMessage: formatMessage,
	}

	return &Logger{logger: zerolog.New(output).With().Timestamp().Logger()}
}

// getLogLevel returns the log level from environment variable
func getLogLevel() zerolog.Level {
	levelStr := os.Getenv("LOG_LEVEL")
	if levelStr == "" {
		if os.Getenv("SCRAPER_ENVIRONMENT") == "production" {
			return zerolog.InfoLevel
		}
		return zerolog.DebugLevel
	}

	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Info returns an info event
func (l *Logger) Info() *zerolog.Event {
	return l.logger.Info()
}

// Log returns an event without a level, never filtered by the global level
func (l *Logger) Log() *zerolog.Event {
	return l.logger.Log()
}

// Fatal returns a fatal event
func (l *Logger) Fatal() *zerolog.Event {
	return l.logger.Fatal()
}

// Info logs an info message on the default logger
func Info(format string, v ...interface{}) {
	if Default == nil {
		Init()
	}
	Default.Info().Msgf(format, v...)
}

// NewDiagnostic creates a plain line sink for job diagnostics. Lines carry the
// tagged message only: no timestamp, level or fields.
func NewDiagnostic(w io.Writer) *Logger {
	output := zerolog.ConsoleWriter{
		Out:           w,
		NoColor:       true,
		PartsOrder:    []string{zerolog.MessageFieldName},
		FormatMessage: formatMessage,
	}

	return &Logger{logger: zerolog.New(output)}
}

// ForDiagnostics creates the diagnostic sink on stdout
func ForDiagnostics() *Logger {
	return NewDiagnostic(os.Stdout)
}

// formatMessage prefixes a message with Tag
func formatMessage(i interface{}) string {
	if i == nil {
		return Tag
	}
	return fmt.Sprintf("%s %s", Tag, i)
}
