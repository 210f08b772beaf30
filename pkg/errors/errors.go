package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents transport-level failures (DNS, connect, timeout)
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeStatus represents a response with a status other than 200
	ErrorTypeStatus ErrorType = "status"
	// ErrorTypeExhausted represents a fetch that failed on every attempt
	ErrorTypeExhausted ErrorType = "exhausted"
	// ErrorTypeParsing represents HTML parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeOutput represents CSV or spreadsheet write errors
	ErrorTypeOutput ErrorType = "output"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// ScraperError represents a scraper-specific error
type ScraperError struct {
	Type    ErrorType
	Source  string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *ScraperError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Source, e.Message)
}

// Unwrap returns the underlying error
func (e *ScraperError) Unwrap() error {
	return e.Err
}

// New creates a new ScraperError
func New(errType ErrorType, source, message string, err error) *ScraperError {
	return &ScraperError{
		Type:    errType,
		Source:  source,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewNetwork creates a new network error
func NewNetwork(source, message string, err error) *ScraperError {
	return New(ErrorTypeNetwork, source, message, err)
}

// NewStatus creates an error for an unexpected HTTP status code
func NewStatus(source string, statusCode int) *ScraperError {
	return New(ErrorTypeStatus, source, fmt.Sprintf("unexpected status code: %d", statusCode), nil)
}

// NewExhausted creates an error for a fetch that ran out of attempts
func NewExhausted(source string, attempts int, last error) *ScraperError {
	return New(ErrorTypeExhausted, source, fmt.Sprintf("gave up after %d attempts", attempts), last)
}

// NewParsing creates a new parsing error
func NewParsing(source, message string, err error) *ScraperError {
	return New(ErrorTypeParsing, source, message, err)
}

// NewOutput creates a new output error
func NewOutput(path, message string, err error) *ScraperError {
	return New(ErrorTypeOutput, path, message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *ScraperError {
	return New(ErrorTypeConfiguration, "config", message, err)
}

// IsType reports whether err is a *ScraperError of the given type
func IsType(err error, errType ErrorType) bool {
	se, ok := err.(*ScraperError)
	return ok && se.Type == errType
}
