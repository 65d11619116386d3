package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeFetch represents network/browser fetch errors
	ErrorTypeFetch ErrorType = "fetch"
	// ErrorTypeParse represents HTML parsing/extraction errors
	ErrorTypeParse ErrorType = "parse"
	// ErrorTypeRateLimit represents rate limiting errors
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypePersist represents persistence sink errors
	ErrorTypePersist ErrorType = "persist"
)

// ScrapeError represents a pipeline error scoped to one site or sink
type ScrapeError struct {
	Type    ErrorType
	Site    string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Site, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Site, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is worth another attempt
func (e *ScrapeError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeFetch, ErrorTypePersist:
		return true
	default:
		return false
	}
}

// New creates a new ScrapeError
func New(errType ErrorType, site, message string, err error) *ScrapeError {
	return &ScrapeError{
		Type:    errType,
		Site:    site,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewFetch creates a new fetch error
func NewFetch(site, message string, err error) *ScrapeError {
	return New(ErrorTypeFetch, site, message, err)
}

// NewParse creates a new parse error
func NewParse(site, message string, err error) *ScrapeError {
	return New(ErrorTypeParse, site, message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(site string, duration time.Duration) *ScrapeError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, site, message, nil)
}

// NewPersist creates a new persistence error
func NewPersist(sink, message string, err error) *ScrapeError {
	return New(ErrorTypePersist, sink, message, err)
}
