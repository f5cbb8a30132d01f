// Package apperr defines the application error taxonomy and the handler that
// converts failures into log records, Sentry events and user-facing messages.
package apperr

import "fmt"

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

type AppError struct {
	Code        string
	Message     string
	UserMessage string
	Severity    Severity
	Retryable   bool
	cause       error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// NewValidationError covers answer sets that fail schema validation. Not
// retryable: the client must fix the fields first.
func NewValidationError(msg string) *AppError {
	return &AppError{
		Code:        "E100",
		Message:     msg,
		UserMessage: "Some fields are invalid. Please review the form and try again.",
		Severity:    SeverityLow,
		Retryable:   false,
	}
}

// NewDatabaseError covers submission persistence failures.
func NewDatabaseError(cause error) *AppError {
	var underlyingMsg string
	if cause != nil {
		underlyingMsg = cause.Error()
	}

	return &AppError{
		Code:        "E200",
		Message:     fmt.Sprintf("database error: %s", underlyingMsg),
		UserMessage: "We couldn't save your brief. Your answers are kept, please try again.",
		Severity:    SeverityHigh,
		Retryable:   true,
		cause:       cause,
	}
}

// NewStorageError covers draft snapshot read/write failures. These degrade
// silently: the in-memory session stays authoritative.
func NewStorageError(cause error) *AppError {
	var underlyingMsg string
	if cause != nil {
		underlyingMsg = cause.Error()
	}

	return &AppError{
		Code:        "E300",
		Message:     fmt.Sprintf("draft storage error: %s", underlyingMsg),
		UserMessage: "",
		Severity:    SeverityMedium,
		Retryable:   true,
		cause:       cause,
	}
}

// NewNotificationError covers failures of the owner-notification channel.
// Never surfaced to the submitting client.
func NewNotificationError(cause error) *AppError {
	return &AppError{
		Code:        "E400",
		Message:     "owner notification failed",
		UserMessage: "",
		Severity:    SeverityMedium,
		Retryable:   true,
		cause:       cause,
	}
}

// NewRateLimitError covers clients exceeding the submission limit.
func NewRateLimitError(retryAfter int) *AppError {
	return &AppError{
		Code:        "E500",
		Message:     fmt.Sprintf("rate limit exceeded: retry after %d seconds", retryAfter),
		UserMessage: "Too many requests. Please try again in a moment.",
		Severity:    SeverityLow,
		Retryable:   false,
	}
}
