// Package errors provides a lightweight structured error type for
// category-based classification in HTTP adapters and background tasks.
package errors

import (
	"fmt"
)

// ErrorCategory classifies a service error for status mapping and logging.
type ErrorCategory string

const (
	// User-facing input errors
	CategoryValidation ErrorCategory = "validation"
	CategoryNotFound   ErrorCategory = "not_found"

	// Instrumentation misuse (programmer errors in metric declarations)
	CategoryMetric ErrorCategory = "metric"

	// Transient host-stats sampling failures
	CategorySampling ErrorCategory = "sampling"

	// Runtime and infrastructure errors
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// ServiceError is a structured error with category, severity, and context.
type ServiceError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for a ServiceError.
type ContextFields map[string]any

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap supports errors.Is/As chains through the cause.
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error.
func (e *ServiceError) WithContext(key string, value any) *ServiceError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new ServiceError.
func New(category ErrorCategory, severity ErrorSeverity, message string) *ServiceError {
	return &ServiceError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new ServiceError that wraps an existing error.
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *ServiceError {
	return &ServiceError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error belongs to a specific category.
func IsCategory(err error, category ErrorCategory) bool {
	if se, ok := err.(*ServiceError); ok {
		return se.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, defaulting to
// CategoryInternal for unclassified errors.
func GetCategory(err error) ErrorCategory {
	if se, ok := err.(*ServiceError); ok {
		return se.Category
	}
	return CategoryInternal
}

// ValidationError creates a new validation error (400 Bad Request).
func ValidationError(message string) *ServiceError {
	return &ServiceError{
		Category: CategoryValidation,
		Severity: SeverityWarning,
		Message:  message,
	}
}

// NotFoundError creates a new not-found error (404).
func NotFoundError(message string) *ServiceError {
	return &ServiceError{
		Category: CategoryNotFound,
		Severity: SeverityWarning,
		Message:  message,
	}
}

// SamplingError wraps a host-stats read failure. Sampling errors are
// logged by the sampler loop and never stop it.
func SamplingError(err error, message string) *ServiceError {
	return &ServiceError{
		Category: CategorySampling,
		Severity: SeverityWarning,
		Message:  message,
		Cause:    err,
	}
}

// WrapError wraps an existing error with severity Error.
func WrapError(err error, category ErrorCategory, message string) *ServiceError {
	return &ServiceError{
		Category: category,
		Severity: SeverityError,
		Message:  message,
		Cause:    err,
	}
}
