package errors

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Configuration errors, fatal at startup
	ErrorTypeConfigFormat     ErrorType = "CONFIG_FORMAT"
	ErrorTypeConfigValidation ErrorType = "CONFIG_VALIDATION"

	// Validation errors, recoverable per request
	ErrorTypeDomainValidation  ErrorType = "DOMAIN_VALIDATION"
	ErrorTypeRequestValidation ErrorType = "REQUEST_VALIDATION"

	// Infrastructure errors
	ErrorTypeStorage  ErrorType = "STORAGE"
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// Capability errors (graph / extraction adapters)
	ErrorTypeGraph      ErrorType = "GRAPH"
	ErrorTypeExtraction ErrorType = "EXTRACTION"

	ErrorTypeInternal ErrorType = "INTERNAL"
)

// Violation describes a single failed constraint on a named field.
type Violation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Reason)
}

// AppError represents an application-specific error
type AppError struct {
	Type       ErrorType   `json:"type"`
	Message    string      `json:"message"`
	Violations []Violation `json:"violations,omitempty"`
	Cause      error       `json:"-"`
	StackTrace string      `json:"-"`
	HTTPStatus int         `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	msg := e.Message
	if len(e.Violations) > 0 {
		parts := make([]string, len(e.Violations))
		for i, v := range e.Violations {
			parts[i] = v.String()
		}
		msg = fmt.Sprintf("%s (%s)", msg, strings.Join(parts, "; "))
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, msg)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// captureStackTrace captures the current stack trace
func captureStackTrace() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	stack := ""
	for {
		frame, more := frames.Next()
		stack += fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function)
		if !more {
			break
		}
	}
	return stack
}

// Constructor functions for common error types

// NewConfigFormatError reports a catalog source that could not be parsed as
// structured data.
func NewConfigFormatError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeConfigFormat,
		Message:    message,
		Cause:      cause,
		HTTPStatus: http.StatusInternalServerError,
		StackTrace: captureStackTrace(),
	}
}

// NewConfigValidationError reports parsed configuration that violates a
// catalog invariant.
func NewConfigValidationError(message string, violations ...Violation) *AppError {
	return &AppError{
		Type:       ErrorTypeConfigValidation,
		Message:    message,
		Violations: violations,
		HTTPStatus: http.StatusInternalServerError,
		StackTrace: captureStackTrace(),
	}
}

// NewDomainValidationError reports domain invariants violated during
// aggregate or value object construction.
func NewDomainValidationError(violations ...Violation) *AppError {
	return &AppError{
		Type:       ErrorTypeDomainValidation,
		Message:    "domain validation failed",
		Violations: violations,
		HTTPStatus: http.StatusBadRequest,
		StackTrace: captureStackTrace(),
	}
}

// NewRequestValidationError reports an untrusted request rejected at the
// boundary, before any domain object was built.
func NewRequestValidationError(violations ...Violation) *AppError {
	return &AppError{
		Type:       ErrorTypeRequestValidation,
		Message:    "request validation failed",
		Violations: violations,
		HTTPStatus: http.StatusBadRequest,
		StackTrace: captureStackTrace(),
	}
}

// NewStorageError reports an infrastructure fault on save or get
func NewStorageError(operation string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeStorage,
		Message:    fmt.Sprintf("storage operation '%s' failed", operation),
		Cause:      cause,
		HTTPStatus: http.StatusInternalServerError,
		StackTrace: captureStackTrace(),
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource, id string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    fmt.Sprintf("%s not found: %s", resource, id),
		HTTPStatus: http.StatusNotFound,
		StackTrace: captureStackTrace(),
	}
}

// NewGraphError reports a knowledge-graph capability failure
func NewGraphError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeGraph,
		Message:    message,
		Cause:      cause,
		HTTPStatus: http.StatusBadGateway,
		StackTrace: captureStackTrace(),
	}
}

// NewExtractionError reports an entity-extraction capability failure
func NewExtractionError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeExtraction,
		Message:    message,
		Cause:      cause,
		HTTPStatus: http.StatusBadGateway,
		StackTrace: captureStackTrace(),
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		StackTrace: captureStackTrace(),
	}
}

// Helper functions

// GetAppError extracts AppError from an error chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

// IsStorage checks if an error is a storage infrastructure error
func IsStorage(err error) bool {
	return IsType(err, ErrorTypeStorage)
}

// IsDomainValidation checks if an error is a domain validation error
func IsDomainValidation(err error) bool {
	return IsType(err, ErrorTypeDomainValidation)
}

// IsRequestValidation checks if an error is a request validation error
func IsRequestValidation(err error) bool {
	return IsType(err, ErrorTypeRequestValidation)
}

// IsValidation reports whether an error is caller-caused, at either the
// boundary or the domain layer. Callers use this to distinguish "your input
// was invalid" from "we failed to persist a valid input".
func IsValidation(err error) bool {
	return IsDomainValidation(err) || IsRequestValidation(err)
}

// IsConfig reports whether an error is a configuration error
func IsConfig(err error) bool {
	return IsType(err, ErrorTypeConfigFormat) || IsType(err, ErrorTypeConfigValidation)
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	// If it's already an AppError, add context to message
	if appErr := GetAppError(err); appErr != nil {
		appErr.Message = fmt.Sprintf("%s: %s", message, appErr.Message)
		return appErr
	}

	// Otherwise create a new internal error
	return NewInternalError(message).WithCause(err)
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}
