// Package errors provides structured error handling for the application
// with machine-readable codes and HTTP status mapping.
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents an error code
type ErrorCode string

const (
	// Client errors (4xx)
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Server errors (5xx)
	CodeInternal           ErrorCode = "INTERNAL_ERROR"
	CodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"

	// Business logic errors
	CodeDatasetNotFound  ErrorCode = "DATASET_NOT_FOUND"
	CodeDatasetMalformed ErrorCode = "DATASET_MALFORMED"
	CodeAIUnavailable    ErrorCode = "AI_UNAVAILABLE"
	CodePlanInvalid      ErrorCode = "PLAN_INVALID"
)

// AppError represents an application error with structured information
type AppError struct {
	Code     ErrorCode              `json:"code"`
	Message  string                 `json:"message"`
	Details  string                 `json:"details,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Cause    error                  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the appropriate HTTP status code
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidationFailed, CodePlanInvalid:
		return http.StatusBadRequest
	case CodeNotFound, CodeDatasetNotFound:
		return http.StatusNotFound
	case CodeServiceUnavailable, CodeAIUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WithMetadata adds metadata to the error
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithCause adds a cause error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message, details string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewDatasetNotFoundError reports a missing dataset file at startup.
func NewDatasetNotFoundError(path string) *AppError {
	return NewAppError(CodeDatasetNotFound,
		"The recipe dataset was not found. Please provide the correct file.", path)
}

// NewAIUnavailableError reports a failed call to the completion service.
func NewAIUnavailableError(details string) *AppError {
	return NewAppError(CodeAIUnavailable, "Completion service is unavailable", details)
}

// NewPlanInvalidError reports a generated query plan that failed validation.
func NewPlanInvalidError(details string) *AppError {
	return NewAppError(CodePlanInvalid, "Generated query plan is invalid", details)
}
