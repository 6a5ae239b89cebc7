// Package errors provides typed error definitions for gamepanel.
// This package consolidates error handling and provides structured error types
// that can be used for better error classification and handling.
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents a unique identifier for different error types
type ErrorCode string

const (
	// Configuration errors
	ErrConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrConfigParse      ErrorCode = "CONFIG_PARSE"
	ErrConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Gateway errors (remote hosting API)
	ErrGatewayNetwork ErrorCode = "GATEWAY_NETWORK"
	ErrGatewayHTTP    ErrorCode = "GATEWAY_HTTP"
	ErrGatewayDecode  ErrorCode = "GATEWAY_DECODE"

	// Credential errors
	ErrAPIKeyRequired ErrorCode = "API_KEY_REQUIRED"
	ErrAuthFailed     ErrorCode = "AUTH_FAILED"

	// Service and action errors
	ErrServiceNotFound ErrorCode = "SERVICE_NOT_FOUND"
	ErrActionPending   ErrorCode = "ACTION_PENDING"
	ErrActionFailed    ErrorCode = "ACTION_FAILED"

	// Database errors
	ErrDatabaseConnection ErrorCode = "DATABASE_CONNECTION"
	ErrDatabaseQuery      ErrorCode = "DATABASE_QUERY"
	ErrDatabaseMigration  ErrorCode = "DATABASE_MIGRATION"
	ErrPersistence        ErrorCode = "PERSISTENCE"

	// Validation errors
	ErrValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrInvalidInput     ErrorCode = "INVALID_INPUT"

	// Internal errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrTimeout      ErrorCode = "TIMEOUT"
	ErrCancelled    ErrorCode = "CANCELLED"
	ErrShuttingDown ErrorCode = "SHUTTING_DOWN"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// JSON errors
	ErrJSONMarshal   ErrorCode = "JSON_MARSHAL"
	ErrJSONUnmarshal ErrorCode = "JSON_UNMARSHAL"
)

// PanelError represents a structured error with additional context
type PanelError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	Context    map[string]interface{} `json:"context,omitempty"`
	HTTPStatus int                    `json:"-"`
}

// Error implements the error interface
func (e *PanelError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *PanelError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *PanelError) WithContext(key string, value interface{}) *PanelError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithCause adds the underlying cause error
func (e *PanelError) WithCause(cause error) *PanelError {
	e.Cause = cause
	return e
}

// GetHTTPStatus returns the appropriate HTTP status code for this error
func (e *PanelError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}

	// Default status codes based on error type
	switch e.Code {
	case ErrConfigNotFound, ErrServiceNotFound, ErrNotFound:
		return http.StatusNotFound
	case ErrAuthFailed:
		return http.StatusUnauthorized
	case ErrValidationFailed, ErrInvalidInput:
		return http.StatusBadRequest
	case ErrActionPending, ErrAPIKeyRequired:
		return http.StatusConflict
	case ErrGatewayNetwork, ErrGatewayHTTP, ErrGatewayDecode:
		return http.StatusBadGateway
	case ErrTimeout:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new PanelError
func New(code ErrorCode, message string) *PanelError {
	return &PanelError{
		Code:    code,
		Message: message,
	}
}

// NewWithDetails creates a new PanelError with details
func NewWithDetails(code ErrorCode, message, details string) *PanelError {
	return &PanelError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Wrap creates a new PanelError that wraps an existing error
func Wrap(code ErrorCode, message string, cause error) *PanelError {
	return &PanelError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithDetails creates a new PanelError with details that wraps an existing error
func WrapWithDetails(code ErrorCode, message, details string, cause error) *PanelError {
	return &PanelError{
		Code:    code,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}

// IsPanelError checks if an error is a PanelError
func IsPanelError(err error) bool {
	_, ok := err.(*PanelError)
	return ok
}

// GetCode extracts the error code from an error, if it's a PanelError
func GetCode(err error) ErrorCode {
	if pe, ok := err.(*PanelError); ok {
		return pe.Code
	}
	return ""
}

// HasCode checks if an error has a specific error code
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// Common pre-defined errors for consistency
var (
	// Credential errors
	ErrAPIKeyNotConfigured = New(ErrAPIKeyRequired, "API key not configured")

	// Action errors
	ErrActionAlreadyPending = New(ErrActionPending, "an action is already pending for this service")

	// Validation errors
	ErrEmptyInput = New(ErrInvalidInput, "input cannot be empty")
)
