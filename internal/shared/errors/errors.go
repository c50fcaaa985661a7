// Package errors provides application-level error types and utilities.
// Every failure a request can surface maps to exactly one ErrorType and HTTP status.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation      ErrorType = "validation_error"
	ErrorTypeNotFound        ErrorType = "not_found"
	ErrorTypeBadRequest      ErrorType = "bad_request"
	ErrorTypeTooLarge        ErrorType = "payload_too_large"
	ErrorTypeOCRDecode       ErrorType = "ocr_decode_error"
	ErrorTypeOCREngine       ErrorType = "ocr_engine_error"
	ErrorTypeModelInference  ErrorType = "model_inference_error"
	ErrorTypeStorage         ErrorType = "storage_error"
	ErrorTypeConfiguration   ErrorType = "configuration_error"
	ErrorTypeTooManyRequests ErrorType = "rate_limited"
	ErrorTypeInternal        ErrorType = "internal_error"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func newAppError(errType ErrorType, code int, message string, details []string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    errType,
		Message: message,
		Code:    code,
		Details: detail,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, message, details)
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeBadRequest, http.StatusBadRequest, message, details)
}

// NewPayloadTooLargeError is returned when an upload exceeds the configured limit.
func NewPayloadTooLargeError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeTooLarge, http.StatusRequestEntityTooLarge, message, details)
}

// NewOCRDecodeError reports bytes that could not be decoded as an image.
func NewOCRDecodeError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeOCRDecode, http.StatusBadRequest, message, details)
}

// NewOCREngineError reports a failure inside the text recognition engine.
func NewOCREngineError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeOCREngine, http.StatusBadGateway, message, details)
}

// NewModelInferenceError reports a classifier prediction failure.
func NewModelInferenceError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeModelInference, http.StatusInternalServerError, message, details)
}

// NewStorageError reports a relational or document store failure.
func NewStorageError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeStorage, http.StatusInternalServerError, message, details)
}

// NewConfigurationError is used at startup; it is never rendered to clients.
func NewConfigurationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConfiguration, http.StatusInternalServerError, message, details)
}

// NewTooManyRequestsError creates a new rate limit error
func NewTooManyRequestsError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeTooManyRequests, http.StatusTooManyRequests, message, details)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasType reports whether err wraps an AppError of the given type.
func HasType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return HasType(err, ErrorTypeNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return HasType(err, ErrorTypeValidation)
}
