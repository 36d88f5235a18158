package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNotFound indicates a referenced resource does not exist
	ErrorTypeNotFound ErrorType = "NOT_FOUND"
	// ErrorTypeInvalidReference indicates a malformed media reference
	ErrorTypeInvalidReference ErrorType = "INVALID_REFERENCE"
	// ErrorTypeValidation indicates malformed or out-of-range input
	ErrorTypeValidation ErrorType = "VALIDATION"
	// ErrorTypeForbidden indicates the caller does not own the resource
	ErrorTypeForbidden ErrorType = "FORBIDDEN"
	// ErrorTypeConflict indicates a uniqueness or dependency conflict
	ErrorTypeConflict ErrorType = "CONFLICT"
	// ErrorTypeStorage indicates an infrastructure failure in the store
	ErrorTypeStorage ErrorType = "STORAGE"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error returns the error message
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new application error
func New(errorType ErrorType, message string) error {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

// Wrap wraps an error with an application error
func Wrap(errorType ErrorType, message string, err error) error {
	return &AppError{
		Type:    errorType,
		Message: message,
		Err:     err,
	}
}

// NotFound creates a not found error for the given resource kind and id.
func NotFound(resource string, id any) error {
	return New(ErrorTypeNotFound, fmt.Sprintf("%s %v not found", resource, id))
}

// InvalidReference creates an invalid reference error carrying its reason.
func InvalidReference(reason error) error {
	return Wrap(ErrorTypeInvalidReference, "invalid media reference", reason)
}

// Validation creates a validation error for a single field.
func Validation(field, message string) error {
	return New(ErrorTypeValidation, fmt.Sprintf("%s: %s", field, message))
}

// Forbidden creates a forbidden error
func Forbidden(message string) error {
	return New(ErrorTypeForbidden, message)
}

// Conflict creates a conflict error
func Conflict(message string) error {
	return New(ErrorTypeConflict, message)
}

// Storage wraps an infrastructure failure.
func Storage(message string, err error) error {
	return Wrap(ErrorTypeStorage, message, err)
}

// TypeOf returns the error type of err, or the empty string for foreign errors.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return TypeOf(err) == ErrorTypeNotFound
}

// IsInvalidReference checks if an error is an invalid reference error
func IsInvalidReference(err error) bool {
	return TypeOf(err) == ErrorTypeInvalidReference
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return TypeOf(err) == ErrorTypeValidation
}

// IsForbidden checks if an error is a forbidden error
func IsForbidden(err error) bool {
	return TypeOf(err) == ErrorTypeForbidden
}

// IsConflict checks if an error is a conflict error
func IsConflict(err error) bool {
	return TypeOf(err) == ErrorTypeConflict
}

// IsStorage checks if an error is a storage error
func IsStorage(err error) bool {
	return TypeOf(err) == ErrorTypeStorage
}

// IsDuplicateError checks if an error is a duplicate key error
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "UNIQUE constraint") ||
		strings.Contains(errStr, "duplicate entry")
}

// IsForeignKeyError checks if an error is a foreign key violation
func IsForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "FOREIGN KEY constraint") ||
		strings.Contains(errStr, "violates foreign key constraint")
}

// IsCheckConstraintError checks if an error is a CHECK constraint violation
func IsCheckConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "CHECK constraint failed") ||
		strings.Contains(errStr, "violates check constraint")
}
