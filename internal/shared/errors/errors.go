// Package errors provides application-level error types and utilities.
// It defines the error taxonomy shared by the rental, timesheet, and
// access subsystems: validation, not found, state conflict, permission
// denied, asset conflict, and concurrency conflict errors.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation          ErrorType = "validation_error"
	ErrorTypeNotFound            ErrorType = "not_found"
	ErrorTypeConflict            ErrorType = "conflict"
	ErrorTypeStateConflict       ErrorType = "state_conflict"
	ErrorTypeAssetConflict       ErrorType = "asset_conflict"
	ErrorTypeConcurrencyConflict ErrorType = "concurrency_conflict"
	ErrorTypePermissionDenied    ErrorType = "permission_denied"
	ErrorTypeUnauthorized        ErrorType = "unauthorized"
	ErrorTypeInternal            ErrorType = "internal_error"
	ErrorTypeBadRequest          ErrorType = "bad_request"
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

func newAppError(errType ErrorType, message string, code int, details ...string) *AppError {
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
	return newAppError(ErrorTypeValidation, message, http.StatusBadRequest, details...)
}

// NewFieldValidationError creates a validation error for a specific field
func NewFieldValidationError(field, reason string) *AppError {
	return newAppError(ErrorTypeValidation, fmt.Sprintf("invalid %s", field), http.StatusBadRequest, reason)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, message, http.StatusNotFound, details...)
}

// NewEntityNotFoundError creates a not found error for an entity/id pair
func NewEntityNotFoundError(entity string, id any) *AppError {
	return newAppError(ErrorTypeNotFound, fmt.Sprintf("%s not found", entity), http.StatusNotFound, fmt.Sprintf("id=%v", id))
}

// NewConflictError creates a new conflict error
func NewConflictError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConflict, message, http.StatusConflict, details...)
}

// NewStateConflictError creates an error for an illegal lifecycle transition.
// The current state and the attempted transition are preserved in the details
// so callers can report exactly which precondition failed.
func NewStateConflictError(currentState, attemptedTransition string) *AppError {
	return newAppError(
		ErrorTypeStateConflict,
		fmt.Sprintf("cannot %s from status %s", attemptedTransition, currentState),
		http.StatusConflict,
		fmt.Sprintf("current_state=%s transition=%s", currentState, attemptedTransition),
	)
}

// NewAssetConflictError creates an error for an asset that is not in a
// required source status for the requested operation.
func NewAssetConflictError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeAssetConflict, message, http.StatusConflict, details...)
}

// NewConcurrencyConflictError creates an error for a lost update detected
// under concurrent modification. Callers may retry with backoff.
func NewConcurrencyConflictError(entity string, id any) *AppError {
	return newAppError(
		ErrorTypeConcurrencyConflict,
		fmt.Sprintf("%s was modified concurrently", entity),
		http.StatusConflict,
		fmt.Sprintf("id=%v", id),
	)
}

// NewPermissionDeniedError creates an error for a missing permission code
// or an insufficient privilege level.
func NewPermissionDeniedError(required string) *AppError {
	return newAppError(ErrorTypePermissionDenied, "permission denied", http.StatusForbidden, fmt.Sprintf("required=%s", required))
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUnauthorized, message, http.StatusUnauthorized, details...)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, message, http.StatusInternalServerError, details...)
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeBadRequest, message, http.StatusBadRequest, details...)
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

func isType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsStateConflictError checks if the error is an illegal-transition error
func IsStateConflictError(err error) bool {
	return isType(err, ErrorTypeStateConflict)
}

// IsAssetConflictError checks if the error is an asset status conflict
func IsAssetConflictError(err error) bool {
	return isType(err, ErrorTypeAssetConflict)
}

// IsConcurrencyConflictError checks if the error is a lost-update conflict
func IsConcurrencyConflictError(err error) bool {
	return isType(err, ErrorTypeConcurrencyConflict)
}

// IsPermissionDeniedError checks if the error is an authorization failure
func IsPermissionDeniedError(err error) bool {
	return isType(err, ErrorTypePermissionDenied)
}

// IsDuplicateError checks if the error is a database duplicate key error
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	// MySQL duplicate entry error
	if strings.Contains(errStr, "Duplicate entry") || strings.Contains(errStr, "duplicate key") {
		return true
	}
	// PostgreSQL unique violation
	if strings.Contains(errStr, "unique constraint") || strings.Contains(errStr, "violates unique constraint") {
		return true
	}
	return false
}
