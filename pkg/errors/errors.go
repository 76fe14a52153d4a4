// Package errors defines structured error types for the TaskForge backend.
// Every failure that crosses a service boundary is wrapped into an AppError
// carrying a stable code, an HTTP status and a user-facing message; transport
// and driver detail stays in the wrapped cause and never reaches callers.
package errors

import (
	"errors"
	"net/http"
)

// Error codes used across the application.
const (
	CodeTokenInvalid        = "token_invalid"
	CodeCredentialRejected  = "credential_rejected"
	CodeUpstreamUnreachable = "upstream_unreachable"
	CodeRegistrationError   = "registration_error"
	CodeValidationFailure   = "validation_failure"
	CodeNotFound            = "not_found"
	CodeUnauthenticated     = "unauthenticated"
	CodeInternal            = "internal_error"
	CodeUnexpected          = "unexpected_error"
)

// AppError is the structured application error.
type AppError struct {
	Code       string
	HTTPStatus int
	Message    string
	Details    map[string]string
	cause      error
}

// Error implements the error interface, returning the user-facing message.
func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is / errors.As chains.
func (e *AppError) Unwrap() error {
	return e.cause
}

// WithCause attaches the underlying error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.cause = cause
	return e
}

// WithDetails attaches field-level detail messages and returns the receiver.
func (e *AppError) WithDetails(details map[string]string) *AppError {
	e.Details = details
	return e
}

// New creates an AppError with the given code, HTTP status and message.
func New(code string, httpStatus int, message string) *AppError {
	return &AppError{
		Code:       code,
		HTTPStatus: httpStatus,
		Message:    message,
	}
}

// ================================================================================
// Predefined Constructors
// ================================================================================

// ErrTokenInvalid covers malformed, unsigned and expired tokens. It is only
// used inside the gate and is downgraded to "unauthenticated" before any
// response is produced.
func ErrTokenInvalid(message string) *AppError {
	return New(CodeTokenInvalid, http.StatusUnauthorized, message)
}

// ErrCredentialRejected means auth-service rejected the login.
func ErrCredentialRejected(message string) *AppError {
	return New(CodeCredentialRejected, http.StatusUnauthorized, message)
}

// ErrUpstreamUnreachable means auth-service could not be reached at all.
func ErrUpstreamUnreachable(message string) *AppError {
	return New(CodeUpstreamUnreachable, http.StatusBadGateway, message)
}

// ErrRegistration wraps any registration failure with the underlying message.
func ErrRegistration(message string) *AppError {
	return New(CodeRegistrationError, http.StatusBadRequest, message)
}

// ErrValidationFailure rejects a malformed payload before business logic.
func ErrValidationFailure(message string, details map[string]string) *AppError {
	return New(CodeValidationFailure, http.StatusBadRequest, message).WithDetails(details)
}

// ErrNotFound covers lookups by id with no match.
func ErrNotFound(resource string) *AppError {
	return New(CodeNotFound, http.StatusNotFound, resource+" no encontrado")
}

// ErrUnauthenticated rejects access to a protected route without a principal.
func ErrUnauthenticated() *AppError {
	return New(CodeUnauthenticated, http.StatusUnauthorized, "autenticación requerida")
}

// ErrInternal is the opaque fallback for unexpected server-side failures.
func ErrInternal(message string) *AppError {
	return New(CodeInternal, http.StatusInternalServerError, message)
}

// ErrUnexpected wraps failures that fit no other category.
func ErrUnexpected(message string) *AppError {
	return New(CodeUnexpected, http.StatusInternalServerError, message)
}

// ================================================================================
// Inspection Utilities
// ================================================================================

// AsAppError attempts to extract an AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeNotFound
	}
	return false
}

// IsCredentialRejected reports whether err is a rejected-login failure.
func IsCredentialRejected(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeCredentialRejected
	}
	return false
}

// IsUpstreamUnreachable reports whether err is a connectivity failure.
func IsUpstreamUnreachable(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == CodeUpstreamUnreachable
	}
	return false
}

// HTTPStatus returns the HTTP status for err, defaulting to 500.
func HTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}
