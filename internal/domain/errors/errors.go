// Package errors defines the application error taxonomy. Every operation
// funnels failures into these types; a single translation point in the HTTP
// layer maps them onto status codes and the response envelope.
package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// AppError is an operational, user-safe error. Anything that does not satisfy
// this interface is treated as unexpected and rendered generically in
// production.
type AppError interface {
	error
	HTTPCode() int   // HTTP status code
	Status() string  // "fail" for 4xx, "error" for 5xx
	Message() string // User-safe error message
}

// BaseError is a basic error structure that implements the AppError interface.
type BaseError struct {
	httpCode int
	message  string
	parent   *BaseError
}

// NewBaseError creates a new base error.
func NewBaseError(httpCode int, message string) *BaseError {
	return &BaseError{
		httpCode: httpCode,
		message:  message,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// Status returns the envelope status keyword for this error.
func (e *BaseError) Status() string {
	if e.httpCode >= http.StatusInternalServerError {
		return "error"
	}

	return "fail"
}

// Message returns the user-safe error message.
func (e *BaseError) Message() string {
	return e.message
}

// WithMessage derives an error with the same status code but a different
// user-safe message. The derived error still matches the table entry under
// errors.Is.
func (e *BaseError) WithMessage(message string) *BaseError {
	return &BaseError{
		httpCode: e.httpCode,
		message:  message,
		parent:   e,
	}
}

// Unwrap exposes the table entry a derived error was built from.
func (e *BaseError) Unwrap() error {
	if e.parent == nil {
		return nil
	}

	return e.parent
}

// Predefined error types
var (
	// Resource errors
	ErrDocumentNotFound = NewBaseError(
		http.StatusNotFound,
		"no document found with that ID",
	)

	ErrValidation = NewBaseError(
		http.StatusBadRequest,
		"invalid input data",
	)

	ErrDuplicateField = NewBaseError(
		http.StatusBadRequest,
		"duplicate field value, please use another value",
	)

	// Authentication errors
	ErrNotLoggedIn = NewBaseError(
		http.StatusUnauthorized,
		"you are not logged in, please log in to get access",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"incorrect email or password",
	)

	ErrTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"invalid token, please log in again",
	)

	ErrTokenExpired = NewBaseError(
		http.StatusUnauthorized,
		"your token has expired, please log in again",
	)

	ErrTokenUserGone = NewBaseError(
		http.StatusUnauthorized,
		"the user belonging to this token no longer exists",
	)

	ErrPasswordChanged = NewBaseError(
		http.StatusUnauthorized,
		"password was recently changed, please log in again",
	)

	ErrWrongPassword = NewBaseError(
		http.StatusUnauthorized,
		"your current password is wrong",
	)

	// Authorization errors
	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"you do not have permission to perform this action",
	)

	// Password reset errors
	ErrNoUserWithEmail = NewBaseError(
		http.StatusNotFound,
		"there is no user with that email address",
	)

	ErrResetTokenInvalid = NewBaseError(
		http.StatusBadRequest,
		"token is invalid or has expired",
	)

	ErrSignupRoute = NewBaseError(
		http.StatusBadRequest,
		"this route is not for creating users, please use /signup",
	)

	ErrPasswordRoute = NewBaseError(
		http.StatusBadRequest,
		"this route is not for password updates, please use /updateMyPassword",
	)

	// General errors
	ErrMailDelivery = NewBaseError(
		http.StatusInternalServerError,
		"there was an error sending the email, try again later",
	)

	ErrInternal = NewBaseError(
		http.StatusInternalServerError,
		"something went very wrong",
	)
)
