package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Inter-service errors. ErrUpstreamUnavailable means a remote dependency
	// failed to answer definitively (timeout, network error, 5xx, undecodable
	// body). It is distinct from ErrNotFound: callers may retry the former and
	// must treat the latter as a terminal negative.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
)

// Domain errors chain onto the generic kinds so callers can match either the
// specific sentinel or the broad category.

// Course errors
var (
	ErrCourseNotFound       = fmt.Errorf("course %w", ErrNotFound)
	ErrCourseAlreadyExists  = fmt.Errorf("course id %w: already exists", ErrConflict)
	ErrCourseHasEnrollments = fmt.Errorf("%w: course has enrollments", ErrConflict)
)

// Student errors
var (
	ErrStudentNotFound       = fmt.Errorf("student %w", ErrNotFound)
	ErrStudentHasEnrollments = fmt.Errorf("%w: student has enrollments", ErrConflict)
)

// Enrollment errors
var (
	ErrEnrollmentNotFound = fmt.Errorf("enrollment %w", ErrNotFound)
	ErrAlreadyEnrolled    = fmt.Errorf("%w: student is already enrolled in this course", ErrConflict)
)

// NewNotFoundError creates a new custom error for resource not found with a message
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewUpstreamError wraps a transport-level failure into ErrUpstreamUnavailable
func NewUpstreamError(message string, cause error) error {
	return &CustomError{
		Err:     ErrUpstreamUnavailable,
		Message: message,
		Cause:   cause,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Cause   error
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
