package apperrors

import (
	"errors"
	"fmt"
)

// Prediction pipeline errors
var (
	// ErrInvalidCriteria is a client error: the request is incomplete or malformed.
	ErrInvalidCriteria = errors.New("invalid criteria")
	// ErrDataSourceUnavailable means the cutoff store could not be queried.
	ErrDataSourceUnavailable = errors.New("data source unavailable")
	// ErrIntegrityViolation means the cutoff dataset references rows that do not exist.
	ErrIntegrityViolation = errors.New("integrity violation")
)

// Authentication errors
var (
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrInvalidFormat = errors.New("invalid token format")
)

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
	Code    string
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

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// NewInvalidCriteriaError reports which request field failed validation.
func NewInvalidCriteriaError(field, reason string) error {
	return NewCustomError(ErrInvalidCriteria, fmt.Sprintf("%s: %s %s", ErrInvalidCriteria, field, reason)).
		WithDetails(map[string]interface{}{"field": field})
}

// NewIntegrityError reports a dangling reference found while resolving a cutoff.
// entity is the missing kind (offering, college, branch), id is its handle.
func NewIntegrityError(cutoffID, entity, id string) error {
	return NewCustomError(ErrIntegrityViolation,
		fmt.Sprintf("%s: cutoff %s references missing %s %q", ErrIntegrityViolation, cutoffID, entity, id)).
		WithCode("INTEGRITY").
		WithDetails(map[string]interface{}{"cutoffId": cutoffID, "entity": entity, "id": id})
}

// NewUnavailableError wraps a store failure as ErrDataSourceUnavailable.
func NewUnavailableError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrDataSourceUnavailable, op, err)
}
