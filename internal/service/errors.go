package service

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped to 404 responses by the handlers.
var (
	ErrMeetingNotFound    = errors.New("meeting not found")
	ErrReportNotFound     = errors.New("report not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries a human-readable message for a rejected submission.
// Handlers surface it as a 400; everything else becomes a generic 500.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is a submission validation failure.
func IsValidationError(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError)
}
