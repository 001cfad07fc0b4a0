package service

import (
	"errors"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// isRejectedInput matches both struct-tag failures and business rule
// rejections.
func isRejectedInput(err error) bool {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return true
	}
	return IsValidationError(err)
}
