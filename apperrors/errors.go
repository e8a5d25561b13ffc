// Package apperrors defines the error taxonomy surfaced by the HTTP layer.
// Handlers translate these into status codes; nothing here is fatal to the
// process.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateUser      = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrForbidden          = errors.New("permission denied")
	ErrNotFound           = errors.New("not found")
)

// ValidationError reports bad enum, date, or numeric input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidation(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
