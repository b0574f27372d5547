package account

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("account: not found")
	ErrInvalidCredentials = errors.New("account: invalid credentials")
	ErrAlreadyExists      = errors.New("account: already exists")
	ErrInactive           = errors.New("account: inactive")
)

// ValidationError reports malformed or missing input. It is always
// recoverable by the caller correcting the request and its message is safe
// to surface verbatim.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Invalid constructs a ValidationError for a field.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
