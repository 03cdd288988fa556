package model

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a profile or reminder does not exist. Daily
// logs are never "not found": an absent log reads as an empty one.
var ErrNotFound = errors.New("not found")

// ErrStoreUnavailable wraps network or backend failures. Analytics callers
// degrade to a zero-valued result instead of propagating it; write callers
// surface it as a non-fatal message.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrAlreadyExists is returned when creating a profile for a uid that
// already has one.
var ErrAlreadyExists = errors.New("already exists")

// ValidationError rejects bad input before any store or scheduling call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
