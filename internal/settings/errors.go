package settings

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSettings = errors.New("invalid settings")
	ErrInvalidPath     = fmt.Errorf("%w: invalid setting path", ErrInvalidSettings)
)

// ValidationError names the offending field so clients can correct the request.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("invalid settings: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid settings: %s %s (got %v)", e.Field, e.Reason, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidSettings
}
