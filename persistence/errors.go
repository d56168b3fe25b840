package persistence

import (
	"errors"
	"fmt"
)

// ErrCorrupt reports a snapshot that decodes but is internally inconsistent.
var ErrCorrupt = errors.New("persistence: corrupt snapshot")

// MissingFieldError reports a required snapshot field that is absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("persistence: snapshot is missing required field %q", e.Field)
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorrupt, fmt.Sprintf(format, args...))
}
