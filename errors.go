package lshdedup

import (
	"errors"
	"fmt"

	"github.com/hupe1980/lshdedup/internal/band"
)

var (
	// ErrConfiguration matches every *ConfigurationError.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrInvalidArgument is returned when a duplicate lookup supplies neither
	// document content nor a known document id.
	ErrInvalidArgument = errors.New("must provide a document or a known document id")

	// ErrNotFound matches every *LookupError.
	ErrNotFound = errors.New("document id not found")
)

// ConfigurationError indicates a fingerprint length that cannot be split into
// the configured number of bands.
type ConfigurationError struct {
	NumSeeds int
	NumBands int
	cause    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("the number of seeds in the fingerprint (%d) must be divisible by the number of bands (%d)", e.NumSeeds, e.NumBands)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

func (e *ConfigurationError) Unwrap() error { return e.cause }

// LookupError indicates a candidate document whose fingerprint is not stored.
// Banding only admits registered ids, so this signals that the bucket index and
// the fingerprint store disagree.
type LookupError struct {
	// ID is the string encoding of the missing document id.
	ID string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no fingerprint stored for document %q", e.ID)
}

func (e *LookupError) Is(target error) bool { return target == ErrNotFound }

// FingerprintLengthError indicates a fingerprint whose length differs from the
// fingerprinter's number of seeds.
type FingerprintLengthError struct {
	Expected int
	Actual   int
}

func (e *FingerprintLengthError) Error() string {
	return fmt.Sprintf("fingerprint length mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var ce *band.ConfigError
	if errors.As(err, &ce) {
		return &ConfigurationError{NumSeeds: ce.NumSeeds, NumBands: ce.NumBands, cause: err}
	}

	return err
}
