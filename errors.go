package flowhash

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is returned when the configured input size is negative.
	ErrInvalidSize = errors.New("size must be non-negative")

	// ErrInvalidRounds is returned when a round count is negative.
	ErrInvalidRounds = errors.New("round counts must be non-negative")

	// ErrInvalidWidth is returned when the batch width is not positive.
	ErrInvalidWidth = errors.New("width must be positive")

	// ErrStandardBatch is returned when standard output mode is combined
	// with a batch width other than 1. Batch composition is only defined
	// for the internal output format.
	ErrStandardBatch = errors.New("standard mode is incompatible with batch widths > 1")

	// ErrImmediateVariant is returned when the immediate-value entry
	// point is requested for a variant it cannot serve: the input must
	// be exactly 8 bytes and use the fixed-size tail.
	ErrImmediateVariant = errors.New("immediate variant requires size 8 and fixed-size tail handling")
)

// ErrInvalidKeySize indicates key material of the wrong length.
type ErrInvalidKeySize struct {
	Size int
}

func (e *ErrInvalidKeySize) Error() string {
	return fmt.Sprintf("invalid key size: expected %d bytes, got %d", KeySize, e.Size)
}
