package flowhash

import (
	"github.com/hupe1980/flowhash/internal/sip"
)

// Options configure one compiled hash variant.
type Options struct {
	// Stride is the byte distance between successive lane inputs in a
	// batched buffer. Defaults to the input size.
	Stride int

	// Key is the 16-byte SipHash key. Nil means a fresh random key.
	Key []byte

	// CompressionRounds is the number of mixing rounds per input block.
	CompressionRounds int

	// FinalizationRounds is the number of mixing rounds after the last
	// block.
	FinalizationRounds int

	// AsSpecified disables the fixed-size tail simplification and
	// follows the published padding and length-byte scheme. Required
	// for byte-exact interoperability with other implementations.
	AsSpecified bool

	// Standard selects the low 32 bits of the result instead of the
	// internal high-half output. Implies AsSpecified. The internal
	// output keeps its low bit zero so it can never collide with the
	// all-ones "no value" sentinel reserved by table code.
	Standard bool

	// Width is the lane count for batch hashing.
	Width int
}

// DefaultOptions are the options Compile starts from: SipHash-2-4 over
// a contiguous single-lane buffer with a random key.
var DefaultOptions = Options{
	CompressionRounds:  2,
	FinalizationRounds: 4,
	Width:              1,
}

// newVariant validates o and folds it into the normalized variant
// identity used as the cache key.
func newVariant(size int, o Options) (sip.Variant, error) {
	if size < 0 {
		return sip.Variant{}, ErrInvalidSize
	}
	if o.CompressionRounds < 0 || o.FinalizationRounds < 0 {
		return sip.Variant{}, ErrInvalidRounds
	}

	v := sip.Variant{
		Size:        size,
		Stride:      o.Stride,
		C:           o.CompressionRounds,
		D:           o.FinalizationRounds,
		AsSpecified: o.AsSpecified,
		Standard:    o.Standard,
	}
	if v.Stride == 0 {
		v.Stride = size
	}
	if v.Standard {
		v.AsSpecified = true
	}

	key := o.Key
	if key == nil {
		key = RandomKey()
	}
	if len(key) != KeySize {
		return sip.Variant{}, &ErrInvalidKeySize{Size: len(key)}
	}
	copy(v.Key[:], key)

	return v, nil
}
