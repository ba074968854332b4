package flowhash

import (
	"fmt"

	"github.com/hupe1980/flowhash/internal/sip"
)

// Hash is a compiled single-value hash function. It is pure, holds no
// mutable state and is safe for concurrent use without locking.
type Hash struct {
	name string
	fn   sip.Func
}

// Sum32 hashes the fixed-size record at p.
func (h *Hash) Sum32(p []byte) uint32 { return h.fn(p) }

// String returns the variant name, e.g. "siphash-2-4/16b/scalar".
func (h *Hash) String() string { return h.name }

// ImmediateHash is a compiled hash function taking its 8-byte input as
// a little-endian uint64 value instead of a memory pointer.
type ImmediateHash struct {
	name string
	fn   sip.ImmediateFunc
}

// Sum32 hashes the 8-byte record passed as a uint64 value.
func (h *ImmediateHash) Sum32(v uint64) uint32 { return h.fn(v) }

// String returns the variant name.
func (h *ImmediateHash) String() string { return h.name }

// BatchHash is a compiled batch hash function over Width lanes.
type BatchHash struct {
	name  string
	width int
	fn    sip.LaneFunc
}

// Width returns the number of lanes hashed per call.
func (h *BatchHash) Width() int { return h.width }

// Sum32 hashes Width records: lane i reads the record at byte offset
// i*stride from p and writes its hash to out[i]. out must have at
// least Width slots; lanes never read or write outside their own slot.
func (h *BatchHash) Sum32(p []byte, out []uint32) { h.fn(p, out) }

// String returns the variant name.
func (h *BatchHash) String() string { return h.name }

func variantName(v sip.Variant, backend string) string {
	return fmt.Sprintf("siphash-%d-%d/%db/%s", v.C, v.D, v.Size, backend)
}
