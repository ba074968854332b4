package flowhash

import (
	"fmt"

	"github.com/hupe1980/flowhash/internal/sip"
)

// The composer builds width-W batch hashers out of the 1/2/4-lane
// kernels. When the host lacks a tier, the next-smaller building block
// substitutes silently: a missing quad becomes two duals, a missing
// dual becomes two scalar calls. Widths that are not powers of two
// decompose greedily, floor(W/4) quad blocks, then a dual block if the
// remainder has the 2-bit set, then a scalar block, covering all W
// records exactly once in index order.

// batchLocked returns the cached width-lane batch hasher for v,
// composing it on first request. Caller holds r.mu.
func (r *Registry) batchLocked(v sip.Variant, width int) *BatchHash {
	key := batchKey{v: v, width: width}
	if h, ok := r.batch[key]; ok {
		return h
	}

	h := &BatchHash{
		name:  fmt.Sprintf("%s/w%d", variantName(v, r.composerTier()), width),
		width: width,
		fn:    r.composeLocked(v, width),
	}
	r.batch[key] = h
	r.logCompile(h.name)
	return h
}

func (r *Registry) composerTier() string {
	switch {
	case r.cap.Quad:
		return "quad"
	case r.cap.Dual:
		return "dual"
	default:
		return "scalar"
	}
}

func (r *Registry) composeLocked(v sip.Variant, width int) sip.LaneFunc {
	lane1 := r.lane1Locked(v)
	if width == 1 {
		return lane1
	}

	lane2 := r.lane2Locked(v, lane1)
	if width == 2 {
		return lane2
	}

	lane4 := r.lane4Locked(v, lane2)
	if width == 4 {
		return lane4
	}

	quads, rem := width/4, width%4
	stride := v.Stride
	return func(p []byte, out []uint32) {
		off, slot := 0, 0
		for i := 0; i < quads; i++ {
			lane4(p[off:], out[slot:slot+4])
			off += 4 * stride
			slot += 4
		}
		if rem&2 != 0 {
			lane2(p[off:], out[slot:slot+2])
			off += 2 * stride
			slot += 2
		}
		if rem&1 != 0 {
			lane1(p[off:], out[slot:slot+1])
		}
	}
}

// lane1Locked wraps the scalar function to write into output slot 0.
func (r *Registry) lane1Locked(v sip.Variant) sip.LaneFunc {
	single := r.scalarLocked(v).fn
	return func(p []byte, out []uint32) {
		out[0] = single(p)
	}
}

// lane2Locked returns the 2-record building block: the dual kernel, or
// two single-lane calls when 128-bit lanes are unavailable.
func (r *Registry) lane2Locked(v sip.Variant, lane1 sip.LaneFunc) sip.LaneFunc {
	if r.cap.Dual {
		return r.dualLocked(v).fn
	}
	stride := v.Stride
	return func(p []byte, out []uint32) {
		lane1(p, out[:1])
		lane1(p[stride:], out[1:2])
	}
}

// lane4Locked returns the 4-record building block: the quad kernel, or
// two 2-record blocks when 256-bit lanes are unavailable.
func (r *Registry) lane4Locked(v sip.Variant, lane2 sip.LaneFunc) sip.LaneFunc {
	if r.cap.Quad {
		return r.quadLocked(v).fn
	}
	stride := v.Stride
	return func(p []byte, out []uint32) {
		lane2(p, out[:2])
		lane2(p[2*stride:], out[2:4])
	}
}
