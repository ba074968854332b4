package sip

// Variant is the fully normalized, immutable description of one hash
// function. It is comparable and is used directly as the cache key:
// two independently built variants with equal fields identify the same
// compiled function.
type Variant struct {
	// Size is the fixed input length in bytes.
	Size int
	// Stride is the byte distance between successive lane inputs in a
	// batched buffer. Normalized to Size when unset.
	Stride int
	// Key is the 128-bit SipHash key.
	Key [16]byte
	// C and D are the compression and finalization round counts.
	C int
	D int
	// AsSpecified selects the published tail scheme (length byte in the
	// final word) instead of the fixed-size simplification.
	AsSpecified bool
	// Standard selects the low-32-bit output for interoperability.
	// Implies AsSpecified.
	Standard bool
}

// program emits the complete hash computation for v against b. This is
// the only place the algorithm exists; backends never duplicate it.
func program(b Backend, v Variant) {
	b.Init(v.Key)

	for i := 0; i < v.Size/8; i++ {
		b.LoadAdvance64(RegM)
		compress(b, v.C)
	}

	rem := v.Size % 8
	if v.AsSpecified {
		// The published scheme always compresses a final word carrying
		// the input length in the top byte, even when size%8 == 0.
		loadTail(b, rem)
		b.LoadImmediateByte(RegT, uint8(v.Size))
		b.Shl(RegT, 56)
		b.Or(RegM, RegT)
		compress(b, v.C)
	} else if rem > 0 {
		// Fixed-size variants omit the redundant length byte entirely,
		// and skip the tail block when the size is word-aligned.
		loadTail(b, rem)
		compress(b, v.C)
	}

	b.LoadImmediateByte(RegT, 0xff)
	b.Xor(RegV2, RegT)
	for i := 0; i < v.D; i++ {
		round(b)
	}

	b.Xor(RegV0, RegV1)
	b.Xor(RegV0, RegV2)
	b.Xor(RegV0, RegV3)
	b.Finalize(RegV0, v.Standard)
}

// round emits one SipHash mixing permutation.
func round(b Backend) {
	b.Add(RegV0, RegV1)
	b.RotateLeft(RegV1, 13)
	b.Xor(RegV1, RegV0)
	b.RotateLeft(RegV0, 32)

	b.Add(RegV2, RegV3)
	b.RotateLeft(RegV3, 16)
	b.Xor(RegV3, RegV2)

	b.Add(RegV0, RegV3)
	b.RotateLeft(RegV3, 21)
	b.Xor(RegV3, RegV0)

	b.Add(RegV2, RegV1)
	b.RotateLeft(RegV1, 17)
	b.Xor(RegV1, RegV2)
	b.RotateLeft(RegV2, 32)
}

// compress emits the consumption of the message word in RegM:
// v3 ^= m, c rounds, v0 ^= m.
func compress(b Backend, c int) {
	b.Xor(RegV3, RegM)
	for i := 0; i < c; i++ {
		round(b)
	}
	b.Xor(RegV0, RegM)
}

// loadTail assembles the final partial word into RegM from the rem
// remaining input bytes, low bytes first: greedily a 4-byte load while
// at least 4 remain, then a 2-byte load, then a 1-byte load, each
// shifted into position. rem == 0 leaves RegM zero.
func loadTail(b Backend, rem int) {
	if rem == 0 {
		b.LoadImmediateByte(RegM, 0)
		return
	}

	var shift uint8
	first := true
	chunk := func(load func(Reg), bits uint8) {
		if first {
			load(RegM)
			first = false
		} else {
			load(RegT)
			b.Shl(RegT, shift)
			b.Or(RegM, RegT)
		}
		shift += bits
	}

	if rem >= 4 {
		chunk(b.LoadAdvance32, 32)
		rem -= 4
	}
	if rem >= 2 {
		chunk(b.LoadAdvance16, 16)
		rem -= 2
	}
	if rem >= 1 {
		chunk(b.LoadAdvance8, 8)
	}
}
