package sip

import "encoding/binary"

// Reg identifies one abstract 64-bit register of the algorithm.
// Multi-lane backends hold one 64-bit word per lane behind each Reg.
type Reg uint8

const (
	// RegV0..RegV3 are the four SipHash state words.
	RegV0 Reg = iota
	RegV1
	RegV2
	RegV3
	// RegM holds the message word currently being compressed.
	RegM
	// RegT is scratch space for assembling tail words and immediates.
	RegT

	numRegs = 6
)

// Func is a compiled single-value hash function. It reads Size bytes
// from p and returns the formatted 32-bit hash.
type Func func(p []byte) uint32

// ImmediateFunc is a compiled hash function taking the 8-byte input as
// a little-endian uint64 value instead of a memory pointer.
type ImmediateFunc func(v uint64) uint32

// LaneFunc is a compiled multi-lane hash function. Lane i reads Size
// bytes at offset i*Stride from p and writes its hash to out[i].
// Callers must supply out with at least as many slots as lanes.
type LaneFunc func(p []byte, out []uint32)

// Backend is the operation set the abstract algorithm is emitted
// against. Operations are invoked once, at assemble time; each backend
// records them as a program it later executes per call.
//
// Invoking a load width a backend does not support is a programming
// error and panics (it is unreachable from any valid variant).
type Backend interface {
	// Init derives the four state words from the 16-byte key and seeds
	// them into RegV0..RegV3, broadcast across lanes.
	Init(key [16]byte)

	Add(dst, src Reg)
	Xor(dst, src Reg)
	Or(dst, src Reg)
	Shl(r Reg, bits uint8)
	RotateLeft(r Reg, bits uint8)

	// LoadAdvance* zero-extend the given bit-width from the input
	// cursor into dst and advance the cursor by that many bytes.
	// Multi-lane backends gather one value per lane, stride apart.
	LoadAdvance8(dst Reg)
	LoadAdvance16(dst Reg)
	LoadAdvance32(dst Reg)
	LoadAdvance64(dst Reg)

	LoadImmediateByte(dst Reg, v uint8)

	// Finalize formats reg per the output mode and delivers it through
	// the backend's calling convention.
	Finalize(r Reg, standard bool)
}

// initState expands the 128-bit key into the four SipHash state words.
func initState(key [16]byte) [4]uint64 {
	k0 := binary.LittleEndian.Uint64(key[0:8])
	k1 := binary.LittleEndian.Uint64(key[8:16])
	return [4]uint64{
		k0 ^ 0x736f6d6570736575,
		k1 ^ 0x646f72616e646f6d,
		k0 ^ 0x6c7967656e657261,
		k1 ^ 0x7465646279746573,
	}
}

// fold32 formats a 64-bit result word as the 32-bit output.
//
// Standard mode truncates to the low half for interoperability with
// other SipHash implementations. The internal mode takes the high half
// shifted left by one with a zero low bit, so the output can never be
// 0xFFFFFFFF (callers reserve the all-ones value as a sentinel).
func fold32(x uint64, standard bool) uint32 {
	if standard {
		return uint32(x)
	}
	return uint32(x>>32) << 1
}
