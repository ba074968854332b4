package sip

import (
	"encoding/binary"
	"math/bits"
)

// scalarFrame is the per-call register file of the scalar backends.
// It lives on the caller's stack, so compiled functions stay reentrant.
type scalarFrame struct {
	r   [numRegs]uint64
	in  []byte
	off int
	imm uint64
	out uint32
}

type scalarStep func(f *scalarFrame)

// scalarBackend compiles the algorithm into a flat list of closure
// steps over plain uint64 arithmetic.
type scalarBackend struct {
	steps []scalarStep
}

func (b *scalarBackend) emit(s scalarStep) { b.steps = append(b.steps, s) }

func (b *scalarBackend) Init(key [16]byte) {
	iv := initState(key)
	b.emit(func(f *scalarFrame) {
		f.r[RegV0] = iv[0]
		f.r[RegV1] = iv[1]
		f.r[RegV2] = iv[2]
		f.r[RegV3] = iv[3]
	})
}

func (b *scalarBackend) Add(dst, src Reg) {
	b.emit(func(f *scalarFrame) { f.r[dst] += f.r[src] })
}

func (b *scalarBackend) Xor(dst, src Reg) {
	b.emit(func(f *scalarFrame) { f.r[dst] ^= f.r[src] })
}

func (b *scalarBackend) Or(dst, src Reg) {
	b.emit(func(f *scalarFrame) { f.r[dst] |= f.r[src] })
}

func (b *scalarBackend) Shl(r Reg, n uint8) {
	b.emit(func(f *scalarFrame) { f.r[r] <<= n })
}

func (b *scalarBackend) RotateLeft(r Reg, n uint8) {
	k := int(n)
	b.emit(func(f *scalarFrame) { f.r[r] = bits.RotateLeft64(f.r[r], k) })
}

func (b *scalarBackend) LoadAdvance8(dst Reg) {
	b.emit(func(f *scalarFrame) {
		f.r[dst] = uint64(f.in[f.off])
		f.off++
	})
}

func (b *scalarBackend) LoadAdvance16(dst Reg) {
	b.emit(func(f *scalarFrame) {
		f.r[dst] = uint64(binary.LittleEndian.Uint16(f.in[f.off:]))
		f.off += 2
	})
}

func (b *scalarBackend) LoadAdvance32(dst Reg) {
	b.emit(func(f *scalarFrame) {
		f.r[dst] = uint64(binary.LittleEndian.Uint32(f.in[f.off:]))
		f.off += 4
	})
}

func (b *scalarBackend) LoadAdvance64(dst Reg) {
	b.emit(func(f *scalarFrame) {
		f.r[dst] = binary.LittleEndian.Uint64(f.in[f.off:])
		f.off += 8
	})
}

func (b *scalarBackend) LoadImmediateByte(dst Reg, v uint8) {
	w := uint64(v)
	b.emit(func(f *scalarFrame) { f.r[dst] = w })
}

func (b *scalarBackend) Finalize(r Reg, standard bool) {
	b.emit(func(f *scalarFrame) { f.out = fold32(f.r[r], standard) })
}

// AssembleScalar drives the algorithm against the scalar backend and
// returns the compiled single-value function.
func AssembleScalar(v Variant) Func {
	b := &scalarBackend{}
	program(b, v)
	steps := b.steps
	return func(p []byte) uint32 {
		f := scalarFrame{in: p}
		for _, s := range steps {
			s(&f)
		}
		return f.out
	}
}

// immediateBackend is the scalar backend with its single 64-bit load
// redirected to the argument register. Narrower loads are unreachable
// for its only valid variant (size 8, fixed tail) and panic.
type immediateBackend struct {
	scalarBackend
}

func (b *immediateBackend) LoadAdvance8(dst Reg)  { panic("sip: byte load on immediate backend") }
func (b *immediateBackend) LoadAdvance16(dst Reg) { panic("sip: half load on immediate backend") }
func (b *immediateBackend) LoadAdvance32(dst Reg) { panic("sip: word load on immediate backend") }

func (b *immediateBackend) LoadAdvance64(dst Reg) {
	b.emit(func(f *scalarFrame) { f.r[dst] = f.imm })
}

// AssembleImmediate returns the compiled immediate-value function: the
// 8-byte input arrives as a little-endian uint64 argument instead of
// being read from memory. Valid only for Size == 8 without the
// as-specified tail; the caller validates the variant.
func AssembleImmediate(v Variant) ImmediateFunc {
	b := &immediateBackend{}
	program(b, v)
	steps := b.steps
	return func(x uint64) uint32 {
		f := scalarFrame{imm: x}
		for _, s := range steps {
			s(&f)
		}
		return f.out
	}
}
