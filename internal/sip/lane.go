package sip

import "encoding/binary"

// word is the constraint for a multi-lane register: a fixed array of
// 64-bit lanes with element-wise SipHash operations. The vector
// backend is monomorphized once per lane width.
type word[W any] interface {
	add(W) W
	xor(W) W
	or(W) W
	shl(n uint8) W
	shr(n uint8) W
	broadcast(x uint64) W
	// gather zero-extends width bytes for every lane, lane i reading at
	// p[off+i*stride:].
	gather(p []byte, off, width, stride int) W
	// deliver writes each lane's formatted 32-bit output to out.
	deliver(out []uint32, standard bool)
}

// u64x2 is the 2-lane register of the dual backend, one SipHash state
// word per 64-bit half of a 128-bit vector.
type u64x2 [2]uint64

func (a u64x2) add(b u64x2) u64x2 { return u64x2{a[0] + b[0], a[1] + b[1]} }
func (a u64x2) xor(b u64x2) u64x2 { return u64x2{a[0] ^ b[0], a[1] ^ b[1]} }
func (a u64x2) or(b u64x2) u64x2  { return u64x2{a[0] | b[0], a[1] | b[1]} }
func (a u64x2) shl(n uint8) u64x2 { return u64x2{a[0] << n, a[1] << n} }
func (a u64x2) shr(n uint8) u64x2 { return u64x2{a[0] >> n, a[1] >> n} }

func (a u64x2) broadcast(x uint64) u64x2 { return u64x2{x, x} }

func (a u64x2) gather(p []byte, off, width, stride int) u64x2 {
	return u64x2{
		loadLane(p, off, width),
		loadLane(p, off+stride, width),
	}
}

func (a u64x2) deliver(out []uint32, standard bool) {
	out[0] = fold32(a[0], standard)
	out[1] = fold32(a[1], standard)
}

// u64x4 is the 4-lane register of the quad backend.
type u64x4 [4]uint64

func (a u64x4) add(b u64x4) u64x4 {
	return u64x4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func (a u64x4) xor(b u64x4) u64x4 {
	return u64x4{a[0] ^ b[0], a[1] ^ b[1], a[2] ^ b[2], a[3] ^ b[3]}
}

func (a u64x4) or(b u64x4) u64x4 {
	return u64x4{a[0] | b[0], a[1] | b[1], a[2] | b[2], a[3] | b[3]}
}

func (a u64x4) shl(n uint8) u64x4 {
	return u64x4{a[0] << n, a[1] << n, a[2] << n, a[3] << n}
}

func (a u64x4) shr(n uint8) u64x4 {
	return u64x4{a[0] >> n, a[1] >> n, a[2] >> n, a[3] >> n}
}

func (a u64x4) broadcast(x uint64) u64x4 { return u64x4{x, x, x, x} }

func (a u64x4) gather(p []byte, off, width, stride int) u64x4 {
	return u64x4{
		loadLane(p, off, width),
		loadLane(p, off+stride, width),
		loadLane(p, off+2*stride, width),
		loadLane(p, off+3*stride, width),
	}
}

func (a u64x4) deliver(out []uint32, standard bool) {
	out[0] = fold32(a[0], standard)
	out[1] = fold32(a[1], standard)
	out[2] = fold32(a[2], standard)
	out[3] = fold32(a[3], standard)
}

func loadLane(p []byte, off, width int) uint64 {
	switch width {
	case 8:
		return binary.LittleEndian.Uint64(p[off:])
	case 4:
		return uint64(binary.LittleEndian.Uint32(p[off:]))
	case 2:
		return uint64(binary.LittleEndian.Uint16(p[off:]))
	default:
		return uint64(p[off])
	}
}

type vecFrame[W word[W]] struct {
	r   [numRegs]W
	in  []byte
	off int
	out []uint32
}

type vecStep[W word[W]] func(f *vecFrame[W])

// vecBackend compiles the algorithm into closure steps over multi-lane
// words. There is no native 64-bit lane rotate in the vector units this
// models, so RotateLeft is emitted as shift-left | shift-right.
type vecBackend[W word[W]] struct {
	stride int
	steps  []vecStep[W]
}

func (b *vecBackend[W]) emit(s vecStep[W]) { b.steps = append(b.steps, s) }

func (b *vecBackend[W]) Init(key [16]byte) {
	iv := initState(key)
	b.emit(func(f *vecFrame[W]) {
		var z W
		f.r[RegV0] = z.broadcast(iv[0])
		f.r[RegV1] = z.broadcast(iv[1])
		f.r[RegV2] = z.broadcast(iv[2])
		f.r[RegV3] = z.broadcast(iv[3])
	})
}

func (b *vecBackend[W]) Add(dst, src Reg) {
	b.emit(func(f *vecFrame[W]) { f.r[dst] = f.r[dst].add(f.r[src]) })
}

func (b *vecBackend[W]) Xor(dst, src Reg) {
	b.emit(func(f *vecFrame[W]) { f.r[dst] = f.r[dst].xor(f.r[src]) })
}

func (b *vecBackend[W]) Or(dst, src Reg) {
	b.emit(func(f *vecFrame[W]) { f.r[dst] = f.r[dst].or(f.r[src]) })
}

func (b *vecBackend[W]) Shl(r Reg, n uint8) {
	b.emit(func(f *vecFrame[W]) { f.r[r] = f.r[r].shl(n) })
}

func (b *vecBackend[W]) RotateLeft(r Reg, n uint8) {
	inv := 64 - n
	b.emit(func(f *vecFrame[W]) {
		f.r[r] = f.r[r].shl(n).or(f.r[r].shr(inv))
	})
}

func (b *vecBackend[W]) load(dst Reg, width int) {
	stride := b.stride
	b.emit(func(f *vecFrame[W]) {
		f.r[dst] = f.r[dst].gather(f.in, f.off, width, stride)
		f.off += width
	})
}

func (b *vecBackend[W]) LoadAdvance8(dst Reg)  { b.load(dst, 1) }
func (b *vecBackend[W]) LoadAdvance16(dst Reg) { b.load(dst, 2) }
func (b *vecBackend[W]) LoadAdvance32(dst Reg) { b.load(dst, 4) }
func (b *vecBackend[W]) LoadAdvance64(dst Reg) { b.load(dst, 8) }

func (b *vecBackend[W]) LoadImmediateByte(dst Reg, v uint8) {
	x := uint64(v)
	b.emit(func(f *vecFrame[W]) {
		var z W
		f.r[dst] = z.broadcast(x)
	})
}

func (b *vecBackend[W]) Finalize(r Reg, standard bool) {
	b.emit(func(f *vecFrame[W]) { f.r[r].deliver(f.out, standard) })
}

func assembleLanes[W word[W]](v Variant) LaneFunc {
	b := &vecBackend[W]{stride: v.Stride}
	program(b, v)
	steps := b.steps
	return func(p []byte, out []uint32) {
		f := vecFrame[W]{in: p, out: out}
		for _, s := range steps {
			s(&f)
		}
	}
}

// AssembleDual returns the compiled 2-lane function: lane i hashes the
// record at byte offset i*Stride and writes out[i].
func AssembleDual(v Variant) LaneFunc { return assembleLanes[u64x2](v) }

// AssembleQuad returns the compiled 4-lane function.
func AssembleQuad(v Variant) LaneFunc { return assembleLanes[u64x4](v) }
