package sip

import "encoding/binary"

// The reference backend compiles the algorithm into an explicit
// instruction list and interprets it with plain 64-bit arithmetic.
// It is deliberately the dumbest possible realization: every other
// backend is differentially tested against it, and the multi-lane
// composer falls back to it when the host offers no vector units.

type opcode uint8

const (
	opAdd opcode = iota
	opXor
	opOr
	opShl
	opRotl
	opLoad8
	opLoad16
	opLoad32
	opLoad64
	opLoadImm
)

type instr struct {
	op  opcode
	dst Reg
	src Reg
	n   uint8
}

type refBackend struct {
	iv       [4]uint64
	prog     []instr
	result   Reg
	standard bool
}

func (b *refBackend) Init(key [16]byte) { b.iv = initState(key) }

func (b *refBackend) Add(dst, src Reg) { b.prog = append(b.prog, instr{op: opAdd, dst: dst, src: src}) }
func (b *refBackend) Xor(dst, src Reg) { b.prog = append(b.prog, instr{op: opXor, dst: dst, src: src}) }
func (b *refBackend) Or(dst, src Reg)  { b.prog = append(b.prog, instr{op: opOr, dst: dst, src: src}) }

func (b *refBackend) Shl(r Reg, n uint8) {
	b.prog = append(b.prog, instr{op: opShl, dst: r, n: n})
}

func (b *refBackend) RotateLeft(r Reg, n uint8) {
	b.prog = append(b.prog, instr{op: opRotl, dst: r, n: n})
}

func (b *refBackend) LoadAdvance8(dst Reg)  { b.prog = append(b.prog, instr{op: opLoad8, dst: dst}) }
func (b *refBackend) LoadAdvance16(dst Reg) { b.prog = append(b.prog, instr{op: opLoad16, dst: dst}) }
func (b *refBackend) LoadAdvance32(dst Reg) { b.prog = append(b.prog, instr{op: opLoad32, dst: dst}) }
func (b *refBackend) LoadAdvance64(dst Reg) { b.prog = append(b.prog, instr{op: opLoad64, dst: dst}) }

func (b *refBackend) LoadImmediateByte(dst Reg, v uint8) {
	b.prog = append(b.prog, instr{op: opLoadImm, dst: dst, n: v})
}

func (b *refBackend) Finalize(r Reg, standard bool) {
	b.result = r
	b.standard = standard
}

func (b *refBackend) run(p []byte) uint32 {
	var r [numRegs]uint64
	r[RegV0], r[RegV1], r[RegV2], r[RegV3] = b.iv[0], b.iv[1], b.iv[2], b.iv[3]

	off := 0
	for _, ins := range b.prog {
		switch ins.op {
		case opAdd:
			r[ins.dst] += r[ins.src]
		case opXor:
			r[ins.dst] ^= r[ins.src]
		case opOr:
			r[ins.dst] |= r[ins.src]
		case opShl:
			r[ins.dst] <<= ins.n
		case opRotl:
			r[ins.dst] = r[ins.dst]<<ins.n | r[ins.dst]>>(64-ins.n)
		case opLoad8:
			r[ins.dst] = uint64(p[off])
			off++
		case opLoad16:
			r[ins.dst] = uint64(binary.LittleEndian.Uint16(p[off:]))
			off += 2
		case opLoad32:
			r[ins.dst] = uint64(binary.LittleEndian.Uint32(p[off:]))
			off += 4
		case opLoad64:
			r[ins.dst] = binary.LittleEndian.Uint64(p[off:])
			off += 8
		case opLoadImm:
			r[ins.dst] = uint64(ins.n)
		}
	}

	return fold32(r[b.result], b.standard)
}

// AssembleReference returns the portable oracle function for v.
func AssembleReference(v Variant) Func {
	b := &refBackend{}
	program(b, v)
	return b.run
}
