package flowhash

import (
	"encoding/binary"
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"
)

// SelfTest differentially exercises the full configuration space:
// for every size in [0,32], compression rounds in [0,2], finalization
// rounds in [0,4] and valid tail/output mode combination, the scalar
// function must match the reference oracle bit-exactly; batch hashers
// of width 1, 2, 4 and 8 must prove lane isolation; and the immediate
// variant must agree with the memory variant for 8-byte inputs.
//
// The matrix runs once per capability combination, so the dual and
// quad kernels and every composer fallback path are verified regardless
// of what the current host supports.
func SelfTest() error {
	caps := []Capability{
		{},
		{Dual: true},
		{Dual: true, Quad: true},
	}
	for _, c := range caps {
		r := NewRegistry(func(o *RegistryOptions) { o.Capability = c })
		if err := r.SelfTest(); err != nil {
			return fmt.Errorf("flowhash: self-test (dual=%v quad=%v): %w", c.Dual, c.Quad, err)
		}
	}
	return nil
}

// SelfTest runs the differential matrix against the registry's own
// capability. Inputs and keys are deterministic, so a failure
// reproduces exactly.
func (r *Registry) SelfTest() error {
	g := new(errgroup.Group)
	for size := 0; size <= 32; size++ {
		size := size
		g.Go(func() error {
			return r.selfTestSize(size)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return r.selfTestImmediate()
}

func (r *Registry) selfTestSize(size int) error {
	rng := rand.New(rand.NewSource(int64(size) + 1))
	key := make([]byte, KeySize)
	rng.Read(key)
	input := make([]byte, size)
	rng.Read(input)

	for c := 0; c <= 2; c++ {
		for d := 0; d <= 4; d++ {
			for _, mode := range []struct{ asSpecified, standard bool }{
				{false, false},
				{true, false},
				{true, true},
			} {
				withMode := func(o *Options) {
					o.Key = key
					o.CompressionRounds = c
					o.FinalizationRounds = d
					o.AsSpecified = mode.asSpecified
					o.Standard = mode.standard
				}

				scalar, err := r.Compile(size, withMode)
				if err != nil {
					return err
				}
				oracle, err := r.CompileReference(size, withMode)
				if err != nil {
					return err
				}

				want := oracle.Sum32(input)
				if got := scalar.Sum32(input); got != want {
					return fmt.Errorf("%s: got %#08x, oracle %#08x", scalar, got, want)
				}

				if !mode.standard {
					if err := r.selfTestLanes(size, input, want, withMode); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// selfTestLanes verifies lane isolation: with the test input placed at
// lane i of an otherwise all-zero buffer, lane i must hash to the
// single-record result and every other lane to the hash of zeros.
func (r *Registry) selfTestLanes(size int, input []byte, want uint32, withMode func(o *Options)) error {
	scalar, err := r.Compile(size, withMode)
	if err != nil {
		return err
	}
	zeroHash := scalar.Sum32(make([]byte, size))

	for _, width := range []int{1, 2, 4, 8} {
		batch, err := r.CompileMulti(size, withMode, func(o *Options) { o.Width = width })
		if err != nil {
			return err
		}

		for i := 0; i < width; i++ {
			buf := make([]byte, width*size)
			copy(buf[i*size:], input)

			out := make([]uint32, width)
			batch.Sum32(buf, out)

			for j := 0; j < width; j++ {
				expect := zeroHash
				if j == i {
					expect = want
				}
				if out[j] != expect {
					return fmt.Errorf("%s: lane %d of %d (input at lane %d): got %#08x, want %#08x",
						batch, j, width, i, out[j], expect)
				}
			}
		}
	}
	return nil
}

// selfTestImmediate verifies the immediate-value variant against the
// memory variant for all round counts.
func (r *Registry) selfTestImmediate() error {
	rng := rand.New(rand.NewSource(64))
	key := make([]byte, KeySize)
	rng.Read(key)
	input := make([]byte, 8)
	rng.Read(input)
	value := binary.LittleEndian.Uint64(input)

	for c := 0; c <= 2; c++ {
		for d := 0; d <= 4; d++ {
			withMode := func(o *Options) {
				o.Key = key
				o.CompressionRounds = c
				o.FinalizationRounds = d
			}

			mem, err := r.Compile(8, withMode)
			if err != nil {
				return err
			}
			imm, err := r.CompileImmediate(8, withMode)
			if err != nil {
				return err
			}

			if got, want := imm.Sum32(value), mem.Sum32(input); got != want {
				return fmt.Errorf("%s: immediate %#08x, memory %#08x (c=%d d=%d)", imm, got, want, c, d)
			}
		}
	}
	return nil
}
