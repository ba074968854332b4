package flowhash

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileMatchesReference(t *testing.T) {
	reg := NewRegistry()
	rng := rand.New(rand.NewSource(1))
	key := DeriveKey(99)

	for _, size := range []int{0, 1, 4, 8, 12, 16, 24, 32} {
		input := make([]byte, size)
		rng.Read(input)

		withKey := func(o *Options) { o.Key = key }

		h, err := reg.Compile(size, withKey)
		require.NoError(t, err)
		oracle, err := reg.CompileReference(size, withKey)
		require.NoError(t, err)

		assert.Equal(t, oracle.Sum32(input), h.Sum32(input), "size=%d", size)
	}
}

func TestOutputNeverSentinel(t *testing.T) {
	// The internal output format keeps its low bit zero, so it can
	// never collide with the all-ones "no value" marker.
	reg := NewRegistry()
	h, err := reg.Compile(8, func(o *Options) { o.Key = DeriveKey(1) })
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(2))
	input := make([]byte, 8)
	for i := 0; i < 10000; i++ {
		rng.Read(input)
		sum := h.Sum32(input)
		assert.NotEqual(t, uint32(0xffffffff), sum)
		assert.Zero(t, sum&1, "low bit must be zero")
	}
}

func TestDeterminism(t *testing.T) {
	reg := NewRegistry()
	h, err := reg.Compile(16, func(o *Options) { o.Key = DeriveKey(3) })
	require.NoError(t, err)

	input := make([]byte, 16)
	rand.New(rand.NewSource(3)).Read(input)

	first := h.Sum32(input)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, h.Sum32(input))
	}
}

func TestZeroSize(t *testing.T) {
	reg := NewRegistry()

	for _, mode := range []struct {
		name        string
		asSpecified bool
	}{
		{"fixed", false},
		{"as specified", true},
	} {
		t.Run(mode.name, func(t *testing.T) {
			h, err := reg.Compile(0, func(o *Options) {
				o.Key = DeriveKey(4)
				o.AsSpecified = mode.asSpecified
			})
			require.NoError(t, err)

			oracle, err := reg.CompileReference(0, func(o *Options) {
				o.Key = DeriveKey(4)
				o.AsSpecified = mode.asSpecified
			})
			require.NoError(t, err)

			// Nil input is fine: a zero-size variant never loads.
			assert.Equal(t, oracle.Sum32(nil), h.Sum32(nil))
		})
	}
}

func TestKeyedDispersion(t *testing.T) {
	// Different keys must produce different hash functions.
	reg := NewRegistry()
	input := []byte("16-byte flow key")

	a, err := reg.Compile(16, func(o *Options) { o.Key = DeriveKey(1) })
	require.NoError(t, err)
	b, err := reg.Compile(16, func(o *Options) { o.Key = DeriveKey(2) })
	require.NoError(t, err)

	assert.NotEqual(t, a.Sum32(input), b.Sum32(input))
}

func TestImmediateMatchesMemory(t *testing.T) {
	reg := NewRegistry()
	key := DeriveKey(5)

	for c := 0; c <= 2; c++ {
		for d := 0; d <= 4; d++ {
			withMode := func(o *Options) {
				o.Key = key
				o.CompressionRounds = c
				o.FinalizationRounds = d
			}

			mem, err := reg.Compile(8, withMode)
			require.NoError(t, err)
			imm, err := reg.CompileImmediate(8, withMode)
			require.NoError(t, err)

			input := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}
			assert.Equal(t, mem.Sum32(input), imm.Sum32(0xefcdab8967452301), "c=%d d=%d", c, d)
		}
	}
}
