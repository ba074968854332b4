package flowhash

import (
	"crypto/rand"
	"encoding/binary"
)

// KeySize is the SipHash key length in bytes.
const KeySize = 16

// DeriveKey deterministically expands a small seed into key material:
// the low 4 bytes carry the seed little-endian, the rest are zero.
// Use it where reproducible, non-random keys are wanted (tests,
// differential runs, stable sharding).
func DeriveKey(seed uint32) []byte {
	key := make([]byte, KeySize)
	binary.LittleEndian.PutUint32(key, seed)
	return key
}

// RandomKey returns a fresh random key. This is the default key source
// when a configuration carries no key, so every process hashes with an
// unpredictable function and hash-flooding inputs cannot be precomputed.
func RandomKey() []byte {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		// crypto/rand never fails on supported platforms.
		panic("flowhash: reading random key material: " + err.Error())
	}
	return key
}
