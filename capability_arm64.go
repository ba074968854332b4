//go:build arm64

package flowhash

import "golang.org/x/sys/cpu"

func detectArch() Capability {
	// NEON gives 128-bit lanes; there is no 256-bit tier on ARM64.
	return Capability{
		Dual: cpu.ARM64.HasASIMD,
	}
}
