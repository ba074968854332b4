//go:build amd64

package flowhash

import "golang.org/x/sys/cpu"

func detectArch() Capability {
	return Capability{
		Dual: cpu.X86.HasSSE2,
		Quad: cpu.X86.HasAVX2,
	}
}
