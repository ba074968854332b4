package flowhash

import (
	"os"
	"strings"
)

// Level identifies a lane-width tier of the compiled hash kernels.
type Level uint8

const (
	// LevelScalar is the single-lane kernel tier (always available).
	LevelScalar Level = iota
	// LevelDual is the 2-lane tier (128-bit vector registers).
	LevelDual
	// LevelQuad is the 4-lane tier (256-bit vector registers).
	LevelQuad
)

// String returns the string representation of a Level.
func (l Level) String() string {
	switch l {
	case LevelScalar:
		return "scalar"
	case LevelDual:
		return "dual"
	case LevelQuad:
		return "quad"
	default:
		return "unknown"
	}
}

// ParseLevel parses a string into a Level value.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scalar":
		return LevelScalar, true
	case "dual":
		return LevelDual, true
	case "quad":
		return LevelQuad, true
	default:
		return LevelScalar, false
	}
}

// Capability describes which lane-width tiers the host supports. It is
// an explicit descriptor rather than an ambient probe so the composer's
// fallback paths stay testable without real hardware variation.
type Capability struct {
	// Dual reports 2-lane kernel support.
	Dual bool
	// Quad reports 4-lane kernel support.
	Quad bool
}

// Clamp caps the capability at the given level.
func (c Capability) Clamp(l Level) Capability {
	if l < LevelQuad {
		c.Quad = false
	}
	if l < LevelDual {
		c.Dual = false
	}
	return c
}

// DetectCapability probes the CPU feature flags for the current
// architecture. The FLOWHASH_SIMD environment variable ("scalar",
// "dual" or "quad") caps the detected level, mirroring a build-time
// opt-out for the wide kernels.
func DetectCapability() Capability {
	c := detectArch()
	if override := os.Getenv("FLOWHASH_SIMD"); override != "" {
		if l, ok := ParseLevel(override); ok {
			c = c.Clamp(l)
		}
	}
	return c
}
