// Package flowhash generates keyed, fixed-input-size SipHash functions
// for packet-processing pipelines: flow identifiers and table keys that
// must be hashed millions of times per second while staying resistant
// to adversarial hash-flooding.
//
// Every hash function is compiled once per configuration (input size,
// round counts, tail policy, key) and then invoked with no per-call
// setup. A configuration names one member of the SipHash family:
// SipHash-2-4 over 16-byte keys by default, with the tail handling
// specialized to the fixed input size unless published-compatible
// output is requested.
//
// # Quick Start
//
//	reg := flowhash.NewRegistry()
//
//	// Single-value hashing of 16-byte flow keys.
//	h, _ := reg.Compile(16)
//	sum := h.Sum32(flowKey)
//
//	// Batch hashing, 8 records per call, using the widest kernels the
//	// host supports.
//	batch, _ := reg.CompileMulti(16, func(o *flowhash.Options) { o.Width = 8 })
//	batch.Sum32(records, out)
//
//	// Interoperable SipHash-2-4 (low 32 bits of the published output).
//	std, _ := reg.Compile(16, func(o *flowhash.Options) {
//		o.Key = key
//		o.Standard = true
//	})
//
// # Backends
//
// Four backends realize the same algorithm description: a scalar
// single-lane kernel, 2- and 4-lane vector kernels, and a portable
// reference simulator that doubles as the differential-testing oracle.
// The multi-lane composer assembles arbitrary-width batch hashers from
// the 1/2/4-lane building blocks and silently substitutes narrower
// blocks when the CPU lacks the wide tiers.
//
// # Output Format
//
// By default the 32-bit output keeps its low bit zero, so it can never
// equal 0xFFFFFFFF; lookup tables may use the all-ones value as their
// "no entry" sentinel. Standard mode instead returns the low 32 bits of
// the published 64-bit SipHash output for cross-implementation
// compatibility.
//
// Compiled functions are pure and safe for unlocked concurrent use.
// Compilation itself is a mutex-guarded setup-time operation.
package flowhash
