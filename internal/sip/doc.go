// Package sip implements the SipHash variant generator: the abstract
// algorithm description, the backend operation set, and the concrete
// scalar, immediate, dual-lane, quad-lane and reference backends.
//
// The algorithm is written exactly once, against the Backend interface.
// Each backend realizes the operation set with its own word
// representation and calling convention:
//
//   - Scalar: one lane, plain uint64 arithmetic, returns a uint32.
//   - Immediate: scalar variant taking the 8-byte input as a uint64
//     argument instead of reading memory.
//   - Dual/Quad: 2 and 4 independent lanes, one monomorphized vector
//     backend over [2]uint64 and [4]uint64 lane words.
//   - Reference: a portable instruction-list simulator, used as the
//     correctness oracle and the universal fallback.
//
// Compiled functions are pure and reentrant: all mutable state lives in
// a per-call frame, so a single compiled function may be invoked from
// any number of goroutines concurrently.
package sip
