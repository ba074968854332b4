package flowhash

import (
	"fmt"
	"os"
	"runtime"
	"testing"
)

// TestMain runs before all tests and prints capability diagnostic
// information. This helps CI identify which kernel tiers are actually
// being exercised.
func TestMain(m *testing.M) {
	c := DetectCapability()

	fmt.Printf("=== flowhash capability diagnostics ===\n")
	fmt.Printf("GOOS=%s GOARCH=%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("FLOWHASH_SIMD=%q\n", os.Getenv("FLOWHASH_SIMD"))
	fmt.Printf("Dual (128-bit lanes): %v\n", c.Dual)
	fmt.Printf("Quad (256-bit lanes): %v\n", c.Quad)
	fmt.Printf("=======================================\n\n")

	os.Exit(m.Run())
}
