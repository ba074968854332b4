package flowhash

import (
	"sync"

	"github.com/hupe1980/flowhash/internal/sip"
)

// RegistryOptions configure a Registry.
type RegistryOptions struct {
	// Capability selects which lane-width tiers the composer may use.
	Capability Capability

	// Logger receives compile and cache events at debug level. The
	// hashing hot path never logs.
	Logger *Logger
}

// Registry owns every compiled hash function it creates. It is the
// process's variant cache: compiling a structurally equal configuration
// twice returns the identical compiled instance.
//
// Compilation is a setup-time operation; the cache is guarded by a
// mutex, so compiling lazily from multiple goroutines is safe, just not
// something to do on a packet path. Compiled functions themselves are
// pure and lock-free.
type Registry struct {
	cap    Capability
	logger *Logger

	mu        sync.Mutex
	scalar    map[sip.Variant]*Hash
	reference map[sip.Variant]*Hash
	immediate map[sip.Variant]*ImmediateHash
	dual      map[sip.Variant]*BatchHash
	quad      map[sip.Variant]*BatchHash
	batch     map[batchKey]*BatchHash
}

type batchKey struct {
	v     sip.Variant
	width int
}

// NewRegistry creates a Registry with the host's detected capability.
func NewRegistry(optFns ...func(o *RegistryOptions)) *Registry {
	opts := RegistryOptions{
		Capability: DetectCapability(),
		Logger:     NoopLogger(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = NoopLogger()
	}

	return &Registry{
		cap:       opts.Capability,
		logger:    opts.Logger,
		scalar:    make(map[sip.Variant]*Hash),
		reference: make(map[sip.Variant]*Hash),
		immediate: make(map[sip.Variant]*ImmediateHash),
		dual:      make(map[sip.Variant]*BatchHash),
		quad:      make(map[sip.Variant]*BatchHash),
		batch:     make(map[batchKey]*BatchHash),
	}
}

// Capability returns the capability descriptor the registry composes with.
func (r *Registry) Capability() Capability { return r.cap }

// Compile returns the single-value scalar hash function for the given
// input size and options, reusing a cached instance when an equal
// variant was compiled before.
func (r *Registry) Compile(size int, optFns ...func(o *Options)) (*Hash, error) {
	v, err := r.variant(size, optFns)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scalarLocked(v), nil
}

// CompileReference returns the portable reference function for the
// given variant. It computes bit-identical results to Compile and
// exists as the differential-testing oracle.
func (r *Registry) CompileReference(size int, optFns ...func(o *Options)) (*Hash, error) {
	v, err := r.variant(size, optFns)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.reference[v]
	if !ok {
		h = &Hash{name: variantName(v, "reference"), fn: sip.AssembleReference(v)}
		r.reference[v] = h
		r.logCompile(h.name)
	}
	return h, nil
}

// CompileImmediate returns the immediate-value hash function: the
// 8-byte input is passed as a uint64 argument instead of being read
// from memory. Only size 8 with fixed-size tail handling qualifies.
func (r *Registry) CompileImmediate(size int, optFns ...func(o *Options)) (*ImmediateHash, error) {
	v, err := r.variant(size, optFns)
	if err != nil {
		return nil, err
	}
	if v.Size != 8 || v.AsSpecified {
		return nil, ErrImmediateVariant
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.immediate[v]
	if !ok {
		h = &ImmediateHash{name: variantName(v, "immediate"), fn: sip.AssembleImmediate(v)}
		r.immediate[v] = h
		r.logCompile(h.name)
	}
	return h, nil
}

// CompileMulti returns the batch hash function for o.Width lanes,
// composed from the widest kernels the capability allows.
func (r *Registry) CompileMulti(size int, optFns ...func(o *Options)) (*BatchHash, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Width < 1 {
		return nil, ErrInvalidWidth
	}
	if opts.Standard && opts.Width != 1 {
		return nil, ErrStandardBatch
	}

	v, err := newVariant(size, opts)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.batchLocked(v, opts.Width), nil
}

func (r *Registry) variant(size int, optFns []func(o *Options)) (sip.Variant, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	return newVariant(size, opts)
}

func (r *Registry) scalarLocked(v sip.Variant) *Hash {
	h, ok := r.scalar[v]
	if !ok {
		h = &Hash{name: variantName(v, "scalar"), fn: sip.AssembleScalar(v)}
		r.scalar[v] = h
		r.logCompile(h.name)
	}
	return h
}

func (r *Registry) dualLocked(v sip.Variant) *BatchHash {
	h, ok := r.dual[v]
	if !ok {
		h = &BatchHash{name: variantName(v, "dual"), width: 2, fn: sip.AssembleDual(v)}
		r.dual[v] = h
		r.logCompile(h.name)
	}
	return h
}

func (r *Registry) quadLocked(v sip.Variant) *BatchHash {
	h, ok := r.quad[v]
	if !ok {
		h = &BatchHash{name: variantName(v, "quad"), width: 4, fn: sip.AssembleQuad(v)}
		r.quad[v] = h
		r.logCompile(h.name)
	}
	return h
}

func (r *Registry) logCompile(name string) {
	r.logger.Debug("compiled hash variant", "variant", name)
}
