package blur

import (
	"errors"
	"fmt"
	"image"
	"sync"

	efxerrors "github.com/go-drift/effectview/pkg/errors"
)

// ErrAlgorithmUnavailable is returned when no algorithm is registered for a
// mode in the registry being used.
var ErrAlgorithmUnavailable = errors.New("blur: algorithm unavailable")

// errNoResult is returned when an algorithm reports success without a bitmap.
var errNoResult = errors.New("blur: algorithm returned no bitmap")

// Request carries the per-call parameters of a blur.
type Request struct {
	// Radius is the blur radius in pixels of the (down-sampled) source.
	Radius int
	// NumThreads bounds the worker goroutines; zero or less means all cores.
	NumThreads int
}

// Algorithm blurs a bitmap. Implementations must not modify src and must
// return a new bitmap; the call blocks until every worker has finished.
type Algorithm interface {
	Blur(src *image.RGBA, req Request) (*image.RGBA, error)
}

// AlgorithmFunc adapts a function to the Algorithm interface.
type AlgorithmFunc func(src *image.RGBA, req Request) (*image.RGBA, error)

// Blur calls f(src, req).
func (f AlgorithmFunc) Blur(src *image.RGBA, req Request) (*image.RGBA, error) {
	return f(src, req)
}

// Registry maps blur modes to algorithms.
// It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	algorithms map[Mode]Algorithm
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{algorithms: make(map[Mode]Algorithm)}
}

// NewDefaultRegistry returns a registry holding the built-in algorithms for
// every enabled mode.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Gaussian, gaussianAlgorithm{})
	r.Register(Box, boxAlgorithm{})
	r.Register(Mean, meanAlgorithm{})
	r.Register(Stack, StackAlgorithm{})
	return r
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
)

// DefaultRegistry returns the shared registry of built-in algorithms.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewDefaultRegistry()
	})
	return defaultRegistry
}

// Register installs a for mode m, replacing any previous algorithm.
// Registering for Disabled is ignored.
func (r *Registry) Register(m Mode, a Algorithm) {
	m = FromValue(int(m))
	if m == Disabled || a == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.algorithms[m] = a
}

// Unregister removes the algorithm for m, making the mode unavailable.
func (r *Registry) Unregister(m Mode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.algorithms, FromValue(int(m)))
}

// Lookup returns the algorithm registered for m.
func (r *Registry) Lookup(m Mode) (Algorithm, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.algorithms[FromValue(int(m))]
	return a, ok
}

// Run blurs src with the algorithm for m. A missing algorithm, an error, a
// nil result, or a panic inside the algorithm are all returned as errors.
func (r *Registry) Run(m Mode, src *image.RGBA, req Request) (*image.RGBA, error) {
	a, ok := r.Lookup(m)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAlgorithmUnavailable, m)
	}
	var out *image.RGBA
	err := efxerrors.Guard("blur.Registry.Run", func() error {
		var err error
		out, err = a.Blur(src, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errNoResult
	}
	return out, nil
}
