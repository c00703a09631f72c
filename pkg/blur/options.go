package blur

import (
	"math"

	"github.com/go-drift/effectview/pkg/options"
)

// Aspect identifies which blur option changed.
type Aspect int

const (
	// AspectDownSamplingRate reports a SetDownSamplingRate call.
	AspectDownSamplingRate Aspect = iota
	// AspectStaticBlur reports a SetStaticBlur call.
	AspectStaticBlur
	// AspectSoftwareFallback reports a SetSoftwareFallback call.
	AspectSoftwareFallback
	// AspectNumThreads reports a SetNumThreads call.
	AspectNumThreads
)

func (a Aspect) String() string {
	switch a {
	case AspectDownSamplingRate:
		return "down_sampling_rate"
	case AspectStaticBlur:
		return "static_blur"
	case AspectSoftwareFallback:
		return "software_fallback"
	case AspectNumThreads:
		return "num_threads"
	default:
		return "unknown"
	}
}

// Listener is notified when Options change.
type Listener = options.Listener[Aspect]

// Options holds the blur tuning parameters.
//
// Every setter notifies the listener exactly once, synchronously, even when
// the value does not change.
type Options struct {
	notifier options.Notifier[Aspect]

	downSamplingRate float32
	staticBlur       bool
	softwareFallback bool
	numThreads       int
}

// NewOptions returns options with a rate of 1, dynamic blur, software
// fallback enabled and all cores in use.
func NewOptions() *Options {
	return &Options{
		downSamplingRate: 1,
		softwareFallback: true,
	}
}

// SetListener replaces the listener. Pass nil to detach.
func (o *Options) SetListener(l Listener) {
	o.notifier.SetListener(l)
}

// Detach removes l if it is the current listener.
func (o *Options) Detach(l Listener) {
	o.notifier.Detach(l)
}

// DownSamplingRate returns the factor source dimensions are divided by.
func (o *Options) DownSamplingRate() float32 {
	return o.downSamplingRate
}

// SetDownSamplingRate stores rate, clamped to at least 1. NaN stores 1.
func (o *Options) SetDownSamplingRate(rate float32) {
	if rate < 1 || math.IsNaN(float64(rate)) {
		rate = 1
	}
	o.downSamplingRate = rate
	o.notifier.Notify(AspectDownSamplingRate)
}

// StaticBlur reports whether the source is blurred once and then released.
func (o *Options) StaticBlur() bool {
	return o.staticBlur
}

// SetStaticBlur sets the static-blur policy.
func (o *Options) SetStaticBlur(static bool) {
	o.staticBlur = static
	o.notifier.Notify(AspectStaticBlur)
}

// SoftwareFallback reports whether a failed mode retries with its fallback.
func (o *Options) SoftwareFallback() bool {
	return o.softwareFallback
}

// SetSoftwareFallback toggles the fallback retry.
func (o *Options) SetSoftwareFallback(enabled bool) {
	o.softwareFallback = enabled
	o.notifier.Notify(AspectSoftwareFallback)
}

// NumThreads returns the configured worker count; zero or less means all
// available cores.
func (o *Options) NumThreads() int {
	return o.numThreads
}

// SetNumThreads sets the worker count.
func (o *Options) SetNumThreads(n int) {
	o.numThreads = n
	o.notifier.Notify(AspectNumThreads)
}
