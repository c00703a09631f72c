package blur

import (
	"math"

	"github.com/go-drift/effectview/pkg/state"
)

// optionsSize is the length of the binary form of Options.
const optionsSize = 4 + 1 + 1 + 4

// MarshalBinary encodes the options as
// [rate f32][static u8][fallback u8][threads i32], little endian.
func (o *Options) MarshalBinary() ([]byte, error) {
	e := state.NewEncoder(optionsSize)
	e.Float32(o.downSamplingRate)
	e.Bool(o.staticBlur)
	e.Bool(o.softwareFallback)
	e.Int32(o.numThreads)
	return e.Bytes(), nil
}

// UnmarshalBinary decodes data written by MarshalBinary. Fields are
// assigned directly, so the listener is not notified. Short input returns
// io.ErrUnexpectedEOF and leaves the options unchanged.
func (o *Options) UnmarshalBinary(data []byte) error {
	d := state.NewDecoder(data)
	rate := d.Float32()
	static := d.Bool()
	fallback := d.Bool()
	threads := d.Int32()
	if err := d.Err(); err != nil {
		return err
	}
	if rate < 1 || math.IsNaN(float64(rate)) {
		rate = 1
	}
	o.downSamplingRate = rate
	o.staticBlur = static
	o.softwareFallback = fallback
	o.numThreads = threads
	return nil
}

// Bundle keys written by SaveState.
const (
	keyMode             = "blur.mode"
	keyRadius           = "blur.radius"
	keyDownSamplingRate = "blur.down_sampling_rate"
	keyStaticBlur       = "blur.static"
	keySoftwareFallback = "blur.software_fallback"
	keyNumThreads       = "blur.threads"
)

// SaveState writes the mode, radius and options into b.
func (m *DrawerManager) SaveState(b *state.Bundle) {
	m.mu.Lock()
	mode, radius := m.mode, m.radius
	m.mu.Unlock()

	b.PutInt(keyMode, mode.Value())
	b.PutInt(keyRadius, radius)
	b.PutFloat32(keyDownSamplingRate, m.opts.DownSamplingRate())
	b.PutBool(keyStaticBlur, m.opts.StaticBlur())
	b.PutBool(keySoftwareFallback, m.opts.SoftwareFallback())
	b.PutInt(keyNumThreads, m.opts.NumThreads())
}

// RestoreState applies state saved by SaveState. Missing keys keep their
// current values and an unknown mode value resolves to DefaultMode.
func (m *DrawerManager) RestoreState(b *state.Bundle) {
	o := m.opts
	if b.Has(keyDownSamplingRate) {
		o.SetDownSamplingRate(b.Float32(keyDownSamplingRate, o.DownSamplingRate()))
	}
	if b.Has(keyStaticBlur) {
		o.SetStaticBlur(b.Bool(keyStaticBlur, o.StaticBlur()))
	}
	if b.Has(keySoftwareFallback) {
		o.SetSoftwareFallback(b.Bool(keySoftwareFallback, o.SoftwareFallback()))
	}
	if b.Has(keyNumThreads) {
		o.SetNumThreads(b.Int(keyNumThreads, o.NumThreads()))
	}

	m.mu.Lock()
	mode, radius := m.mode, m.radius
	m.mu.Unlock()
	mode = FromValue(b.Int(keyMode, int(mode)))
	radius = b.Int(keyRadius, radius)
	m.ChangeMode(mode, radius)
}
