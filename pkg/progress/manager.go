package progress

import (
	"sync"

	efxerrors "github.com/go-drift/effectview/pkg/errors"
	"github.com/go-drift/effectview/pkg/logging"
	"github.com/go-drift/effectview/pkg/rendering"
	"github.com/go-drift/effectview/pkg/state"
)

// DrawerManager tracks the progress value and draws the indicator for the
// current mode.
type DrawerManager struct {
	mu sync.Mutex

	opts   *Options
	mode   Mode
	drawer Drawer
	value  float32
	closed bool
}

// NewDrawerManager returns a manager for mode listening to opts. A nil opts
// uses NewOptions.
func NewDrawerManager(opts *Options, mode Mode) *DrawerManager {
	if opts == nil {
		opts = NewOptions()
	}
	mode = FromValue(int(mode))
	m := &DrawerManager{
		opts:   opts,
		mode:   mode,
		drawer: NewDrawer(mode),
	}
	opts.SetListener(m)
	return m
}

// Options returns the options the manager listens to.
func (m *DrawerManager) Options() *Options { return m.opts }

// Mode returns the current indicator mode.
func (m *DrawerManager) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// SetMode switches the indicator style. Unknown values resolve to
// DefaultMode.
func (m *DrawerManager) SetMode(mode Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	mode = FromValue(int(mode))
	if mode != m.mode {
		m.drawer = NewDrawer(mode)
		logging.Logger().Debug("progress mode changed", "from", m.mode.String(), "to", mode.String())
	}
	m.mode = mode
}

// Progress returns the current value in [0, Max].
func (m *DrawerManager) Progress() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value
}

// SetProgress stores v clamped to [0, Max]. NaN stores 0.
func (m *DrawerManager) SetProgress(v float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.value = m.clamp(v)
}

func (m *DrawerManager) clamp(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	return min(v, m.opts.Max())
}

// Fraction returns Progress divided by Max.
func (m *DrawerManager) Fraction() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return float64(m.value) / float64(m.opts.Max())
}

// OptionsChanged implements Listener. Lowering Max re-clamps the value.
func (m *DrawerManager) OptionsChanged(a Aspect) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || a != AspectMax {
		return
	}
	m.value = m.clamp(m.value)
}

// Draw renders the indicator inside bounds. Disabled mode draws nothing.
func (m *DrawerManager) Draw(c rendering.Canvas, bounds rendering.Rect) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || c == nil || m.drawer == nil {
		return
	}
	d, mode := m.drawer, m.mode
	fraction := float64(m.value) / float64(m.opts.Max())
	err := efxerrors.Guard("progress.DrawerManager.Draw", func() error {
		d.Draw(c, bounds, fraction, m.opts)
		return nil
	})
	if err != nil {
		logging.Logger().Warn("progress draw failed", "mode", mode.String(), "err", err)
	}
}

// Close detaches from the options. The manager is inert afterwards.
func (m *DrawerManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	m.opts.Detach(m)
}

const (
	keyMode       = "progress.mode"
	keyValue      = "progress.value"
	keyMax        = "progress.max"
	keyThickness  = "progress.thickness"
	keyStartAngle = "progress.start_angle"
	keyColor      = "progress.color"
	keyTrackColor = "progress.track_color"
	keyPadding    = "progress.padding"
)

// SaveState writes the mode, value and options into b.
func (m *DrawerManager) SaveState(b *state.Bundle) {
	o := m.opts
	b.PutInt(keyMode, m.Mode().Value())
	b.PutFloat32(keyValue, m.Progress())
	b.PutFloat32(keyMax, o.Max())
	b.PutFloat32(keyThickness, o.Thickness())
	b.PutFloat32(keyStartAngle, o.StartAngle())
	b.PutString(keyColor, o.Color().String())
	b.PutString(keyTrackColor, o.TrackColor().String())
	b.PutFloat32(keyPadding, o.Padding())
}

// RestoreState applies state saved by SaveState. Missing or malformed
// keys keep their current values.
func (m *DrawerManager) RestoreState(b *state.Bundle) {
	o := m.opts
	if b.Has(keyMax) {
		o.SetMax(b.Float32(keyMax, o.Max()))
	}
	if b.Has(keyThickness) {
		o.SetThickness(b.Float32(keyThickness, o.Thickness()))
	}
	if b.Has(keyStartAngle) {
		o.SetStartAngle(b.Float32(keyStartAngle, o.StartAngle()))
	}
	if c, err := rendering.ParseColor(b.String(keyColor, "")); err == nil {
		o.SetColor(c)
	}
	if c, err := rendering.ParseColor(b.String(keyTrackColor, "")); err == nil {
		o.SetTrackColor(c)
	}
	if b.Has(keyPadding) {
		o.SetPadding(b.Float32(keyPadding, o.Padding()))
	}
	if b.Has(keyValue) {
		m.SetProgress(b.Float32(keyValue, m.Progress()))
	}
	if b.Has(keyMode) {
		m.SetMode(FromValue(b.Int(keyMode, m.Mode().Value())))
	}
}
