package shape

import (
	"image"
	"sync"

	efxerrors "github.com/go-drift/effectview/pkg/errors"
	"github.com/go-drift/effectview/pkg/logging"
	"github.com/go-drift/effectview/pkg/rendering"
	"github.com/go-drift/effectview/pkg/state"
)

// DrawerManager holds the active Drawer for a mode and keeps the bounds in
// step with the view size, the mode and every options change.
type DrawerManager struct {
	mu sync.Mutex

	opts   *Options
	mode   Mode
	drawer Drawer
	width  int
	height int
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

// Mode returns the current shape mode.
func (m *DrawerManager) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// Drawer returns the active drawer.
func (m *DrawerManager) Drawer() Drawer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drawer
}

// Bounds returns the current bounds.
func (m *DrawerManager) Bounds() Bounds {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opts.Bounds()
}

// SetSize records the view size and recomputes the bounds.
func (m *DrawerManager) SetSize(width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.width, m.height = width, height
	m.recalculate()
}

// SetMode switches the mode, swapping the drawer, and recomputes the
// bounds. Unknown values resolve to DefaultMode.
func (m *DrawerManager) SetMode(mode Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	mode = FromValue(int(mode))
	if mode != m.mode {
		m.drawer = NewDrawer(mode)
		logging.Logger().Debug("shape mode changed", "from", m.mode.String(), "to", mode.String())
	}
	m.mode = mode
	m.recalculate()
}

// OptionsChanged implements Listener.
func (m *DrawerManager) OptionsChanged(Aspect) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.recalculate()
}

func (m *DrawerManager) recalculate() {
	b := m.opts.CalculateBounds(m.width, m.height, m.mode)
	logging.Logger().Debug("shape bounds recomputed", "mode", m.mode.String(), "border", b.Border)
}

// Draw renders src through the active drawer. A panicking drawer is
// reported and the frame is left as drawn so far.
func (m *DrawerManager) Draw(c rendering.Canvas, src image.Image) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed || c == nil {
		return
	}
	d, b, mode := m.drawer, m.opts.Bounds(), m.mode
	err := efxerrors.Guard("shape.DrawerManager.Draw", func() error {
		d.Draw(c, src, b, m.opts)
		return nil
	})
	if err != nil {
		logging.Logger().Warn("shape draw failed", "mode", mode.String(), "err", err)
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
	keyMode         = "shape.mode"
	keyInnerPadding = "shape.inner_padding"
	keyBorderWidth  = "shape.border_width"
	keyRatio        = "shape.ratio"
	keyRadiusX      = "shape.radius_x"
	keyRadiusY      = "shape.radius_y"
	keyBorderColor  = "shape.border_color"
	keySolidColor   = "shape.solid_color"
	keyScaleType    = "shape.scale_type"
)

// SaveState writes the mode and options into b.
func (m *DrawerManager) SaveState(b *state.Bundle) {
	o := m.opts
	b.PutInt(keyMode, m.Mode().Value())
	b.PutFloat32(keyInnerPadding, o.InnerPadding())
	b.PutFloat32(keyBorderWidth, o.BorderWidth())
	b.PutFloat32(keyRatio, o.Ratio())
	b.PutFloat32(keyRadiusX, o.RadiusX())
	b.PutFloat32(keyRadiusY, o.RadiusY())
	b.PutString(keyBorderColor, o.BorderColor().String())
	b.PutString(keySolidColor, o.SolidColor().String())
	b.PutInt(keyScaleType, o.ScaleType().Value())
}

// RestoreState applies state saved by SaveState. Missing or malformed
// keys keep their current values.
func (m *DrawerManager) RestoreState(b *state.Bundle) {
	o := m.opts
	if b.Has(keyInnerPadding) {
		o.SetInnerPadding(b.Float32(keyInnerPadding, o.InnerPadding()))
	}
	if b.Has(keyBorderWidth) {
		o.SetBorderWidth(b.Float32(keyBorderWidth, o.BorderWidth()))
	}
	if b.Has(keyRatio) {
		o.SetRatio(b.Float32(keyRatio, o.Ratio()))
	}
	if b.Has(keyRadiusX) {
		o.SetRadiusX(b.Float32(keyRadiusX, o.RadiusX()))
	}
	if b.Has(keyRadiusY) {
		o.SetRadiusY(b.Float32(keyRadiusY, o.RadiusY()))
	}
	if c, err := rendering.ParseColor(b.String(keyBorderColor, "")); err == nil {
		o.SetBorderColor(c)
	}
	if c, err := rendering.ParseColor(b.String(keySolidColor, "")); err == nil {
		o.SetSolidColor(c)
	}
	if b.Has(keyScaleType) {
		o.SetScaleType(ScaleTypeFromValue(b.Int(keyScaleType, o.ScaleType().Value())))
	}
	if b.Has(keyMode) {
		m.SetMode(FromValue(b.Int(keyMode, m.Mode().Value())))
	}
}
