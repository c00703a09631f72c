package blur

import (
	"errors"
	"image"
	"sync"

	"github.com/go-drift/effectview/pkg/bitmap"
	efxerrors "github.com/go-drift/effectview/pkg/errors"
	"github.com/go-drift/effectview/pkg/logging"
)

// DrawerManager owns the source and blurred bitmaps of one view.
//
// Bitmaps returned by Blur and BlurredBitmap belong to the manager and stay
// valid until the next call that changes the drawable, size, mode or
// options. All methods are serialised on an internal mutex, so a Blur that
// overlaps another waits for it.
type DrawerManager struct {
	mu sync.Mutex

	opts     *Options
	registry *Registry
	pool     *bitmap.Pool

	drawable bitmap.Drawable
	original *image.RGBA
	blurred  *image.RGBA

	mode       Mode
	radius     int
	lastRadius int
	// blurredRadius is the radius blurred was produced with.
	blurredRadius int

	width  int
	height int
	closed bool
}

// ManagerOption configures a DrawerManager.
type ManagerOption func(*DrawerManager)

// WithRegistry makes the manager look algorithms up in r.
func WithRegistry(r *Registry) ManagerOption {
	return func(m *DrawerManager) {
		if r != nil {
			m.registry = r
		}
	}
}

// WithPool makes the manager take bitmaps from p.
func WithPool(p *bitmap.Pool) ManagerOption {
	return func(m *DrawerManager) {
		if p != nil {
			m.pool = p
		}
	}
}

// NewDrawerManager returns a manager for mode and radius that listens to
// opts. A nil opts uses NewOptions.
func NewDrawerManager(opts *Options, mode Mode, radius int, options ...ManagerOption) *DrawerManager {
	if opts == nil {
		opts = NewOptions()
	}
	m := &DrawerManager{
		opts:       opts,
		registry:   DefaultRegistry(),
		pool:       bitmap.DefaultPool(),
		mode:       FromValue(int(mode)),
		radius:     radius,
		lastRadius: radius,
	}
	for _, o := range options {
		o(m)
	}
	opts.SetListener(m)
	return m
}

// Options returns the options the manager listens to.
func (m *DrawerManager) Options() *Options {
	return m.opts
}

// Mode returns the current blur mode.
func (m *DrawerManager) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// Radius returns the most recently requested radius.
func (m *DrawerManager) Radius() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.radius
}

// LastRadius returns the radius requested before the current one.
func (m *DrawerManager) LastRadius() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRadius
}

// Drawable returns the current drawable, or nil.
func (m *DrawerManager) Drawable() bitmap.Drawable {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drawable
}

// Original returns the rasterised source bitmap, or nil when none is held.
func (m *DrawerManager) Original() *image.RGBA {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.original
}

// ShouldBlur reports whether drawing should use the blurred bitmap.
func (m *DrawerManager) ShouldBlur() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode.IsEnabled() && m.radius > 0
}

// SetSize stores the bounding box bitmaps are fitted into. The blurred
// bitmap is dropped and the original rebuilt at the new size.
func (m *DrawerManager) SetSize(width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.width, m.height = max(0, width), max(0, height)
	m.releaseBlurred()
	if m.drawable != nil && m.mode.IsEnabled() {
		m.rasterizeLocked(true)
	}
}

// ChangeDrawable replaces the drawable. While blur is disabled only the
// reference is stored. Passing the current drawable again keeps the
// existing original when its size still matches.
func (m *DrawerManager) ChangeDrawable(d bitmap.Drawable) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	same := sameDrawable(m.drawable, d)
	m.drawable = d
	if !same {
		m.releaseBlurred()
	}
	if d == nil {
		m.releaseBuffers()
		return
	}
	if !m.mode.IsEnabled() {
		return
	}
	m.rasterizeLocked(same)
}

// ChangeMode switches the blur mode and radius. Disabling blur releases
// both bitmaps.
func (m *DrawerManager) ChangeMode(mode Mode, radius int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	mode = FromValue(int(mode))
	changed := mode != m.mode
	m.mode = mode
	m.lastRadius, m.radius = m.radius, radius
	if !mode.IsEnabled() {
		m.releaseBuffers()
		return
	}
	if changed {
		m.releaseBlurred()
	}
	if m.drawable != nil && m.original == nil {
		m.rasterizeLocked(false)
	}
}

// Blur blurs the original with radius and returns the result. On failure
// the previous blurred bitmap is returned, else the original. The result
// is nil only when there is nothing to rasterise.
func (m *DrawerManager) Blur(radius int) *image.RGBA {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.lastRadius, m.radius = m.radius, radius
	return m.blurLocked()
}

// BlurredBitmap blurs with the current radius and returns the result,
// falling back to the original when blurring is not possible. It does not
// repeat Blur(LastRadius()): the radius last passed to Blur is the current one.
func (m *DrawerManager) BlurredBitmap() *image.RGBA {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	return m.blurLocked()
}

// OptionsChanged implements Listener. A new down-sampling rate rebuilds the
// original; any static-blur change drops the cached result.
func (m *DrawerManager) OptionsChanged(aspect Aspect) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	switch aspect {
	case AspectDownSamplingRate:
		m.releaseBuffers()
		if m.drawable != nil && m.mode.IsEnabled() {
			m.rasterizeLocked(false)
		}
	case AspectStaticBlur:
		m.releaseBlurred()
	}
	logging.Logger().Debug("blur options changed", "aspect", aspect.String())
}

// Close detaches from the options and releases both bitmaps. The manager
// is inert afterwards.
func (m *DrawerManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	m.opts.Detach(m)
	m.releaseBuffers()
	m.drawable = nil
}

func (m *DrawerManager) blurLocked() *image.RGBA {
	static := m.opts.StaticBlur()
	if static && m.blurred != nil && m.radius == m.blurredRadius {
		logging.Logger().Debug("blur cache hit", "mode", m.mode.String(), "radius", m.radius)
		return m.blurred
	}
	if m.original == nil && m.drawable != nil {
		m.rasterizeLocked(false)
	}
	src := m.original
	if src == nil {
		return m.blurred
	}
	if !m.mode.IsEnabled() || m.radius <= 0 {
		return src
	}

	out, err := m.run(m.mode, src)
	if err != nil && m.opts.SoftwareFallback() {
		if fb := m.mode.Fallback(); fb.IsEnabled() && fb != m.mode {
			logging.Logger().Warn("blur falling back",
				"mode", m.mode.String(), "fallback", fb.String(), "err", err)
			out, err = m.run(fb, src)
		}
	}
	if err != nil {
		if m.blurred != nil {
			return m.blurred
		}
		return src
	}

	m.releaseBlurred()
	m.blurred = out
	m.blurredRadius = m.radius
	if static {
		m.releaseOriginal()
	}
	return out
}

// run executes one algorithm and reports its failure.
func (m *DrawerManager) run(mode Mode, src *image.RGBA) (*image.RGBA, error) {
	out, err := m.registry.Run(mode, src, Request{
		Radius:     m.radius,
		NumThreads: m.opts.NumThreads(),
	})
	if err != nil {
		m.report("blur.DrawerManager.Blur", efxerrors.KindRender, mode, err)
		return nil, err
	}
	if out == src {
		out = bitmap.Clone(src, m.pool)
	}
	return out, nil
}

// rasterizeLocked rebuilds the original for the current drawable and size.
// With reuse set, a held original of the right size is kept.
func (m *DrawerManager) rasterizeLocked(reuse bool) {
	maxW, maxH := m.width, m.height
	if maxW <= 0 || maxH <= 0 {
		maxW, maxH = m.drawable.IntrinsicSize()
	}
	w, h, err := bitmap.TargetSize(m.drawable, maxW, maxH, m.opts.DownSamplingRate())
	if err != nil {
		m.releaseBuffers()
		if !errors.Is(err, bitmap.ErrEmptyBounds) {
			m.report("blur.DrawerManager.ChangeDrawable", efxerrors.KindResource, m.mode, err)
		}
		return
	}
	sized := func(img *image.RGBA) bool {
		return img != nil && img.Bounds().Dx() == w && img.Bounds().Dy() == h
	}
	if reuse && sized(m.original) {
		logging.Logger().Debug("blur original reused", "width", w, "height", h)
		return
	}
	if reuse && sized(m.blurred) {
		// A static result outlives its released original.
		m.releaseOriginal()
	} else {
		m.releaseBuffers()
	}
	buf, err := bitmap.Rasterize(m.drawable, w, h, m.pool)
	if err != nil {
		m.report("blur.DrawerManager.ChangeDrawable", efxerrors.KindDecode, m.mode, err)
		return
	}
	m.original = buf
}

func (m *DrawerManager) report(op string, kind efxerrors.ErrorKind, mode Mode, err error) {
	var perr *efxerrors.PanicError
	if errors.As(err, &perr) {
		// Already reported when it was recovered.
		logging.Logger().Warn("blur recovered panic", "op", op, "mode", mode.String(), "err", err)
		return
	}
	efxerrors.Report(&efxerrors.EffectError{
		Op:   op,
		Kind: kind,
		Mode: mode.String(),
		Err:  err,
	})
}

func (m *DrawerManager) releaseBuffers() {
	m.releaseBlurred()
	m.releaseOriginal()
}

func (m *DrawerManager) releaseBlurred() {
	if m.blurred != nil && m.blurred != m.original {
		m.pool.Put(m.blurred)
	}
	m.blurred = nil
}

func (m *DrawerManager) releaseOriginal() {
	if m.original != nil && m.original != m.blurred {
		m.pool.Put(m.original)
	}
	m.original = nil
}

// sameDrawable compares drawables by identity. Drawables whose dynamic
// type is not comparable are never the same.
func sameDrawable(a, b bitmap.Drawable) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a != nil && a == b
}
