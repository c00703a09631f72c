// Package imageview coordinates the three effects a host view carries: the
// shape mask, the blur and the progress overlay. A host drives a View with
// its size and drawable and asks it to draw each frame onto a canvas.
package imageview

import (
	"errors"
	"image"
	"sync"

	xdraw "golang.org/x/image/draw"

	"github.com/go-drift/effectview/pkg/bitmap"
	"github.com/go-drift/effectview/pkg/blur"
	efxerrors "github.com/go-drift/effectview/pkg/errors"
	"github.com/go-drift/effectview/pkg/logging"
	"github.com/go-drift/effectview/pkg/progress"
	"github.com/go-drift/effectview/pkg/rendering"
	"github.com/go-drift/effectview/pkg/shape"
	"github.com/go-drift/effectview/pkg/state"
)

// View owns one manager per effect and the bitmaps needed to draw a frame.
//
// Bitmaps returned by Source belong to the View and stay valid until the
// next call that changes the size, drawable or blur.
type View struct {
	mu sync.Mutex

	pool     *bitmap.Pool
	shape    *shape.DrawerManager
	blur     *blur.DrawerManager
	progress *progress.DrawerManager

	drawable bitmap.Drawable
	plain    *image.RGBA // drawable rasterised for unblurred frames
	scaled   *image.RGBA // blurred bitmap resampled to the fitted size
	width    int
	height   int
	closed   bool
}

type config struct {
	shapeOpts    *shape.Options
	shapeMode    shape.Mode
	blurOpts     *blur.Options
	blurMode     blur.Mode
	blurRadius   int
	progressOpts *progress.Options
	progressMode progress.Mode
	registry     *blur.Registry
	pool         *bitmap.Pool
}

// Option configures a View at construction.
type Option func(*config)

// WithShape sets the shape options and initial mode.
func WithShape(o *shape.Options, mode shape.Mode) Option {
	return func(c *config) { c.shapeOpts, c.shapeMode = o, mode }
}

// WithBlur sets the blur options, initial mode and radius.
func WithBlur(o *blur.Options, mode blur.Mode, radius int) Option {
	return func(c *config) { c.blurOpts, c.blurMode, c.blurRadius = o, mode, radius }
}

// WithProgress sets the progress options and initial mode.
func WithProgress(o *progress.Options, mode progress.Mode) Option {
	return func(c *config) { c.progressOpts, c.progressMode = o, mode }
}

// WithRegistry sets the blur algorithm registry.
func WithRegistry(r *blur.Registry) Option {
	return func(c *config) { c.registry = r }
}

// WithPool sets the buffer pool shared by the View and its blur manager.
func WithPool(p *bitmap.Pool) Option {
	return func(c *config) { c.pool = p }
}

// New returns a View with every effect in its default mode unless options
// say otherwise.
func New(opts ...Option) *View {
	cfg := config{
		shapeMode:    shape.DefaultMode,
		blurMode:     blur.DefaultMode,
		progressMode: progress.DefaultMode,
	}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.pool == nil {
		cfg.pool = bitmap.DefaultPool()
	}
	blurOpts := []blur.ManagerOption{blur.WithPool(cfg.pool)}
	if cfg.registry != nil {
		blurOpts = append(blurOpts, blur.WithRegistry(cfg.registry))
	}
	return &View{
		pool:     cfg.pool,
		shape:    shape.NewDrawerManager(cfg.shapeOpts, cfg.shapeMode),
		blur:     blur.NewDrawerManager(cfg.blurOpts, cfg.blurMode, cfg.blurRadius, blurOpts...),
		progress: progress.NewDrawerManager(cfg.progressOpts, cfg.progressMode),
	}
}

// Shape returns the shape manager.
func (v *View) Shape() *shape.DrawerManager { return v.shape }

// Blur returns the blur manager.
func (v *View) Blur() *blur.DrawerManager { return v.blur }

// Progress returns the progress manager.
func (v *View) Progress() *progress.DrawerManager { return v.progress }

// Size returns the view size.
func (v *View) Size() (int, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width, v.height
}

// SetSize propagates a new view size to every effect.
func (v *View) SetSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.width, v.height = max(0, width), max(0, height)
	v.releasePlain()
	v.releaseScaled()
	v.shape.SetSize(v.width, v.height)
	v.blur.SetSize(v.width, v.height)
}

// SetDrawable replaces the content. Nil clears it.
func (v *View) SetDrawable(d bitmap.Drawable) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.drawable = d
	v.releasePlain()
	v.releaseScaled()
	v.blur.ChangeDrawable(d)
}

// SetShapeMode switches the shape mask.
func (v *View) SetShapeMode(mode shape.Mode) {
	v.shape.SetMode(mode)
}

// ChangeBlurMode switches the blur mode and radius.
func (v *View) ChangeBlurMode(mode blur.Mode, radius int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.releaseScaled()
	v.blur.ChangeMode(mode, radius)
}

// SetBlurRadius blurs the content with radius right away, so the next
// frame does not pay for it.
func (v *View) SetBlurRadius(radius int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.releaseScaled()
	v.blur.Blur(radius)
}

// SetProgressMode switches the progress overlay.
func (v *View) SetProgressMode(mode progress.Mode) {
	v.progress.SetMode(mode)
}

// SetProgress sets the progress value.
func (v *View) SetProgress(value float32) {
	v.progress.SetProgress(value)
}

// Source returns the image the next frame draws through the shape mask:
// the blurred bitmap while blur applies, else the drawable's own image or
// a rasterisation of it. It is nil without a drawable.
func (v *View) Source() image.Image {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil
	}
	return v.sourceLocked()
}

// Draw renders one frame: the shaped content, then the progress overlay.
func (v *View) Draw(c rendering.Canvas) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || c == nil {
		return
	}
	v.shape.Draw(c, v.sourceLocked())
	v.progress.Draw(c, rendering.RectFromLTWH(0, 0, float64(v.width), float64(v.height)))
}

func (v *View) sourceLocked() image.Image {
	d := v.drawable
	if d == nil {
		return nil
	}
	if v.blur.ShouldBlur() {
		if img := v.blur.BlurredBitmap(); img != nil {
			return v.fitted(img)
		}
	}
	if id, ok := d.(*bitmap.ImageDrawable); ok && id.Image() != nil {
		return id.Image()
	}
	return v.rasterized()
}

// fitted resamples a down-sampled bitmap back to the size the drawable
// occupies in the view, so scale types place blurred and plain frames
// alike.
func (v *View) fitted(img *image.RGBA) image.Image {
	w, h, err := bitmap.TargetSize(v.drawable, v.width, v.height, 1)
	if err != nil {
		return img
	}
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	if v.scaled == nil || v.scaled.Rect.Dx() != w || v.scaled.Rect.Dy() != h {
		v.releaseScaled()
		v.scaled = v.pool.Get(w, h)
	}
	xdraw.ApproxBiLinear.Scale(v.scaled, v.scaled.Rect, img, b, xdraw.Src, nil)
	logging.Logger().Debug("blurred bitmap resampled", "from", b.Size(), "to", v.scaled.Rect.Size())
	return v.scaled
}

func (v *View) rasterized() image.Image {
	if v.plain != nil {
		return v.plain
	}
	w, h := v.drawable.IntrinsicSize()
	if w <= 0 || h <= 0 {
		w, h = v.width, v.height
	}
	img, err := bitmap.Rasterize(v.drawable, w, h, v.pool)
	if err != nil {
		if !errors.Is(err, bitmap.ErrEmptyBounds) {
			efxerrors.Report(&efxerrors.EffectError{
				Op:   "imageview.View.Draw",
				Kind: efxerrors.KindDecode,
				Err:  err,
			})
		}
		return nil
	}
	v.plain = img
	return img
}

func (v *View) releasePlain() {
	v.pool.Put(v.plain)
	v.plain = nil
}

func (v *View) releaseScaled() {
	v.pool.Put(v.scaled)
	v.scaled = nil
}

// SaveState writes every effect's mode and options into b.
func (v *View) SaveState(b *state.Bundle) {
	v.shape.SaveState(b)
	v.blur.SaveState(b)
	v.progress.SaveState(b)
}

// RestoreState applies state saved by SaveState.
func (v *View) RestoreState(b *state.Bundle) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.releaseScaled()
	v.shape.RestoreState(b)
	v.blur.RestoreState(b)
	v.progress.RestoreState(b)
}

// Close tears down every manager and returns the View's buffers to the
// pool.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.closed = true
	v.releasePlain()
	v.releaseScaled()
	v.shape.Close()
	v.blur.Close()
	v.progress.Close()
}
