package bitmap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"

	efxerrors "github.com/go-drift/effectview/pkg/errors"
)

var (
	// ErrNoDrawable is returned when there is nothing to rasterise.
	ErrNoDrawable = errors.New("bitmap: no drawable")
	// ErrEmptyBounds is returned when the bounding box has no area.
	ErrEmptyBounds = errors.New("bitmap: empty bounds")
)

// Drawable is anything that can render itself into a rectangle of an image.
// Hosts hand drawables to the effect managers, which compare them by
// identity, so implementations are normally pointer types.
type Drawable interface {
	// IntrinsicSize returns the natural pixel size. Non-positive values mean
	// the drawable has no natural size and fills whatever box it is given.
	IntrinsicSize() (width, height int)

	// Draw renders the drawable scaled into r of dst.
	Draw(dst xdraw.Image, r image.Rectangle) error
}

// ImageDrawable draws a decoded image.
type ImageDrawable struct {
	img    image.Image
	scaler xdraw.Scaler
}

// NewImageDrawable wraps img. Down-scaling uses approximate bilinear
// filtering, which is what the blur pipeline wants for its input.
func NewImageDrawable(img image.Image) *ImageDrawable {
	return &ImageDrawable{img: img, scaler: xdraw.ApproxBiLinear}
}

// Image returns the wrapped image.
func (d *ImageDrawable) Image() image.Image {
	return d.img
}

// IntrinsicSize returns the image bounds size.
func (d *ImageDrawable) IntrinsicSize() (int, int) {
	if d.img == nil {
		return 0, 0
	}
	b := d.img.Bounds()
	return b.Dx(), b.Dy()
}

// Draw scales the image into r.
func (d *ImageDrawable) Draw(dst xdraw.Image, r image.Rectangle) error {
	if d.img == nil {
		return ErrNoDrawable
	}
	sb := d.img.Bounds()
	if sb.Empty() {
		return fmt.Errorf("image drawable: %w", ErrEmptyBounds)
	}
	if sb.Size() == r.Size() {
		xdraw.Draw(dst, r, d.img, sb.Min, xdraw.Src)
		return nil
	}
	d.scaler.Scale(dst, r, d.img, sb, xdraw.Src, nil)
	return nil
}

// ColorDrawable fills its box with a single color.
type ColorDrawable struct {
	Color color.Color
	// Width and Height are the optional intrinsic size.
	Width, Height int
}

// IntrinsicSize returns the configured size.
func (d *ColorDrawable) IntrinsicSize() (int, int) {
	return d.Width, d.Height
}

// Draw fills r with the color.
func (d *ColorDrawable) Draw(dst xdraw.Image, r image.Rectangle) error {
	c := d.Color
	if c == nil {
		c = color.Transparent
	}
	xdraw.Draw(dst, r, image.NewUniform(c), image.Point{}, xdraw.Src)
	return nil
}

// TargetSize computes the bitmap size for d inside a maxW×maxH box after
// dividing by rate. The drawable is scaled down to fit the box preserving
// its aspect ratio, never up. rate values below 1 are treated as 1. The
// result is at least 1×1.
func TargetSize(d Drawable, maxW, maxH int, rate float32) (int, int, error) {
	if d == nil {
		return 0, 0, ErrNoDrawable
	}
	if maxW <= 0 || maxH <= 0 {
		return 0, 0, ErrEmptyBounds
	}
	iw, ih := d.IntrinsicSize()
	if iw <= 0 || ih <= 0 {
		iw, ih = maxW, maxH
	}
	scale := math.Min(1, math.Min(float64(maxW)/float64(iw), float64(maxH)/float64(ih)))
	if r := float64(rate); r > 1 && !math.IsInf(r, 0) {
		scale /= r
	}
	w := max(1, int(math.Round(float64(iw)*scale)))
	h := max(1, int(math.Round(float64(ih)*scale)))
	return w, h, nil
}

// Rasterize renders d into a width×height buffer taken from pool. Failures,
// including panics raised by the drawable, are returned as errors and the
// buffer goes back to the pool.
func Rasterize(d Drawable, width, height int, pool *Pool) (*image.RGBA, error) {
	if d == nil {
		return nil, ErrNoDrawable
	}
	if pool == nil {
		pool = defaultPool
	}
	buf := pool.Get(width, height)
	if buf == nil {
		return nil, ErrEmptyBounds
	}
	err := efxerrors.Guard("bitmap.Rasterize", func() error {
		return d.Draw(buf, buf.Bounds())
	})
	if err != nil {
		pool.Put(buf)
		return nil, err
	}
	return buf, nil
}

// Clone copies src into a fresh buffer from pool.
func Clone(src *image.RGBA, pool *Pool) *image.RGBA {
	if src == nil {
		return nil
	}
	if pool == nil {
		pool = defaultPool
	}
	b := src.Bounds()
	dst := pool.Get(b.Dx(), b.Dy())
	if dst == nil {
		return nil
	}
	xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Src)
	return dst
}
