package rendering

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// RasterCanvas is a software Canvas that renders into an *image.RGBA.
//
// Shapes are rasterised into coverage masks with golang.org/x/image/vector
// and composited source-over. Clips are kept as coverage masks and combined
// multiplicatively, so rounded clips are anti-aliased. Canvas coordinates
// are relative to the destination's bounds origin.
type RasterCanvas struct {
	dst   *image.RGBA
	clip  *image.Alpha
	stack []*image.Alpha
}

// NewRasterCanvas returns a canvas drawing into dst.
func NewRasterCanvas(dst *image.RGBA) *RasterCanvas {
	return &RasterCanvas{dst: dst}
}

// Image returns the destination image.
func (c *RasterCanvas) Image() *image.RGBA {
	return c.dst
}

func (c *RasterCanvas) Save() {
	c.stack = append(c.stack, c.clip)
}

func (c *RasterCanvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.clip = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *RasterCanvas) ClipRect(rect Rect) {
	p := NewPath()
	p.AddRect(rect, true)
	c.clipPath(p)
}

func (c *RasterCanvas) ClipRRect(rrect RRect) {
	p := NewPath()
	p.AddRRect(rrect, true)
	c.clipPath(p)
}

func (c *RasterCanvas) Clear(color Color) {
	xdraw.Draw(c.dst, c.dst.Bounds(), imageUniform(color, 1), image.Point{}, xdraw.Src)
}

func (c *RasterCanvas) DrawRect(rect Rect, paint Paint) {
	c.DrawRRect(RRectFromRectAndRadius(rect, Radius{}), paint)
}

func (c *RasterCanvas) DrawRRect(rrect RRect, paint Paint) {
	if paint.Style == PaintStyleStroke {
		half := paint.StrokeWidth / 2
		if half <= 0 {
			return
		}
		c.DrawDRRect(inflateRRect(rrect, half), rrect.Deflate(half), paint)
		return
	}
	p := NewPath()
	p.AddRRect(rrect, true)
	c.fill(p, paint)
}

func (c *RasterCanvas) DrawDRRect(outer, inner RRect, paint Paint) {
	p := NewPath()
	p.AddRRect(outer, true)
	p.AddRRect(inner, false)
	c.fill(p, paint)
}

func (c *RasterCanvas) DrawCircle(center Offset, radius float64, paint Paint) {
	if radius <= 0 {
		return
	}
	circle := RRectOval(RectFromCenter(center, radius*2, radius*2))
	c.DrawRRect(circle, paint)
}

func (c *RasterCanvas) DrawArc(oval Rect, startAngle, sweepAngle float64, paint Paint) {
	p := NewPath()
	p.AddArcBand(oval, startAngle, sweepAngle, paint.StrokeWidth)
	c.fill(p, paint)
}

func (c *RasterCanvas) DrawImageRect(img image.Image, srcRect, dstRect Rect, quality FilterQuality) {
	if img == nil || dstRect.IsEmpty() {
		return
	}
	sb := img.Bounds()
	sr := sb
	if srcRect != (Rect{}) {
		sr = roundRect(srcRect).Add(sb.Min).Intersect(sb)
	}
	dr := roundRect(dstRect).Add(c.dst.Rect.Min)
	if sr.Empty() || dr.Empty() {
		return
	}
	var opts *xdraw.Options
	if c.clip != nil {
		opts = &xdraw.Options{DstMask: c.clip}
	}
	interpolator(quality).Scale(c.dst, dr, img, sr, xdraw.Over, opts)
}

func (c *RasterCanvas) Size() Size {
	b := c.dst.Bounds()
	return Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

func (c *RasterCanvas) clipPath(p *Path) {
	m := c.coverage(p)
	if c.clip != nil {
		multiplyMask(m, c.clip)
	}
	c.clip = m
}

func (c *RasterCanvas) fill(p *Path, paint Paint) {
	a := paint.effectiveAlpha()
	if a <= 0 || p.IsEmpty() {
		return
	}
	m := c.coverage(p)
	if c.clip != nil {
		multiplyMask(m, c.clip)
	}
	xdraw.DrawMask(c.dst, c.dst.Bounds(), imageUniform(paint.Color, a), image.Point{}, m, m.Rect.Min, xdraw.Over)
}

// coverage rasterises p into an alpha mask aligned with the destination.
func (c *RasterCanvas) coverage(p *Path) *image.Alpha {
	b := c.dst.Bounds()
	mask := image.NewAlpha(b)
	if b.Empty() {
		return mask
	}
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = xdraw.Src
	open := false
	for _, cmd := range p.Commands {
		a := cmd.Args
		switch cmd.Op {
		case PathOpMoveTo:
			z.MoveTo(float32(a[0]), float32(a[1]))
			open = true
		case PathOpLineTo:
			if open {
				z.LineTo(float32(a[0]), float32(a[1]))
			}
		case PathOpCubicTo:
			if open {
				z.CubeTo(float32(a[0]), float32(a[1]), float32(a[2]), float32(a[3]), float32(a[4]), float32(a[5]))
			}
		case PathOpClose:
			if open {
				z.ClosePath()
			}
		}
	}
	z.Draw(mask, b, image.Opaque, image.Point{})
	return mask
}

// multiplyMask scales every coverage value of dst by the matching value of m.
func multiplyMask(dst, m *image.Alpha) {
	for i := range dst.Pix {
		dst.Pix[i] = uint8((uint32(dst.Pix[i])*uint32(m.Pix[i]) + 127) / 255)
	}
}

func imageUniform(c Color, alpha float64) *image.Uniform {
	nc := c.NRGBA()
	if alpha < 1 {
		nc.A = uint8(math.Round(alpha * 255))
	}
	return image.NewUniform(nc)
}

func inflateRRect(rr RRect, d float64) RRect {
	grow := func(r Radius) Radius {
		if r.X == 0 && r.Y == 0 {
			return r
		}
		return Radius{X: r.X + d, Y: r.Y + d}
	}
	return RRect{
		Rect: Rect{
			Left:   rr.Rect.Left - d,
			Top:    rr.Rect.Top - d,
			Right:  rr.Rect.Right + d,
			Bottom: rr.Rect.Bottom + d,
		},
		TopLeft:     grow(rr.TopLeft),
		TopRight:    grow(rr.TopRight),
		BottomRight: grow(rr.BottomRight),
		BottomLeft:  grow(rr.BottomLeft),
	}
}

func roundRect(r Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(r.Left)),
		int(math.Round(r.Top)),
		int(math.Round(r.Right)),
		int(math.Round(r.Bottom)),
	)
}

func interpolator(q FilterQuality) xdraw.Interpolator {
	switch q {
	case FilterQualityNone:
		return xdraw.NearestNeighbor
	case FilterQualityLow:
		return xdraw.ApproxBiLinear
	case FilterQualityMedium:
		return xdraw.BiLinear
	default:
		return xdraw.CatmullRom
	}
}
