package shape

import (
	"image"

	"github.com/go-drift/effectview/pkg/rendering"
)

// Drawer renders an image masked by one family of shapes.
type Drawer interface {
	Draw(c rendering.Canvas, src image.Image, b Bounds, o *Options)
}

// NewDrawer returns the drawer for mode's family.
func NewDrawer(mode Mode) Drawer {
	mode = FromValue(int(mode))
	switch mode.Family() {
	case FamilyRounded:
		return roundedDrawer{}
	case FamilySolid:
		return solidDrawer{}
	default:
		return rectangularDrawer{bordered: mode == Rectangle}
	}
}

// drawImage places src inside dst according to the scale type.
func drawImage(c rendering.Canvas, src image.Image, dst rendering.Rect, st ScaleType) {
	if src == nil {
		return
	}
	sb := src.Bounds()
	size := rendering.Size{Width: float64(sb.Dx()), Height: float64(sb.Dy())}
	sr, dr := st.Placement(size, dst)
	if dr.IsEmpty() {
		return
	}
	sr = sr.Translate(float64(sb.Min.X), float64(sb.Min.Y))
	c.DrawImageRect(src, sr, dr, rendering.FilterQualityMedium)
}

// strokeBorder strokes the band between outer and an outline inset by
// width. The stroke is centred on the outline, so it is drawn half a width
// inside outer.
func strokeBorder(c rendering.Canvas, outer rendering.RRect, width float64, color rendering.Color) {
	if width <= 0 || outer.Rect.IsEmpty() {
		return
	}
	c.DrawRRect(outer.Deflate(width/2), rendering.StrokePaint(color, width))
}

// rectangularDrawer clips to the image rect and, for Rectangle, frames it.
type rectangularDrawer struct {
	bordered bool
}

func (d rectangularDrawer) Draw(c rendering.Canvas, src image.Image, b Bounds, o *Options) {
	if b.View.IsEmpty() {
		return
	}
	if !b.Image.IsEmpty() {
		c.Save()
		c.ClipRect(b.Image)
		drawImage(c, src, b.Image, o.ScaleType())
		c.Restore()
	}
	if d.bordered {
		strokeBorder(c, b.BorderRRect(), float64(o.BorderWidth()), o.BorderColor())
	}
}

// roundedDrawer clips to the shape outline and strokes the border outline.
type roundedDrawer struct{}

func (roundedDrawer) Draw(c rendering.Canvas, src image.Image, b Bounds, o *Options) {
	if b.View.IsEmpty() {
		return
	}
	if !b.Image.IsEmpty() {
		c.Save()
		c.ClipRRect(b.ShapeRRect())
		drawImage(c, src, b.Image, o.ScaleType())
		c.Restore()
	}
	strokeBorder(c, b.BorderRRect(), float64(o.BorderWidth()), o.BorderColor())
}

// solidDrawer draws the image inside the border rect and covers everything
// outside the border outline with the solid color.
type solidDrawer struct{}

func (solidDrawer) Draw(c rendering.Canvas, src image.Image, b Bounds, o *Options) {
	if b.View.IsEmpty() {
		return
	}
	if !b.Image.IsEmpty() {
		c.Save()
		c.ClipRect(b.Border)
		drawImage(c, src, b.Image, o.ScaleType())
		c.Restore()
	}
	c.DrawDRRect(b.SolidOuter(), b.BorderRRect(), rendering.FillPaint(o.SolidColor()))
	strokeBorder(c, b.BorderRRect(), float64(o.BorderWidth()), o.BorderColor())
}
