package shape

import (
	"math"

	"github.com/go-drift/effectview/pkg/options"
	"github.com/go-drift/effectview/pkg/rendering"
)

// Aspect identifies which shape option changed.
type Aspect int

const (
	// AspectInnerPadding reports a SetInnerPadding call.
	AspectInnerPadding Aspect = iota
	// AspectBorderWidth reports a SetBorderWidth call.
	AspectBorderWidth
	// AspectRatio reports a SetRatio call.
	AspectRatio
	// AspectRadiusX reports a SetRadiusX call.
	AspectRadiusX
	// AspectRadiusY reports a SetRadiusY call.
	AspectRadiusY
	// AspectBorderColor reports a SetBorderColor call.
	AspectBorderColor
	// AspectSolidColor reports a SetSolidColor call.
	AspectSolidColor
	// AspectScaleType reports a SetScaleType call.
	AspectScaleType
)

var aspectNames = [...]string{
	AspectInnerPadding: "inner_padding",
	AspectBorderWidth:  "border_width",
	AspectRatio:        "ratio",
	AspectRadiusX:      "radius_x",
	AspectRadiusY:      "radius_y",
	AspectBorderColor:  "border_color",
	AspectSolidColor:   "solid_color",
	AspectScaleType:    "scale_type",
}

func (a Aspect) String() string {
	if int(a) < 0 || int(a) >= len(aspectNames) {
		return "unknown"
	}
	return aspectNames[a]
}

// Listener is notified when Options change.
type Listener = options.Listener[Aspect]

// Bounds are the nested rectangles derived for one view size and mode.
// Image ⊆ Shape ⊆ Border ⊆ View always holds.
type Bounds struct {
	View   rendering.Rect
	Border rendering.Rect
	Shape  rendering.Rect
	Image  rendering.Rect

	// ShapeRadius is half the smaller side of Shape.
	ShapeRadius float64
	// BorderRadius is half the smaller side of Border.
	BorderRadius float64
	// SolidRadius is how far the solid surround reaches beyond the border
	// outline. It over-approximates the distance to the view corners using
	// width+height instead of the diagonal. Zero outside the solid family.
	SolidRadius float64

	// ShapeRadii and BorderRadii are the corner radii of the two outlines.
	ShapeRadii  rendering.Radius
	BorderRadii rendering.Radius
}

// ShapeRRect returns the outline the image is clipped to.
func (b Bounds) ShapeRRect() rendering.RRect {
	return rendering.RRectFromRectAndRadius(b.Shape, b.ShapeRadii)
}

// BorderRRect returns the outer outline of the border.
func (b Bounds) BorderRRect() rendering.RRect {
	return rendering.RRectFromRectAndRadius(b.Border, b.BorderRadii)
}

// SolidOuter returns the circle the solid surround extends to.
func (b Bounds) SolidOuter() rendering.RRect {
	r := b.BorderRadius + b.SolidRadius
	return rendering.RRectOval(rendering.RectFromCenter(b.Border.Center(), 2*r, 2*r))
}

// Options holds the shape style inputs and the last computed bounds.
//
// Every setter notifies the listener exactly once, synchronously, even when
// the value does not change.
type Options struct {
	notifier options.Notifier[Aspect]

	innerPadding float32
	borderWidth  float32
	ratio        float32
	radiusX      float32
	radiusY      float32
	borderColor  rendering.Color
	solidColor   rendering.Color
	scaleType    ScaleType

	bounds Bounds
}

// NewOptions returns options with no padding or border, a 1:1 oval ratio,
// a black border color, a white solid color and centred images.
func NewOptions() *Options {
	return &Options{
		ratio:       1,
		borderColor: rendering.ColorBlack,
		solidColor:  rendering.ColorWhite,
		scaleType:   DefaultScaleType,
	}
}

// SetListener replaces the listener. Pass nil to detach.
func (o *Options) SetListener(l Listener) { o.notifier.SetListener(l) }

// Detach removes l if it is the current listener.
func (o *Options) Detach(l Listener) { o.notifier.Detach(l) }

func nonNegative(v float32) float32 {
	if v < 0 || math.IsNaN(float64(v)) {
		return 0
	}
	return v
}

// InnerPadding returns the inset applied to the view before shaping.
func (o *Options) InnerPadding() float32 { return o.innerPadding }

// SetInnerPadding sets the inset; negative values store 0.
func (o *Options) SetInnerPadding(p float32) {
	o.innerPadding = nonNegative(p)
	o.notifier.Notify(AspectInnerPadding)
}

// BorderWidth returns the border stroke width.
func (o *Options) BorderWidth() float32 { return o.borderWidth }

// SetBorderWidth sets the border width; negative values store 0.
func (o *Options) SetBorderWidth(w float32) {
	o.borderWidth = nonNegative(w)
	o.notifier.Notify(AspectBorderWidth)
}

// Ratio returns the width/height aspect used by oval modes.
func (o *Options) Ratio() float32 { return o.ratio }

// SetRatio sets the oval aspect; non-positive or NaN values store 1.
func (o *Options) SetRatio(r float32) {
	if r <= 0 || math.IsNaN(float64(r)) || math.IsInf(float64(r), 0) {
		r = 1
	}
	o.ratio = r
	o.notifier.Notify(AspectRatio)
}

// RadiusX returns the horizontal corner radius of rounded rectangles.
func (o *Options) RadiusX() float32 { return o.radiusX }

// SetRadiusX sets the horizontal corner radius; negative values store 0.
func (o *Options) SetRadiusX(r float32) {
	o.radiusX = nonNegative(r)
	o.notifier.Notify(AspectRadiusX)
}

// RadiusY returns the vertical corner radius of rounded rectangles.
func (o *Options) RadiusY() float32 { return o.radiusY }

// SetRadiusY sets the vertical corner radius; negative values store 0.
func (o *Options) SetRadiusY(r float32) {
	o.radiusY = nonNegative(r)
	o.notifier.Notify(AspectRadiusY)
}

// BorderColor returns the border color.
func (o *Options) BorderColor() rendering.Color { return o.borderColor }

// SetBorderColor sets the border color.
func (o *Options) SetBorderColor(c rendering.Color) {
	o.borderColor = c
	o.notifier.Notify(AspectBorderColor)
}

// SolidColor returns the color of the solid surround.
func (o *Options) SolidColor() rendering.Color { return o.solidColor }

// SetSolidColor sets the color of the solid surround.
func (o *Options) SetSolidColor(c rendering.Color) {
	o.solidColor = c
	o.notifier.Notify(AspectSolidColor)
}

// ScaleType returns how the image is placed in its bounds.
func (o *Options) ScaleType() ScaleType { return o.scaleType }

// SetScaleType sets the image placement; unknown values store the default.
func (o *Options) SetScaleType(s ScaleType) {
	o.scaleType = ScaleTypeFromValue(int(s))
	o.notifier.Notify(AspectScaleType)
}

// Bounds returns the bounds of the last CalculateBounds call.
func (o *Options) Bounds() Bounds { return o.bounds }

// CalculateBounds derives the bounds for a width×height view drawn in
// mode, stores them and returns them. A view with no area yields zero
// bounds.
func (o *Options) CalculateBounds(width, height int, mode Mode) Bounds {
	o.bounds = o.computeBounds(width, height, FromValue(int(mode)))
	return o.bounds
}

func (o *Options) computeBounds(width, height int, mode Mode) Bounds {
	var b Bounds
	if width <= 0 || height <= 0 {
		return b
	}
	bw := float64(o.borderWidth)
	b.View = rendering.RectFromLTWH(0, 0, float64(width), float64(height))
	inner := b.View.Deflate(float64(o.innerPadding))

	info := mode.info()
	switch info.outline {
	case outlineRect:
		b.Border = inner
		if mode == Normal {
			b.Shape = inner
		} else {
			b.Shape = inner.Deflate(bw)
		}
		b.Image = b.Shape
		return b
	case outlineCircle:
		side := inner.MinSide()
		b.Border = rendering.RectFromCenter(inner.Center(), side, side)
	case outlineOval:
		b.Border = fitRatio(inner, float64(o.ratio))
	default:
		b.Border = inner
	}
	b.Shape = b.Border.Deflate(bw)
	b.Image = b.Shape
	b.ShapeRadius = b.Shape.MinSide() / 2
	b.BorderRadius = b.Border.MinSide() / 2

	switch info.outline {
	case outlineRoundRect:
		b.ShapeRadii = rendering.Radius{
			X: math.Min(float64(o.radiusX), b.Shape.Width()/2),
			Y: math.Min(float64(o.radiusY), b.Shape.Height()/2),
		}
		insetX := (b.Border.Width() - b.Shape.Width()) / 2
		insetY := (b.Border.Height() - b.Shape.Height()) / 2
		b.BorderRadii = rendering.Radius{
			X: math.Min(b.ShapeRadii.X+insetX, b.Border.Width()/2),
			Y: math.Min(b.ShapeRadii.Y+insetY, b.Border.Height()/2),
		}
	case outlineCircle:
		b.ShapeRadii = rendering.CircularRadius(b.ShapeRadius)
		b.BorderRadii = rendering.CircularRadius(b.BorderRadius)
	case outlineOval:
		b.ShapeRadii = rendering.Radius{X: b.Shape.Width() / 2, Y: b.Shape.Height() / 2}
		b.BorderRadii = rendering.Radius{X: b.Border.Width() / 2, Y: b.Border.Height() / 2}
	}

	if info.family == FamilySolid {
		b.SolidRadius = math.Max(0, (float64(width)+float64(height)-bw)/2)
	}
	return b
}

// fitRatio returns the largest rect of aspect ratio (width/height) centred
// in r.
func fitRatio(r rendering.Rect, ratio float64) rendering.Rect {
	w, h := r.Width(), r.Height()
	if w <= 0 || h <= 0 {
		return rendering.RectFromCenter(r.Center(), 0, 0)
	}
	if w/h > ratio {
		w = h * ratio
	} else {
		h = w / ratio
	}
	return rendering.RectFromCenter(r.Center(), w, h)
}
