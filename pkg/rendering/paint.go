package rendering

import "fmt"

// PaintStyle describes how shapes are filled or stroked.
type PaintStyle int

const (
	// PaintStyleFill fills the shape interior.
	PaintStyleFill PaintStyle = iota

	// PaintStyleStroke draws only the outline.
	PaintStyleStroke
)

// String returns a human-readable representation of the paint style.
func (s PaintStyle) String() string {
	switch s {
	case PaintStyleFill:
		return "fill"
	case PaintStyleStroke:
		return "stroke"
	default:
		return fmt.Sprintf("PaintStyle(%d)", int(s))
	}
}

// Paint describes how to draw a shape on the canvas.
//
// A zero-value Paint is a transparent fill and draws nothing visible.
// Use DefaultPaint for a basic opaque white fill.
type Paint struct {
	Color       Color
	Style       PaintStyle // Fill or stroke
	StrokeWidth float64    // Width of stroke in pixels, centred on the outline

	// Alpha is the overall opacity 0.0-1.0; negative defaults to 1.0.
	Alpha float64
}

// DefaultPaint returns a basic opaque white fill paint.
func DefaultPaint() Paint {
	return Paint{
		Color:       ColorWhite,
		Style:       PaintStyleFill,
		StrokeWidth: 1,
		Alpha:       1.0,
	}
}

// FillPaint returns an opaque fill with the given color.
func FillPaint(c Color) Paint {
	p := DefaultPaint()
	p.Color = c
	return p
}

// StrokePaint returns a stroke of the given color and width.
func StrokePaint(c Color, width float64) Paint {
	p := DefaultPaint()
	p.Color = c
	p.Style = PaintStyleStroke
	p.StrokeWidth = width
	return p
}

// effectiveAlpha resolves the Alpha field together with the color alpha.
func (p Paint) effectiveAlpha() float64 {
	a := p.Alpha
	if a < 0 || a > 1 {
		a = 1
	}
	_, _, _, ca := p.Color.RGBAF()
	return a * ca
}
