package rendering

import "image"

// FilterQuality controls image sampling quality during scaling.
type FilterQuality int

const (
	FilterQualityNone   FilterQuality = iota // Nearest neighbor (pixelated)
	FilterQualityLow                         // Approximate bilinear
	FilterQualityMedium                      // Bilinear
	FilterQualityHigh                        // Catmull-Rom
)

// Canvas records or renders drawing commands.
type Canvas interface {
	// Save pushes the current clip state.
	Save()

	// Restore pops the most recent clip state.
	Restore()

	// ClipRect restricts future drawing to the given rectangle.
	ClipRect(rect Rect)

	// ClipRRect restricts future drawing to the given rounded rectangle.
	ClipRRect(rrect RRect)

	// Clear fills the entire canvas with the given color, ignoring the clip.
	Clear(color Color)

	// DrawRect draws a rectangle with the provided paint.
	DrawRect(rect Rect, paint Paint)

	// DrawRRect draws a rounded rectangle with the provided paint.
	DrawRRect(rrect RRect, paint Paint)

	// DrawDRRect fills the area inside outer and outside inner.
	// The paint style is ignored.
	DrawDRRect(outer, inner RRect, paint Paint)

	// DrawCircle draws a circle with the provided paint.
	DrawCircle(center Offset, radius float64, paint Paint)

	// DrawArc strokes the arc of the ellipse inscribed in oval, starting at
	// startAngle degrees (0 = 3 o'clock, clockwise) and sweeping sweepAngle
	// degrees. The paint style is treated as stroke.
	DrawArc(oval Rect, startAngle, sweepAngle float64, paint Paint)

	// DrawImageRect draws an image from srcRect to dstRect with sampling quality.
	// srcRect selects the source region (zero rect = entire image).
	DrawImageRect(img image.Image, srcRect, dstRect Rect, quality FilterQuality)

	// Size returns the size of the canvas in pixels.
	Size() Size
}
