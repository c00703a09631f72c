package shape

import (
	"fmt"
	"math"

	"github.com/go-drift/effectview/pkg/rendering"
)

// ScaleType controls how the source image is placed inside the image
// bounds.
type ScaleType int

const (
	// Matrix draws the image unscaled at the top-left corner.
	Matrix ScaleType = iota
	// FitXY stretches the image to fill the bounds.
	FitXY
	// FitStart scales to fit and aligns to the top-left.
	FitStart
	// FitCenter scales to fit and centres.
	FitCenter
	// FitEnd scales to fit and aligns to the bottom-right.
	FitEnd
	// Center centres the image without scaling.
	Center
	// CenterCrop scales to cover the bounds and centres.
	CenterCrop
	// CenterInside centres, scaling down only when the image is larger.
	CenterInside
)

// DefaultScaleType is what out-of-range values resolve to.
const DefaultScaleType = Center

var scaleTypeNames = [...]string{
	Matrix:       "matrix",
	FitXY:        "fit_xy",
	FitStart:     "fit_start",
	FitCenter:    "fit_center",
	FitEnd:       "fit_end",
	Center:       "center",
	CenterCrop:   "center_crop",
	CenterInside: "center_inside",
}

// ScaleTypes returns every scale type in value order.
func ScaleTypes() []ScaleType {
	types := make([]ScaleType, len(scaleTypeNames))
	for i := range scaleTypeNames {
		types[i] = ScaleType(i)
	}
	return types
}

// ScaleTypeFromValue maps any integer to a scale type; unknown values yield
// DefaultScaleType.
func ScaleTypeFromValue(v int) ScaleType {
	if v < 0 || v >= len(scaleTypeNames) {
		return DefaultScaleType
	}
	return ScaleType(v)
}

// ParseScaleType maps a name to a scale type. Unknown names yield
// DefaultScaleType.
func ParseScaleType(name string) ScaleType {
	n := normalizeName(name)
	for i, s := range scaleTypeNames {
		if s == n {
			return ScaleType(i)
		}
	}
	return DefaultScaleType
}

// Value returns the persisted integer value.
func (s ScaleType) Value() int { return int(ScaleTypeFromValue(int(s))) }

func (s ScaleType) String() string {
	if int(s) < 0 || int(s) >= len(scaleTypeNames) {
		return fmt.Sprintf("ScaleType(%d)", int(s))
	}
	return scaleTypeNames[s]
}

// Placement maps a src-sized image into dst. It returns the part of the
// image that is visible (in image coordinates starting at 0,0) and where
// that part lands; the destination never extends beyond dst. Empty inputs
// yield zero rectangles.
func (s ScaleType) Placement(src rendering.Size, dst rendering.Rect) (srcRect, dstRect rendering.Rect) {
	sw, sh := src.Width, src.Height
	dw, dh := dst.Width(), dst.Height()
	if sw <= 0 || sh <= 0 || dw <= 0 || dh <= 0 {
		return rendering.Rect{}, rendering.Rect{}
	}

	fit := math.Min(dw/sw, dh/sh)
	var placed rendering.Rect
	switch ScaleTypeFromValue(int(s)) {
	case Matrix:
		placed = rendering.RectFromLTWH(dst.Left, dst.Top, sw, sh)
	case FitXY:
		placed = dst
	case FitStart:
		placed = rendering.RectFromLTWH(dst.Left, dst.Top, sw*fit, sh*fit)
	case FitCenter:
		placed = rendering.RectFromCenter(dst.Center(), sw*fit, sh*fit)
	case FitEnd:
		placed = rendering.RectFromLTWH(dst.Right-sw*fit, dst.Bottom-sh*fit, sw*fit, sh*fit)
	case Center:
		placed = rendering.RectFromCenter(dst.Center(), sw, sh)
	case CenterCrop:
		cover := math.Max(dw/sw, dh/sh)
		placed = rendering.RectFromCenter(dst.Center(), sw*cover, sh*cover)
	case CenterInside:
		scale := math.Min(1, fit)
		placed = rendering.RectFromCenter(dst.Center(), sw*scale, sh*scale)
	}

	visible := placed.Intersect(dst)
	if visible.IsEmpty() {
		return rendering.Rect{}, rendering.Rect{}
	}
	kx := sw / placed.Width()
	ky := sh / placed.Height()
	srcRect = rendering.Rect{
		Left:   (visible.Left - placed.Left) * kx,
		Top:    (visible.Top - placed.Top) * ky,
		Right:  (visible.Right - placed.Left) * kx,
		Bottom: (visible.Bottom - placed.Top) * ky,
	}
	return srcRect, visible
}
