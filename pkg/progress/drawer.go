package progress

import (
	"github.com/go-drift/effectview/pkg/rendering"
)

// Drawer renders the indicator for a fraction in [0, 1] inside view.
type Drawer interface {
	Draw(c rendering.Canvas, view rendering.Rect, fraction float64, o *Options)
}

// NewDrawer returns the drawer for mode, or nil when mode draws nothing.
func NewDrawer(mode Mode) Drawer {
	switch FromValue(int(mode)) {
	case Circular:
		return circularDrawer{}
	case Horizontal:
		return horizontalDrawer{}
	case Vertical:
		return verticalDrawer{}
	default:
		return nil
	}
}

type circularDrawer struct{}

func (circularDrawer) Draw(c rendering.Canvas, view rendering.Rect, fraction float64, o *Options) {
	t := float64(o.Thickness())
	area := view.Deflate(float64(o.Padding()))
	side := area.MinSide()
	if t <= 0 || side <= t {
		return
	}
	oval := rendering.RectFromCenter(area.Center(), side, side).Deflate(t / 2)
	c.DrawCircle(oval.Center(), oval.Width()/2, rendering.StrokePaint(o.TrackColor(), t))
	if fraction > 0 {
		c.DrawArc(oval, float64(o.StartAngle()), 360*fraction, rendering.StrokePaint(o.Color(), t))
	}
}

// horizontalDrawer fills left to right along the bottom edge.
type horizontalDrawer struct{}

func (horizontalDrawer) Draw(c rendering.Canvas, view rendering.Rect, fraction float64, o *Options) {
	area := view.Deflate(float64(o.Padding()))
	t := min(float64(o.Thickness()), area.Height())
	if t <= 0 || area.Width() <= 0 {
		return
	}
	top := area.Bottom - t
	c.DrawRect(rendering.RectFromLTWH(area.Left, top, area.Width(), t), rendering.FillPaint(o.TrackColor()))
	if fraction > 0 {
		c.DrawRect(rendering.RectFromLTWH(area.Left, top, area.Width()*fraction, t), rendering.FillPaint(o.Color()))
	}
}

// verticalDrawer fills bottom to top along the left edge.
type verticalDrawer struct{}

func (verticalDrawer) Draw(c rendering.Canvas, view rendering.Rect, fraction float64, o *Options) {
	area := view.Deflate(float64(o.Padding()))
	t := min(float64(o.Thickness()), area.Width())
	if t <= 0 || area.Height() <= 0 {
		return
	}
	c.DrawRect(rendering.RectFromLTWH(area.Left, area.Top, t, area.Height()), rendering.FillPaint(o.TrackColor()))
	if fraction > 0 {
		h := area.Height() * fraction
		c.DrawRect(rendering.RectFromLTWH(area.Left, area.Bottom-h, t, h), rendering.FillPaint(o.Color()))
	}
}
