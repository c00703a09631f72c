package rendering

import (
	"fmt"
	"math"
)

// kappa is the cubic bezier control distance for a quarter circle of radius 1.
const kappa = 0.5522847498307936

// PathOp represents a path drawing operation type.
type PathOp int

const (
	PathOpMoveTo  PathOp = iota // Start new subpath at point (x, y)
	PathOpLineTo                // Draw line to point (x, y)
	PathOpCubicTo               // Draw cubic curve to (x3, y3) via controls (x1, y1), (x2, y2)
	PathOpClose                 // Close subpath with line to start point
)

// String returns a human-readable representation of the path operation.
func (o PathOp) String() string {
	switch o {
	case PathOpMoveTo:
		return "move_to"
	case PathOpLineTo:
		return "line_to"
	case PathOpCubicTo:
		return "cubic_to"
	case PathOpClose:
		return "close"
	default:
		return fmt.Sprintf("PathOp(%d)", int(o))
	}
}

// PathCommand represents a single path operation with its coordinate arguments.
type PathCommand struct {
	Op   PathOp    // The operation type
	Args []float64 // Coordinates: MoveTo/LineTo=[x,y], CubicTo=[x1,y1,x2,y2,x3,y3]
}

// Path is a vector outline used by the raster canvas.
//
// Filling follows a nonzero rule where coverage is clamped to one, so a
// subpath wound in the opposite direction of its enclosing subpath cuts a
// hole. AddRRect and AddRect take a direction flag for that purpose.
type Path struct {
	Commands []PathCommand
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{}
}

// MoveTo starts a new subpath at the given point.
func (p *Path) MoveTo(x, y float64) {
	p.Commands = append(p.Commands, PathCommand{Op: PathOpMoveTo, Args: []float64{x, y}})
}

// LineTo adds a line segment from the current point to (x, y).
func (p *Path) LineTo(x, y float64) {
	p.Commands = append(p.Commands, PathCommand{Op: PathOpLineTo, Args: []float64{x, y}})
}

// CubicTo adds a cubic bezier curve from the current point to (x3, y3)
// with control points (x1, y1) and (x2, y2).
func (p *Path) CubicTo(x1, y1, x2, y2, x3, y3 float64) {
	p.Commands = append(p.Commands, PathCommand{Op: PathOpCubicTo, Args: []float64{x1, y1, x2, y2, x3, y3}})
}

// Close closes the current subpath by drawing a line to the starting point.
func (p *Path) Close() {
	p.Commands = append(p.Commands, PathCommand{Op: PathOpClose})
}

// IsEmpty returns true if the path has no commands.
func (p *Path) IsEmpty() bool {
	return len(p.Commands) == 0
}

// AddRect appends a closed rectangle subpath.
func (p *Path) AddRect(r Rect, clockwise bool) {
	p.AddRRect(RRectFromRectAndRadius(r, Radius{}), clockwise)
}

// segment is one edge of a closed outline: a line when the controls are
// unset, otherwise a cubic.
type segment struct {
	from, c1, c2, to Offset
	cubic            bool
}

// AddRRect appends a closed rounded-rectangle subpath. Corner radii larger
// than half the rectangle are scaled down uniformly.
func (p *Path) AddRRect(rr RRect, clockwise bool) {
	r := rr.Rect
	if r.IsEmpty() {
		return
	}
	tl, tr, br, bl := clampRadii(rr)
	l, t, rt, b := r.Left, r.Top, r.Right, r.Bottom

	corner := func(from, to Offset, c1, c2 Offset) segment {
		return segment{from: from, c1: c1, c2: c2, to: to, cubic: true}
	}
	line := func(from, to Offset) segment {
		return segment{from: from, to: to}
	}

	p0 := Offset{l + tl.X, t}
	p1 := Offset{rt - tr.X, t}
	p2 := Offset{rt, t + tr.Y}
	p3 := Offset{rt, b - br.Y}
	p4 := Offset{rt - br.X, b}
	p5 := Offset{l + bl.X, b}
	p6 := Offset{l, b - bl.Y}
	p7 := Offset{l, t + tl.Y}

	segs := []segment{
		line(p0, p1),
		corner(p1, p2, Offset{rt - tr.X*(1-kappa), t}, Offset{rt, t + tr.Y*(1-kappa)}),
		line(p2, p3),
		corner(p3, p4, Offset{rt, b - br.Y*(1-kappa)}, Offset{rt - br.X*(1-kappa), b}),
		line(p4, p5),
		corner(p5, p6, Offset{l + bl.X*(1-kappa), b}, Offset{l, b - bl.Y*(1-kappa)}),
		line(p6, p7),
		corner(p7, p0, Offset{l, t + tl.Y*(1-kappa)}, Offset{l + tl.X*(1-kappa), t}),
	}
	if !clockwise {
		for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
			segs[i], segs[j] = segs[j], segs[i]
		}
		for i := range segs {
			s := segs[i]
			segs[i] = segment{from: s.to, c1: s.c2, c2: s.c1, to: s.from, cubic: s.cubic}
		}
	}
	p.appendSegments(segs)
}

// AddOval appends the ellipse inscribed in r.
func (p *Path) AddOval(r Rect, clockwise bool) {
	p.AddRRect(RRectOval(r), clockwise)
}

// AddArcBand appends a closed band following the arc of the ellipse inscribed
// in oval, widened by width/2 on both sides. Angles are in degrees.
func (p *Path) AddArcBand(oval Rect, startAngle, sweepAngle, width float64) {
	if sweepAngle == 0 || width <= 0 || oval.IsEmpty() {
		return
	}
	if sweepAngle > 360 {
		sweepAngle = 360
	} else if sweepAngle < -360 {
		sweepAngle = -360
	}
	c := oval.Center()
	rx, ry := oval.Width()/2, oval.Height()/2
	half := width / 2
	steps := int(math.Ceil(math.Abs(sweepAngle) / 4))
	if steps < 2 {
		steps = 2
	}
	point := func(i int, dr float64) (float64, float64) {
		a := (startAngle + sweepAngle*float64(i)/float64(steps)) * math.Pi / 180
		return c.X + (rx+dr)*math.Cos(a), c.Y + (ry+dr)*math.Sin(a)
	}

	x, y := point(0, half)
	p.MoveTo(x, y)
	for i := 1; i <= steps; i++ {
		x, y = point(i, half)
		p.LineTo(x, y)
	}
	inner := -math.Min(half, math.Min(rx, ry))
	for i := steps; i >= 0; i-- {
		x, y = point(i, inner)
		p.LineTo(x, y)
	}
	p.Close()
}

func (p *Path) appendSegments(segs []segment) {
	if len(segs) == 0 {
		return
	}
	p.MoveTo(segs[0].from.X, segs[0].from.Y)
	for _, s := range segs {
		if s.cubic {
			p.CubicTo(s.c1.X, s.c1.Y, s.c2.X, s.c2.Y, s.to.X, s.to.Y)
		} else {
			p.LineTo(s.to.X, s.to.Y)
		}
	}
	p.Close()
}

// clampRadii scales the corner radii down so adjacent corners never overlap.
func clampRadii(rr RRect) (tl, tr, br, bl Radius) {
	tl, tr, br, bl = rr.TopLeft, rr.TopRight, rr.BottomRight, rr.BottomLeft
	w, h := rr.Rect.Width(), rr.Rect.Height()
	scale := 1.0
	fit := func(sum, limit float64) {
		if sum > limit && sum > 0 {
			scale = math.Min(scale, limit/sum)
		}
	}
	fit(tl.X+tr.X, w)
	fit(bl.X+br.X, w)
	fit(tl.Y+bl.Y, h)
	fit(tr.Y+br.Y, h)
	if scale < 1 {
		sc := func(r Radius) Radius { return Radius{X: r.X * scale, Y: r.Y * scale} }
		tl, tr, br, bl = sc(tl), sc(tr), sc(br), sc(bl)
	}
	return tl, tr, br, bl
}
