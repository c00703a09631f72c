package testing

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/go-drift/effectview/pkg/rendering"
)

// DisplayOp represents a serialized canvas drawing operation.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// SerializingCanvas implements rendering.Canvas and records every call as a
// DisplayOp with coordinates rounded to two decimals.
type SerializingCanvas struct {
	ops  []DisplayOp
	size rendering.Size
}

// NewSerializingCanvas returns an empty canvas reporting size.
func NewSerializingCanvas(size rendering.Size) *SerializingCanvas {
	return &SerializingCanvas{size: size}
}

// Ops returns the recorded operations.
func (c *SerializingCanvas) Ops() []DisplayOp {
	return c.ops
}

func (c *SerializingCanvas) Save() {
	c.ops = append(c.ops, DisplayOp{Op: "save"})
}

func (c *SerializingCanvas) Restore() {
	c.ops = append(c.ops, DisplayOp{Op: "restore"})
}

func (c *SerializingCanvas) ClipRect(rect rendering.Rect) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "clipRect",
		Params: sortedMap("rect", serializeRect(rect)),
	})
}

func (c *SerializingCanvas) ClipRRect(rrect rendering.RRect) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "clipRRect",
		Params: sortedMap("rect", serializeRect(rrect.Rect), "radius", serializeRadius(rrect)),
	})
}

func (c *SerializingCanvas) Clear(color rendering.Color) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "clear",
		Params: sortedMap("color", serializeColor(color)),
	})
}

func (c *SerializingCanvas) DrawRect(rect rendering.Rect, paint rendering.Paint) {
	params := serializePaint(paint)
	params["rect"] = serializeRect(rect)
	c.ops = append(c.ops, DisplayOp{Op: "drawRect", Params: params})
}

func (c *SerializingCanvas) DrawRRect(rrect rendering.RRect, paint rendering.Paint) {
	params := serializePaint(paint)
	params["rect"] = serializeRect(rrect.Rect)
	params["radius"] = serializeRadius(rrect)
	c.ops = append(c.ops, DisplayOp{Op: "drawRRect", Params: params})
}

func (c *SerializingCanvas) DrawDRRect(outer, inner rendering.RRect, paint rendering.Paint) {
	params := serializePaint(paint)
	params["outer"] = sortedMap("rect", serializeRect(outer.Rect), "radius", serializeRadius(outer))
	params["inner"] = sortedMap("rect", serializeRect(inner.Rect), "radius", serializeRadius(inner))
	c.ops = append(c.ops, DisplayOp{Op: "drawDRRect", Params: params})
}

func (c *SerializingCanvas) DrawCircle(center rendering.Offset, radius float64, paint rendering.Paint) {
	params := serializePaint(paint)
	params["cx"] = round2(center.X)
	params["cy"] = round2(center.Y)
	params["radius"] = round2(radius)
	c.ops = append(c.ops, DisplayOp{Op: "drawCircle", Params: params})
}

func (c *SerializingCanvas) DrawArc(oval rendering.Rect, startAngle, sweepAngle float64, paint rendering.Paint) {
	params := serializePaint(paint)
	params["oval"] = serializeRect(oval)
	params["start"] = round2(startAngle)
	params["sweep"] = round2(sweepAngle)
	c.ops = append(c.ops, DisplayOp{Op: "drawArc", Params: params})
}

func (c *SerializingCanvas) DrawImageRect(img image.Image, srcRect, dstRect rendering.Rect, _ rendering.FilterQuality) {
	params := sortedMap("src", serializeRect(srcRect), "dst", serializeRect(dstRect))
	if img != nil {
		b := img.Bounds()
		params["image"] = fmt.Sprintf("%dx%d", b.Dx(), b.Dy())
	}
	c.ops = append(c.ops, DisplayOp{Op: "drawImageRect", Params: params})
}

func (c *SerializingCanvas) Size() rendering.Size {
	return c.size
}

// Record runs paint against a fresh serializing canvas and returns the
// operations it issued.
func Record(size rendering.Size, paint func(rendering.Canvas)) []DisplayOp {
	c := NewSerializingCanvas(size)
	paint(c)
	return c.ops
}

// SerializeDisplayList replays a DisplayList through the serializing canvas.
func SerializeDisplayList(dl *rendering.DisplayList) []DisplayOp {
	canvas := NewSerializingCanvas(dl.Size())
	dl.Paint(canvas)
	return canvas.ops
}

// FilterOps returns the operations named op, in order.
func FilterOps(ops []DisplayOp, op string) []DisplayOp {
	var out []DisplayOp
	for _, o := range ops {
		if o.Op == op {
			out = append(out, o)
		}
	}
	return out
}

// OpNames returns the op names in order, convenient for sequence checks.
func OpNames(ops []DisplayOp) []string {
	names := make([]string, len(ops))
	for i, o := range ops {
		names[i] = o.Op
	}
	return names
}

// --- Serialization helpers ---

func serializeRect(r rendering.Rect) map[string]any {
	return sortedMap(
		"left", round2(r.Left),
		"top", round2(r.Top),
		"right", round2(r.Right),
		"bottom", round2(r.Bottom),
	)
}

func serializeRadius(rr rendering.RRect) map[string]any {
	// If all corners are the same, use a single value
	if rr.TopLeft == rr.TopRight && rr.TopRight == rr.BottomRight && rr.BottomRight == rr.BottomLeft {
		return sortedMap("x", round2(rr.TopLeft.X), "y", round2(rr.TopLeft.Y))
	}
	return sortedMap(
		"topLeft", sortedMap("x", round2(rr.TopLeft.X), "y", round2(rr.TopLeft.Y)),
		"topRight", sortedMap("x", round2(rr.TopRight.X), "y", round2(rr.TopRight.Y)),
		"bottomRight", sortedMap("x", round2(rr.BottomRight.X), "y", round2(rr.BottomRight.Y)),
		"bottomLeft", sortedMap("x", round2(rr.BottomLeft.X), "y", round2(rr.BottomLeft.Y)),
	)
}

func serializePaint(p rendering.Paint) map[string]any {
	m := sortedMap("color", serializeColor(p.Color), "style", p.Style.String())
	if p.Style == rendering.PaintStyleStroke {
		m["strokeWidth"] = round2(p.StrokeWidth)
	}
	return m
}

func serializeColor(c rendering.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// round2 rounds a float64 to 2 decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// sortedMap creates a map from alternating key-value pairs.
// JSON marshaling sorts the keys, so snapshots are stable.
func sortedMap(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		m[kvs[i].(string)] = kvs[i+1]
	}
	return m
}

// sortedKeys returns the keys of a map in sorted order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FormatOp renders op on one line with its parameters in key order, for
// failure messages.
func FormatOp(op DisplayOp) string {
	s := op.Op
	for _, k := range sortedKeys(op.Params) {
		s += fmt.Sprintf(" %s=%v", k, op.Params[k])
	}
	return s
}
