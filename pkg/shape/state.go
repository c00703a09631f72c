package shape

import (
	"math"

	"github.com/go-drift/effectview/pkg/rendering"
	"github.com/go-drift/effectview/pkg/state"
)

const optionsSize = 5*4 + 2*4 + 4

// MarshalBinary encodes the options as [padding f32][border f32][ratio f32]
// [radiusX f32][radiusY f32][borderColor u32][solidColor u32][scaleType i32],
// little endian.
func (o *Options) MarshalBinary() ([]byte, error) {
	e := state.NewEncoder(optionsSize)
	e.Float32(o.innerPadding)
	e.Float32(o.borderWidth)
	e.Float32(o.ratio)
	e.Float32(o.radiusX)
	e.Float32(o.radiusY)
	e.Uint32(uint32(o.borderColor))
	e.Uint32(uint32(o.solidColor))
	e.Int32(o.scaleType.Value())
	return e.Bytes(), nil
}

// UnmarshalBinary decodes data written by MarshalBinary without notifying
// the listener. Out-of-range values are clamped as the setters would.
func (o *Options) UnmarshalBinary(data []byte) error {
	d := state.NewDecoder(data)
	padding := d.Float32()
	border := d.Float32()
	ratio := d.Float32()
	rx := d.Float32()
	ry := d.Float32()
	borderColor := d.Uint32()
	solidColor := d.Uint32()
	scale := d.Int32()
	if err := d.Err(); err != nil {
		return err
	}
	if ratio <= 0 || math.IsNaN(float64(ratio)) {
		ratio = 1
	}
	o.innerPadding = nonNegative(padding)
	o.borderWidth = nonNegative(border)
	o.ratio = ratio
	o.radiusX = nonNegative(rx)
	o.radiusY = nonNegative(ry)
	o.borderColor = rendering.Color(borderColor)
	o.solidColor = rendering.Color(solidColor)
	o.scaleType = ScaleTypeFromValue(scale)
	return nil
}
