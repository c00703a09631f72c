package progress

import (
	"math"

	"github.com/go-drift/effectview/pkg/rendering"
	"github.com/go-drift/effectview/pkg/state"
)

const optionsSize = 6 * 4

// MarshalBinary encodes the options as [max f32][thickness f32]
// [startAngle f32][color u32][trackColor u32][padding f32], little endian.
func (o *Options) MarshalBinary() ([]byte, error) {
	e := state.NewEncoder(optionsSize)
	e.Float32(o.max)
	e.Float32(o.thickness)
	e.Float32(o.startAngle)
	e.Uint32(uint32(o.color))
	e.Uint32(uint32(o.trackColor))
	e.Float32(o.padding)
	return e.Bytes(), nil
}

// UnmarshalBinary decodes data written by MarshalBinary without notifying
// the listener.
func (o *Options) UnmarshalBinary(data []byte) error {
	d := state.NewDecoder(data)
	maxValue := d.Float32()
	thickness := d.Float32()
	start := d.Float32()
	c := d.Uint32()
	track := d.Uint32()
	padding := d.Float32()
	if err := d.Err(); err != nil {
		return err
	}
	if !(maxValue > 0) || math.IsInf(float64(maxValue), 0) {
		maxValue = DefaultMax
	}
	if !(thickness > 0) {
		thickness = 0
	}
	if !(padding > 0) {
		padding = 0
	}
	if math.IsNaN(float64(start)) {
		start = 0
	}
	o.max = maxValue
	o.thickness = thickness
	o.startAngle = start
	o.color = rendering.Color(c)
	o.trackColor = rendering.Color(track)
	o.padding = padding
	return nil
}
