// Package state persists effect options and view state.
//
// Options use a flat little-endian binary layout written with Encoder and
// read with Decoder. View state is a flat string Bundle serialised as YAML.
package state

import (
	"encoding/binary"
	"io"
	"math"
)

// Encoder appends fixed-width little-endian values to a byte slice.
type Encoder struct {
	buf []byte
}

// NewEncoder returns an encoder with capacity for n bytes.
func NewEncoder(n int) *Encoder {
	return &Encoder{buf: make([]byte, 0, n)}
}

// Float32 writes f as its IEEE-754 bits.
func (e *Encoder) Float32(f float32) {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, math.Float32bits(f))
}

// Bool writes one byte, 1 for true.
func (e *Encoder) Bool(b bool) {
	var v byte
	if b {
		v = 1
	}
	e.buf = append(e.buf, v)
}

// Int32 writes v as a signed 32-bit integer.
func (e *Encoder) Int32(v int) {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, uint32(int32(v)))
}

// Uint32 writes v.
func (e *Encoder) Uint32(v uint32) {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, v)
}

// Bytes returns the encoded data.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Decoder reads the values an Encoder wrote. The first short read sets a
// sticky io.ErrUnexpectedEOF; later reads return zero values.
type Decoder struct {
	data []byte
	err  error
}

// NewDecoder returns a decoder over data.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

func (d *Decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if len(d.data) < n {
		d.err = io.ErrUnexpectedEOF
		d.data = nil
		return nil
	}
	b := d.data[:n]
	d.data = d.data[n:]
	return b
}

// Float32 reads an IEEE-754 float.
func (d *Decoder) Float32() float32 {
	b := d.take(4)
	if b == nil {
		return 0
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// Bool reads one byte; any non-zero value is true.
func (d *Decoder) Bool() bool {
	b := d.take(1)
	return b != nil && b[0] != 0
}

// Int32 reads a signed 32-bit integer.
func (d *Decoder) Int32() int {
	b := d.take(4)
	if b == nil {
		return 0
	}
	return int(int32(binary.LittleEndian.Uint32(b)))
}

// Uint32 reads an unsigned 32-bit integer.
func (d *Decoder) Uint32() uint32 {
	b := d.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.data)
}

// Err returns the first error encountered.
func (d *Decoder) Err() error {
	return d.err
}
