package progress

import (
	"math"

	"github.com/go-drift/effectview/pkg/options"
	"github.com/go-drift/effectview/pkg/rendering"
)

// Aspect identifies which progress option changed.
type Aspect int

const (
	// AspectMax reports a SetMax call.
	AspectMax Aspect = iota
	// AspectThickness reports a SetThickness call.
	AspectThickness
	// AspectStartAngle reports a SetStartAngle call.
	AspectStartAngle
	// AspectColor reports a SetColor call.
	AspectColor
	// AspectTrackColor reports a SetTrackColor call.
	AspectTrackColor
	// AspectPadding reports a SetPadding call.
	AspectPadding
)

func (a Aspect) String() string {
	switch a {
	case AspectMax:
		return "max"
	case AspectThickness:
		return "thickness"
	case AspectStartAngle:
		return "start_angle"
	case AspectColor:
		return "color"
	case AspectTrackColor:
		return "track_color"
	case AspectPadding:
		return "padding"
	default:
		return "unknown"
	}
}

// Listener is notified when Options change.
type Listener = options.Listener[Aspect]

// DefaultMax is the maximum used when none, or a non-positive one, is set.
const DefaultMax = 100

// Options holds the indicator style.
//
// Every setter notifies the listener exactly once, synchronously, even when
// the value does not change.
type Options struct {
	notifier options.Notifier[Aspect]

	max        float32
	thickness  float32
	startAngle float32
	color      rendering.Color
	trackColor rendering.Color
	padding    float32
}

// NewOptions returns options for a 0..100 indicator, 4px thick, starting
// at 12 o'clock, blue on a translucent black track.
func NewOptions() *Options {
	return &Options{
		max:        DefaultMax,
		thickness:  4,
		startAngle: -90,
		color:      rendering.Color(0xFF2196F3),
		trackColor: rendering.Color(0x40000000),
	}
}

// SetListener replaces the listener. Pass nil to detach.
func (o *Options) SetListener(l Listener) { o.notifier.SetListener(l) }

// Detach removes l if it is the current listener.
func (o *Options) Detach(l Listener) { o.notifier.Detach(l) }

// Max returns the value that represents completion.
func (o *Options) Max() float32 { return o.max }

// SetMax sets the completion value; non-positive or NaN values store
// DefaultMax.
func (o *Options) SetMax(m float32) {
	if m <= 0 || math.IsNaN(float64(m)) || math.IsInf(float64(m), 0) {
		m = DefaultMax
	}
	o.max = m
	o.notifier.Notify(AspectMax)
}

// Thickness returns the stroke or bar thickness.
func (o *Options) Thickness() float32 { return o.thickness }

// SetThickness sets the thickness; negative values store 0.
func (o *Options) SetThickness(t float32) {
	if t < 0 || math.IsNaN(float64(t)) {
		t = 0
	}
	o.thickness = t
	o.notifier.Notify(AspectThickness)
}

// StartAngle returns where the circular arc begins, in degrees clockwise
// from 3 o'clock.
func (o *Options) StartAngle() float32 { return o.startAngle }

// SetStartAngle sets the arc start in degrees.
func (o *Options) SetStartAngle(deg float32) {
	o.startAngle = deg
	o.notifier.Notify(AspectStartAngle)
}

// Color returns the indicator color.
func (o *Options) Color() rendering.Color { return o.color }

// SetColor sets the indicator color.
func (o *Options) SetColor(c rendering.Color) {
	o.color = c
	o.notifier.Notify(AspectColor)
}

// TrackColor returns the color of the unfilled track.
func (o *Options) TrackColor() rendering.Color { return o.trackColor }

// SetTrackColor sets the track color.
func (o *Options) SetTrackColor(c rendering.Color) {
	o.trackColor = c
	o.notifier.Notify(AspectTrackColor)
}

// Padding returns the inset between the view edge and the indicator.
func (o *Options) Padding() float32 { return o.padding }

// SetPadding sets the inset; negative values store 0.
func (o *Options) SetPadding(p float32) {
	if p < 0 || math.IsNaN(float64(p)) {
		p = 0
	}
	o.padding = p
	o.notifier.Notify(AspectPadding)
}
