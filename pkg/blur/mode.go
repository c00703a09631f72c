// Package blur coordinates the blur effect: the blur modes and their
// fallback chain, the tunable Options, the pluggable blur algorithms, and
// the DrawerManager that keeps the source and blurred bitmaps for a view.
package blur

import (
	"fmt"
	"strings"
)

// Mode selects the blur algorithm.
type Mode int

const (
	// Disabled turns blurring off. It is its own fallback.
	Disabled Mode = iota
	// Gaussian is a parallel Gaussian blur.
	Gaussian
	// Box is a parallel box blur.
	Box
	// Mean is a parallel disk-kernel mean filter.
	Mean
	// Stack is the portable stack blur, fanned out over Options.NumThreads.
	Stack
)

// DefaultMode is what out-of-range values resolve to.
const DefaultMode = Disabled

type modeInfo struct {
	name        string
	accelerated bool
	fallback    Mode
}

// modeTable is indexed by Mode. Every accelerated mode falls back to the
// portable Stack blur, and Stack falls back to Disabled, so no chain is
// longer than one hop.
var modeTable = [...]modeInfo{
	Disabled: {name: "disabled", fallback: Disabled},
	Gaussian: {name: "gaussian", accelerated: true, fallback: Stack},
	Box:      {name: "box", accelerated: true, fallback: Stack},
	Mean:     {name: "mean", accelerated: true, fallback: Stack},
	Stack:    {name: "stack", fallback: Disabled},
}

// Modes returns every blur mode in value order.
func Modes() []Mode {
	modes := make([]Mode, len(modeTable))
	for i := range modeTable {
		modes[i] = Mode(i)
	}
	return modes
}

// FromValue maps any integer to a mode; unknown values yield DefaultMode.
func FromValue(v int) Mode {
	if v < 0 || v >= len(modeTable) {
		return DefaultMode
	}
	return Mode(v)
}

// ParseMode maps a mode name to a mode, ignoring case and treating '-' and
// '_' alike. Unknown names yield DefaultMode.
func ParseMode(name string) Mode {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for i, info := range modeTable {
		if info.name == n {
			return Mode(i)
		}
	}
	return DefaultMode
}

func (m Mode) info() modeInfo {
	return modeTable[FromValue(int(m))]
}

// Value returns the persisted integer value.
func (m Mode) Value() int {
	return int(FromValue(int(m)))
}

// Fallback returns the mode to try when this mode's algorithm fails.
func (m Mode) Fallback() Mode {
	return m.info().fallback
}

// IsAccelerated reports whether the mode relies on an optimised kernel
// that may be unavailable in a given build.
func (m Mode) IsAccelerated() bool {
	return m.info().accelerated
}

// IsEnabled reports whether the mode blurs at all.
func (m Mode) IsEnabled() bool {
	return FromValue(int(m)) != Disabled
}

// String returns the mode name.
func (m Mode) String() string {
	if int(m) < 0 || int(m) >= len(modeTable) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeTable[m].name
}
