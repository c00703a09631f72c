// Package progress draws a determinate progress indicator over a view: a
// circular arc, or a horizontal or vertical bar.
package progress

import (
	"fmt"
	"strings"
)

// Mode selects the indicator style.
type Mode int

const (
	// Disabled draws nothing.
	Disabled Mode = iota
	// Circular draws an arc over a track circle.
	Circular
	// Horizontal draws a bar along the bottom edge.
	Horizontal
	// Vertical draws a bar along the left edge.
	Vertical
)

// DefaultMode is what out-of-range values resolve to.
const DefaultMode = Disabled

var modeNames = [...]string{
	Disabled:   "disabled",
	Circular:   "circular",
	Horizontal: "horizontal",
	Vertical:   "vertical",
}

// Modes returns every progress mode in value order.
func Modes() []Mode {
	modes := make([]Mode, len(modeNames))
	for i := range modeNames {
		modes[i] = Mode(i)
	}
	return modes
}

// FromValue maps any integer to a mode; unknown values yield DefaultMode.
func FromValue(v int) Mode {
	if v < 0 || v >= len(modeNames) {
		return DefaultMode
	}
	return Mode(v)
}

// ParseMode maps a name to a mode. Unknown names yield DefaultMode.
func ParseMode(name string) Mode {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for i, s := range modeNames {
		if s == n {
			return Mode(i)
		}
	}
	return DefaultMode
}

// Value returns the persisted integer value.
func (m Mode) Value() int { return int(FromValue(int(m))) }

// IsEnabled reports whether anything is drawn.
func (m Mode) IsEnabled() bool { return FromValue(int(m)) != Disabled }

func (m Mode) String() string {
	if int(m) < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}
