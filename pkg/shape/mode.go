// Package shape masks a view's image into rectangles, rounded rectangles,
// circles and ovals, optionally with a border and a solid surround.
//
// Options holds the style inputs and derives the nested Bounds for a view
// size and Mode; a DrawerManager keeps those bounds current and draws
// through the Drawer matching the mode's family.
package shape

import (
	"fmt"
	"strings"
)

// Mode selects the shape mask.
type Mode int

const (
	// Normal draws the image unmasked inside the padded view.
	Normal Mode = iota
	// Rectangle frames the image with a rectangular border.
	Rectangle
	// RoundedRectangle clips to a rectangle with RadiusX/RadiusY corners.
	RoundedRectangle
	// Circle clips to the largest centred circle.
	Circle
	// Oval clips to an ellipse of the configured ratio.
	Oval
	// SolidRoundedRectangle is RoundedRectangle with the outside filled by SolidColor.
	SolidRoundedRectangle
	// SolidCircle is Circle with the outside filled by SolidColor.
	SolidCircle
	// SolidOval is Oval with the outside filled by SolidColor.
	SolidOval
)

// DefaultMode is what out-of-range values resolve to.
const DefaultMode = Normal

// Family partitions the modes by how they are drawn.
type Family int

const (
	FamilyRectangular Family = iota
	FamilyRounded
	FamilySolid
)

func (f Family) String() string {
	switch f {
	case FamilyRectangular:
		return "rectangular"
	case FamilyRounded:
		return "rounded"
	case FamilySolid:
		return "solid"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// outline is the geometric figure a mode cuts out.
type outline int

const (
	outlineRect outline = iota
	outlineRoundRect
	outlineCircle
	outlineOval
)

type modeInfo struct {
	name    string
	family  Family
	outline outline
}

var modeTable = [...]modeInfo{
	Normal:                {"normal", FamilyRectangular, outlineRect},
	Rectangle:             {"rectangle", FamilyRectangular, outlineRect},
	RoundedRectangle:      {"rounded_rectangle", FamilyRounded, outlineRoundRect},
	Circle:                {"circle", FamilyRounded, outlineCircle},
	Oval:                  {"oval", FamilyRounded, outlineOval},
	SolidRoundedRectangle: {"solid_rounded_rectangle", FamilySolid, outlineRoundRect},
	SolidCircle:           {"solid_circle", FamilySolid, outlineCircle},
	SolidOval:             {"solid_oval", FamilySolid, outlineOval},
}

// Modes returns every shape mode in value order.
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

// ParseMode maps a name to a mode. Unknown names yield DefaultMode.
func ParseMode(name string) Mode {
	n := normalizeName(name)
	for i, info := range modeTable {
		if info.name == n {
			return Mode(i)
		}
	}
	return DefaultMode
}

func normalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
}

func (m Mode) info() modeInfo {
	return modeTable[FromValue(int(m))]
}

// Value returns the persisted integer value.
func (m Mode) Value() int { return int(FromValue(int(m))) }

// Family returns the drawing family of the mode.
func (m Mode) Family() Family { return m.info().family }

// IsRectangular reports whether the mode draws without rounding.
func (m Mode) IsRectangular() bool { return m.Family() == FamilyRectangular }

// IsRounded reports whether the mode clips to a rounded outline.
func (m Mode) IsRounded() bool { return m.Family() == FamilyRounded }

// IsSolid reports whether the mode fills the surround with a solid color.
func (m Mode) IsSolid() bool { return m.Family() == FamilySolid }

func (m Mode) String() string {
	if int(m) < 0 || int(m) >= len(modeTable) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeTable[m].name
}
