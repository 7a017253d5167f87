package numfmt

import (
	"strconv"
	"strings"

	"github.com/xuri/nfp"
)

// Color is a display color selected by a [Red]-style directive in a format
// section.  The zero value, ColorNone, means the section sets no color and the
// caller should keep whatever color the cell already has.
type Color int

const (
	ColorNone Color = iota
	Black
	Red
	Green
	Blue
	Yellow
	Cyan
	Magenta
	White
)

// Palette lists every named color in declaration order.
var Palette = []Color{Black, Red, Green, Blue, Yellow, Cyan, Magenta, White}

var colorNames = [...]string{
	ColorNone: "",
	Black:     "Black",
	Red:       "Red",
	Green:     "Green",
	Blue:      "Blue",
	Yellow:    "Yellow",
	Cyan:      "Cyan",
	Magenta:   "Magenta",
	White:     "White",
}

// indexedColors maps [ColorN] onto the legacy 8-entry palette.
var indexedColors = [...]Color{
	1: Black,
	2: White,
	3: Red,
	4: Green,
	5: Blue,
	6: Yellow,
	7: Magenta,
	8: Cyan,
}

// String returns the directive name of c ("Red"), or "" for ColorNone.
func (c Color) String() string {
	if c < 0 || int(c) >= len(colorNames) {
		return "Color(" + strconv.Itoa(int(c)) + ")"
	}
	return colorNames[c]
}

// ParseColor resolves the content of a color bracket (without the brackets).
// Names are matched case-insensitively against the vocabulary nfp recognises;
// "ColorN" selects an indexed color for N in 1..8.
func ParseColor(name string) (Color, bool) {
	for _, known := range nfp.ColorNames {
		if !strings.EqualFold(known, name) {
			continue
		}
		for c := Black; c <= White; c++ {
			if strings.EqualFold(colorNames[c], known) {
				return c, true
			}
		}
	}
	if len(name) > 5 && strings.EqualFold(name[:5], "color") {
		n, err := strconv.Atoi(name[5:])
		if err == nil && n >= 1 && n < len(indexedColors) {
			return indexedColors[n], true
		}
	}
	return ColorNone, false
}
