package core

import "fmt"

// Color is a 24-bit terminal colour. The zero value is the terminal default.
type Color struct {
	R, G, B uint8
	set     bool
}

// RGB makes a colour from its components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, set: true}
}

// IsDefault reports whether c is the terminal default colour.
func (c Color) IsDefault() bool {
	return !c.set
}

// Hex returns the colour as "#rrggbb", or "" for the default colour.
func (c Color) Hex() string {
	if !c.set {
		return ""
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Luma returns the perceived brightness in [0, 255].
func (c Color) Luma() float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// Colours used by the board chrome.
var (
	ColorDefault = Color{}
	ColorBlack   = RGB(16, 16, 16)
	ColorWhite   = RGB(238, 238, 238)
	ColorGray    = RGB(138, 138, 138)
	ColorDim     = RGB(68, 68, 68)
	ColorYellow  = RGB(255, 215, 95)
	ColorRed     = RGB(255, 95, 95)
	ColorGreen   = RGB(95, 215, 135)
	ColorCyan    = RGB(95, 215, 255)
)
