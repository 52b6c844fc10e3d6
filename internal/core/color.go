package core

// Color represents a foreground color for a screen cell.
// Values map onto ANSI 256-color codes for terminals and RGB for windows.
type Color uint8

// Palette used by the base builder renderers.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorOrange
	ColorGray
	ColorDarkGray
)

type colorInfo struct {
	ansi    string
	r, g, b uint8
}

var palette = [...]colorInfo{
	ColorDefault:      {"", 220, 220, 220},
	ColorRed:          {"1", 205, 49, 49},
	ColorGreen:        {"2", 13, 188, 121},
	ColorYellow:       {"3", 229, 229, 16},
	ColorBlue:         {"4", 36, 114, 200},
	ColorMagenta:      {"5", 188, 63, 188},
	ColorCyan:         {"6", 17, 168, 205},
	ColorWhite:        {"7", 229, 229, 229},
	ColorBrightRed:    {"9", 241, 76, 76},
	ColorBrightGreen:  {"10", 35, 209, 139},
	ColorBrightYellow: {"11", 245, 245, 67},
	ColorOrange:       {"208", 255, 135, 0},
	ColorGray:         {"245", 138, 138, 138},
	ColorDarkGray:     {"238", 68, 68, 68},
}

// ANSI returns the terminal color code, or "" for the terminal default.
func (c Color) ANSI() string {
	if int(c) >= len(palette) {
		return ""
	}
	return palette[c].ansi
}

// RGB returns the color as 8-bit channels.
func (c Color) RGB() (r, g, b uint8) {
	if int(c) >= len(palette) {
		c = ColorDefault
	}
	p := palette[c]
	return p.r, p.g, p.b
}
