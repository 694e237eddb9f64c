package core

// Color represents a foreground color for a screen cell.
// The platform layer maps each value to a terminal color.
type Color uint8

// Bubble palette and UI colors.
const (
	ColorDefault Color = iota
	ColorRed
	ColorBlue
	ColorGreen
	ColorYellow
	ColorPurple
	ColorPink
	ColorOrange
	ColorBrown
	ColorCyan
	ColorWhite
	ColorGray
)

// String returns the palette name of the color.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorBlue:
		return "blue"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorPurple:
		return "purple"
	case ColorPink:
		return "pink"
	case ColorOrange:
		return "orange"
	case ColorBrown:
		return "brown"
	case ColorCyan:
		return "cyan"
	case ColorWhite:
		return "white"
	case ColorGray:
		return "gray"
	default:
		return "default"
	}
}

// ParseColor returns the color with the given palette name.
// Unknown names map to ColorDefault.
func ParseColor(name string) Color {
	for c := ColorRed; c <= ColorGray; c++ {
		if c.String() == name {
			return c
		}
	}
	return ColorDefault
}
