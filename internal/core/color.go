package core

// Color represents a foreground color for a screen cell.
// The platform layer maps each value to an ANSI color code.
type Color uint8

// Colors used by the racer's terminal renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorYellow
	ColorWhite
	ColorBrightRed
	ColorBrightWhite
	ColorCyan
	ColorGray
)
