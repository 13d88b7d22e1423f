package core

// Color is the foreground/background palette index of a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Palette. ColorDefault leaves the terminal's own color untouched.
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
	ColorBrightBlue
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorBrown
	ColorBeige
	ColorBlack
)
