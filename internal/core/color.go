package core

// Color identifies the color of a board cell or screen cell.
// ColorNone doubles as the "empty" marker for board cells.
type Color uint8

// Palette used by the tetromino catalog and the renderer.
const (
	ColorNone Color = iota
	ColorCyan
	ColorBlue
	ColorOrange
	ColorYellow
	ColorGreen
	ColorRed
	ColorPurple
	ColorWhite
	ColorGray
)

var colorNames = map[Color]string{
	ColorNone:   "none",
	ColorCyan:   "cyan",
	ColorBlue:   "blue",
	ColorOrange: "orange",
	ColorYellow: "yellow",
	ColorGreen:  "green",
	ColorRed:    "red",
	ColorPurple: "purple",
	ColorWhite:  "white",
	ColorGray:   "gray",
}

// String returns the lowercase color name.
func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "unknown"
}

// Empty reports whether the color marks an unoccupied cell.
func (c Color) Empty() bool {
	return c == ColorNone
}
