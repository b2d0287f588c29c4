// Package core provides fundamental types and utilities shared by the engine and
// the platform layer. It has no external dependencies (especially no Bubble Tea)
// to keep game logic pure and testable.
package core

// Rect represents an axis-aligned rectangle on a Screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Centered returns a w x h rectangle centered inside r.
func (r Rect) Centered(w, h int) Rect {
	return NewRect(r.X+(r.W-w)/2, r.Y+(r.H-h)/2, w, h)
}
