package engine

import "github.com/vovakirdan/blockfall/internal/core"

// Piece is the falling tetromino. X and Y give the grid position of the
// shape's top-left cell.
type Piece struct {
	Kind  Kind
	Shape Shape
	Color core.Color
	X, Y  int
}

// NewPiece places a fresh copy of kind k at (x, y).
func NewPiece(k Kind, x, y int) Piece {
	t := Lookup(k)
	return Piece{Kind: k, Shape: t.Shape, Color: t.Color, X: x, Y: y}
}

// Clone returns a copy whose shape does not alias the receiver's.
func (p Piece) Clone() Piece {
	p.Shape = p.Shape.Clone()
	return p
}

// Cells calls fn with the absolute grid coordinates of every occupied cell.
func (p Piece) Cells(fn func(x, y int)) {
	p.Shape.Cells(func(x, y int) {
		fn(p.X+x, p.Y+y)
	})
}

// HasCollision reports whether p, shifted by (dx, dy), hits a wall, the floor
// or a locked cell. Cells above the top row never collide.
func HasCollision(p Piece, g *Grid, dx, dy int) bool {
	for y, row := range p.Shape {
		for x, filled := range row {
			if filled && g.IsOccupied(p.X+x+dx, p.Y+y+dy) {
				return true
			}
		}
	}
	return false
}

// merge writes the piece's color into the grid. Cells above the top row are
// dropped since the grid cannot hold them.
func merge(p Piece, g *Grid) {
	p.Cells(func(x, y int) {
		if y >= 0 {
			g.Set(x, y, p.Color)
		}
	})
}
