package engine

import "github.com/vovakirdan/blockfall/internal/core"

// Kind identifies one of the seven tetrominoes.
type Kind int

const (
	KindI Kind = iota
	KindO
	KindL
	KindJ
	KindZ
	KindS
	KindT
	kindCount
)

var kindNames = [kindCount]string{"I", "O", "L", "J", "Z", "S", "T"}

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "?"
	}
	return kindNames[k]
}

// Kinds returns every kind in catalog order.
func Kinds() []Kind {
	kinds := make([]Kind, kindCount)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Shape is an occupancy matrix indexed [row][col].
type Shape [][]bool

// Height returns the number of rows.
func (s Shape) Height() int { return len(s) }

// Width returns the number of columns.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for i, row := range s {
		out[i] = append([]bool(nil), row...)
	}
	return out
}

// Rotate returns the shape turned 90° clockwise. The receiver is untouched.
func (s Shape) Rotate() Shape {
	h, w := s.Height(), s.Width()
	out := make(Shape, w)
	for i := range out {
		out[i] = make([]bool, h)
		for j := range out[i] {
			out[i][j] = s[h-1-j][i]
		}
	}
	return out
}

// Equal returns true if both shapes have the same occupancy.
func (s Shape) Equal(other Shape) bool {
	if s.Height() != other.Height() || s.Width() != other.Width() {
		return false
	}
	for y := range s {
		for x := range s[y] {
			if s[y][x] != other[y][x] {
				return false
			}
		}
	}
	return true
}

// Cells calls fn with the local coordinates of every occupied cell.
func (s Shape) Cells(fn func(x, y int)) {
	for y, row := range s {
		for x, filled := range row {
			if filled {
				fn(x, y)
			}
		}
	}
}

// Tetromino is a catalog entry.
type Tetromino struct {
	Kind  Kind
	Shape Shape
	Color core.Color
}

// parseShape builds a shape from rows of '#' and '.'.
func parseShape(rows ...string) Shape {
	s := make(Shape, len(rows))
	for y, r := range rows {
		s[y] = make([]bool, len(r))
		for x, ch := range r {
			s[y][x] = ch == '#'
		}
	}
	return s
}

// catalog is read-only. Lookup hands out copies.
var catalog = [kindCount]Tetromino{
	KindI: {KindI, parseShape("####"), core.ColorCyan},
	KindO: {KindO, parseShape("##", "##"), core.ColorBlue},
	KindL: {KindL, parseShape("###", "#.."), core.ColorOrange},
	KindJ: {KindJ, parseShape("###", "..#"), core.ColorYellow},
	KindZ: {KindZ, parseShape("##.", ".##"), core.ColorGreen},
	KindS: {KindS, parseShape(".##", "##."), core.ColorRed},
	KindT: {KindT, parseShape(".#.", "###"), core.ColorPurple},
}

// Lookup returns the catalog entry for k with a private copy of its shape.
func Lookup(k Kind) Tetromino {
	if k < 0 || k >= kindCount {
		panic("engine: unknown tetromino kind")
	}
	t := catalog[k]
	t.Shape = t.Shape.Clone()
	return t
}
