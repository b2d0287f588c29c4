// Package engine implements the blockfall game state: the grid of locked
// cells, the tetromino catalog, collision checks, piece transformations,
// locking, line clearing, scoring and the speed ramp.
//
// The engine is pure. It never sleeps or spawns goroutines; time is passed in
// by the caller (see internal/scheduler).
package engine

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Grid is the board of locked cells.
// Cells are stored in row-major order: index = y*cols + x.
// Dimensions never change after creation.
type Grid struct {
	rows  int
	cols  int
	cells []core.Color
}

// NewGrid creates an empty grid with the given dimensions.
func NewGrid(rows, cols int) *Grid {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("engine: invalid grid size %dx%d", rows, cols))
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]core.Color, rows*cols),
	}
}

// Rows returns the grid height.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the grid width.
func (g *Grid) Cols() int { return g.cols }

func (g *Grid) index(x, y int) int {
	return y*g.cols + x
}

// InBounds returns true if (x, y) is inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.cols && y >= 0 && y < g.rows
}

// Get returns the color at (x, y), or ColorNone when out of bounds.
func (g *Grid) Get(x, y int) core.Color {
	if !g.InBounds(x, y) {
		return core.ColorNone
	}
	return g.cells[g.index(x, y)]
}

// IsOccupied reports whether (x, y) blocks a piece.
// Left, right and bottom walls block; rows above the top (y < 0) never do.
func (g *Grid) IsOccupied(x, y int) bool {
	if x < 0 || x >= g.cols || y >= g.rows {
		return true
	}
	if y < 0 {
		return false
	}
	return !g.cells[g.index(x, y)].Empty()
}

// Set writes a color into (x, y). Writing outside the grid panics.
func (g *Grid) Set(x, y int, c core.Color) {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("engine: Set(%d, %d) outside %dx%d grid", x, y, g.rows, g.cols))
	}
	g.cells[g.index(x, y)] = c
}

// RowFull returns true if every cell in row y is filled.
func (g *Grid) RowFull(y int) bool {
	start := g.index(0, y)
	for _, c := range g.cells[start : start+g.cols] {
		if c.Empty() {
			return false
		}
	}
	return true
}

// Row returns a copy of row y.
func (g *Grid) Row(y int) []core.Color {
	row := make([]core.Color, g.cols)
	copy(row, g.cells[g.index(0, y):])
	return row
}

// ClearFullRows removes every full row and returns how many were removed.
//
// Rows are compacted bottom-up in a single pass: each surviving row is copied
// to the lowest free slot, so the rows that shift down are checked like any
// other and multiple full rows (adjacent or not) all go in one call. The freed
// rows at the top are emptied.
func (g *Grid) ClearFullRows() int {
	write := g.rows - 1
	for read := g.rows - 1; read >= 0; read-- {
		if g.RowFull(read) {
			continue
		}
		if write != read {
			copy(g.cells[g.index(0, write):g.index(0, write)+g.cols], g.cells[g.index(0, read):])
		}
		write--
	}

	removed := write + 1
	for i := range g.cells[:removed*g.cols] {
		g.cells[i] = core.ColorNone
	}
	return removed
}

// FilledCount returns the number of non-empty cells.
func (g *Grid) FilledCount() int {
	n := 0
	for _, c := range g.cells {
		if !c.Empty() {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]core.Color, len(g.cells))
	copy(cells, g.cells)
	return &Grid{rows: g.rows, cols: g.cols, cells: cells}
}

// Equal returns true if both grids have the same size and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}
