package engine

import (
	"testing"

	"github.com/vovakirdan/blockfall/internal/core"
)

// gridFrom builds a grid from rows of '#' (filled) and '.' (empty).
func gridFrom(rows ...string) *Grid {
	g := NewGrid(len(rows), len(rows[0]))
	for y, r := range rows {
		for x, ch := range r {
			if ch == '#' {
				g.Set(x, y, core.ColorGray)
			}
		}
	}
	return g
}

// gridLines renders a grid back into '#' and '.' rows.
func gridLines(g *Grid) []string {
	out := make([]string, g.Rows())
	for y := range out {
		b := make([]byte, g.Cols())
		for x := range b {
			if g.Get(x, y).Empty() {
				b[x] = '.'
			} else {
				b[x] = '#'
			}
		}
		out[y] = string(b)
	}
	return out
}

func TestNewGridEmpty(t *testing.T) {
	g := NewGrid(20, 10)
	if g.Rows() != 20 || g.Cols() != 10 {
		t.Fatalf("size = %dx%d, expected 20x10", g.Rows(), g.Cols())
	}
	if g.FilledCount() != 0 {
		t.Errorf("new grid has %d filled cells", g.FilledCount())
	}
}

func TestGridIsOccupied(t *testing.T) {
	g := gridFrom(
		"....",
		".#..",
		"....",
	)

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"empty cell", 0, 0, false},
		{"filled cell", 1, 1, true},
		{"left wall", -1, 1, true},
		{"right wall", 4, 1, true},
		{"floor", 2, 3, true},
		{"above top", 2, -1, false},
		{"above top past wall", -1, -1, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := g.IsOccupied(tc.x, tc.y); got != tc.want {
				t.Errorf("IsOccupied(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestGridSetOutOfBoundsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Set outside the grid should panic")
		}
	}()
	NewGrid(2, 2).Set(2, 0, core.ColorRed)
}

func TestClearFullRows(t *testing.T) {
	tests := []struct {
		name    string
		before  []string
		after   []string
		removed int
	}{
		{
			name:    "nothing full",
			before:  []string{"...", "#.#", "##."},
			after:   []string{"...", "#.#", "##."},
			removed: 0,
		},
		{
			name:    "bottom row",
			before:  []string{"...", "#..", "###"},
			after:   []string{"...", "...", "#.."},
			removed: 1,
		},
		{
			name:    "adjacent rows",
			before:  []string{".#.", "###", "###"},
			after:   []string{"...", "...", ".#."},
			removed: 2,
		},
		{
			name:    "non-adjacent rows keep order",
			before:  []string{"#..", "###", ".#.", "###", "..#"},
			after:   []string{"...", "...", "#..", ".#.", "..#"},
			removed: 2,
		},
		{
			name:    "full row shifts into checked index",
			before:  []string{"#..", "###", "###", "###", ".##"},
			after:   []string{"...", "...", "...", "#..", ".##"},
			removed: 3,
		},
		{
			name:    "everything full",
			before:  []string{"##", "##"},
			after:   []string{"..", ".."},
			removed: 2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := gridFrom(tc.before...)
			if got := g.ClearFullRows(); got != tc.removed {
				t.Errorf("removed = %d, expected %d", got, tc.removed)
			}
			if g.Rows() != len(tc.before) {
				t.Errorf("rows = %d, grid height must not change", g.Rows())
			}
			got := gridLines(g)
			for y := range tc.after {
				if got[y] != tc.after[y] {
					t.Errorf("row %d = %q, expected %q", y, got[y], tc.after[y])
				}
			}
		})
	}
}

func TestClearFullRowsKeepsColors(t *testing.T) {
	g := NewGrid(3, 2)
	g.Set(0, 0, core.ColorRed)
	g.Set(1, 1, core.ColorCyan)
	g.Set(0, 2, core.ColorBlue)
	g.Set(1, 2, core.ColorBlue)

	g.ClearFullRows()

	if g.Get(0, 1) != core.ColorRed {
		t.Errorf("(0,1) = %s, expected red", g.Get(0, 1))
	}
	if g.Get(1, 2) != core.ColorCyan {
		t.Errorf("(1,2) = %s, expected cyan", g.Get(1, 2))
	}
}

func TestGridCloneIndependent(t *testing.T) {
	g := gridFrom("..", "#.")
	c := g.Clone()
	if !g.Equal(c) {
		t.Fatal("clone should equal original")
	}
	c.Set(1, 0, core.ColorGreen)
	if g.Equal(c) {
		t.Error("modifying clone changed the original")
	}
	row := g.Row(1)
	row[1] = core.ColorGreen
	if !g.Get(1, 1).Empty() {
		t.Error("Row should return a copy")
	}
}
