package engine

import (
	"testing"

	"github.com/vovakirdan/blockfall/internal/core"
)

func TestCatalog(t *testing.T) {
	tests := []struct {
		kind  Kind
		rows  []string
		color core.Color
	}{
		{KindI, []string{"####"}, core.ColorCyan},
		{KindO, []string{"##", "##"}, core.ColorBlue},
		{KindL, []string{"###", "#.."}, core.ColorOrange},
		{KindJ, []string{"###", "..#"}, core.ColorYellow},
		{KindZ, []string{"##.", ".##"}, core.ColorGreen},
		{KindS, []string{".##", "##."}, core.ColorRed},
		{KindT, []string{".#.", "###"}, core.ColorPurple},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			tet := Lookup(tc.kind)
			if !tet.Shape.Equal(parseShape(tc.rows...)) {
				t.Errorf("shape = %v, expected %v", tet.Shape, tc.rows)
			}
			if tet.Color != tc.color {
				t.Errorf("color = %s, expected %s", tet.Color, tc.color)
			}
			count := 0
			tet.Shape.Cells(func(int, int) { count++ })
			if count != 4 {
				t.Errorf("%s has %d cells, expected 4", tc.kind, count)
			}
		})
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	a := Lookup(KindT)
	a.Shape[0][0] = true
	if Lookup(KindT).Shape[0][0] {
		t.Error("mutating a looked-up shape changed the catalog")
	}
}

func TestRotateClockwise(t *testing.T) {
	got := parseShape(".#.", "###").Rotate()
	want := parseShape("#.", "##", "#.")
	if !got.Equal(want) {
		t.Errorf("T rotated = %v, expected %v", got, want)
	}

	got = parseShape("###", "#..").Rotate()
	want = parseShape("##", ".#", ".#")
	if !got.Equal(want) {
		t.Errorf("L rotated = %v, expected %v", got, want)
	}
}

func TestRotateFourTimesIsIdentity(t *testing.T) {
	for _, k := range Kinds() {
		orig := Lookup(k).Shape
		s := orig
		for range 4 {
			s = s.Rotate()
		}
		if !s.Equal(orig) {
			t.Errorf("%s: four rotations = %v, expected %v", k, s, orig)
		}
	}

	o := Lookup(KindO).Shape
	if !o.Rotate().Equal(o) {
		t.Error("O should be invariant under one rotation")
	}
}

func TestRotateDoesNotMutate(t *testing.T) {
	s := Lookup(KindL).Shape
	before := s.Clone()
	_ = s.Rotate()
	if !s.Equal(before) {
		t.Error("Rotate mutated its receiver")
	}
}

func TestHasCollision(t *testing.T) {
	g := gridFrom(
		"..........",
		"..........",
		"..........",
		".....#....",
	)
	horizI := NewPiece(KindI, 3, 0)
	vertI := horizI.Clone()
	vertI.Shape = vertI.Shape.Rotate()

	tests := []struct {
		name   string
		p      Piece
		dx, dy int
		want   bool
	}{
		{"free at spawn", horizI, 0, 0, false},
		{"free moving down", horizI, 0, 1, false},
		{"hits locked cell", horizI, 0, 3, true},
		{"left wall", NewPiece(KindI, 0, 0), -1, 0, true},
		{"right wall", NewPiece(KindI, 6, 0), 1, 0, true},
		{"touching right wall is fine", NewPiece(KindI, 5, 0), 1, 0, false},
		{"floor", NewPiece(KindI, 0, 3), 0, 1, true},
		{"above top never collides", Piece{Shape: vertI.Shape, X: 0, Y: -3}, 0, 0, false},
		{"partly above top hits locked cell", Piece{Shape: vertI.Shape, X: 5, Y: -1}, 0, 1, true},
		{"partly above top free", Piece{Shape: vertI.Shape, X: 4, Y: -2}, 0, 1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasCollision(tc.p, g, tc.dx, tc.dy); got != tc.want {
				t.Errorf("HasCollision() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestMergeSkipsCellsAboveTop(t *testing.T) {
	g := NewGrid(4, 4)
	p := Piece{Shape: parseShape("#", "#", "#", "#"), Color: core.ColorCyan, X: 1, Y: -2}
	merge(p, g)

	if g.FilledCount() != 2 {
		t.Errorf("filled = %d, expected 2", g.FilledCount())
	}
	if g.Get(1, 0) != core.ColorCyan || g.Get(1, 1) != core.ColorCyan {
		t.Error("visible cells should carry the piece color")
	}
}
