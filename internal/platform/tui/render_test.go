package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
)

func testSnapshot() engine.Snapshot {
	cells := make([][]core.Color, 20)
	for y := range cells {
		cells[y] = make([]core.Color, 10)
	}
	cells[19][0] = core.ColorRed

	piece := engine.NewPiece(engine.KindO, 3, 0)
	return engine.Snapshot{
		Rows:     20,
		Cols:     10,
		Cells:    cells,
		Piece:    &piece,
		Score:    400,
		Lines:    2,
		Interval: 380 * time.Millisecond,
		Seed:     7,
	}
}

func TestDrawBoard(t *testing.T) {
	w, h := BoardSize(20, 10)
	s := core.NewScreen(w, h)
	DrawBoard(s, testSnapshot())

	// Border at the top-left, board cells start one in.
	if s.Get(0, 0) != '┌' {
		t.Errorf("expected box corner at (0,0), got %q", s.Get(0, 0))
	}
	if c := s.GetCell(1, 20); c.Rune != '█' || c.Color != core.ColorRed {
		t.Errorf("locked cell = %+v, expected red block", c)
	}
	// O piece at column 3 covers screen columns 7 and 8 on row 1.
	if c := s.GetCell(1+3*cellWidth, 1); c.Color != core.ColorBlue {
		t.Errorf("piece cell = %+v, expected blue", c)
	}

	text := s.String()
	for _, want := range []string{"Score", "400", "Lines", "380ms", "seed 7"} {
		if !strings.Contains(text, want) {
			t.Errorf("sidebar missing %q", want)
		}
	}
	if strings.Contains(text, "GAME OVER") {
		t.Error("live session should not show game over")
	}
}

func TestDrawBoardGameOver(t *testing.T) {
	snap := testSnapshot()
	snap.Piece = nil
	snap.GameOver = true

	w, h := BoardSize(20, 10)
	s := core.NewScreen(w, h)
	DrawBoard(s, snap)

	if !strings.Contains(s.String(), "GAME OVER") {
		t.Error("terminal session should show game over")
	}
}

func TestDrawBoardTooSmall(t *testing.T) {
	s := core.NewScreen(20, 10)
	DrawBoard(s, testSnapshot())

	if !strings.Contains(s.String(), "Terminal too small") {
		t.Error("expected too-small notice")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.DrawTextColored(2, 0, "cd", core.ColorCyan)
	out := RenderScreen(s)

	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 lines, got %q", out)
	}
	if !strings.Contains(out, "ab") || !strings.Contains(out, "cd") {
		t.Errorf("rendered output lost text: %q", out)
	}
}
