package engine

import (
	"time"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Snapshot is a read-only copy of a session for renderers and tests.
// Nothing in it aliases session state.
type Snapshot struct {
	Rows     int
	Cols     int
	Cells    [][]core.Color // Locked cells, [row][col]
	Piece    *Piece         // Live piece, nil when terminal
	Score    int
	Lines    int
	Ticks    int
	Interval time.Duration
	GameOver bool
	Seed     int64
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	cells := make([][]core.Color, s.grid.Rows())
	for y := range cells {
		cells[y] = s.grid.Row(y)
	}

	var piece *Piece
	if s.piece != nil {
		p := s.piece.Clone()
		piece = &p
	}

	return Snapshot{
		Rows:     s.grid.Rows(),
		Cols:     s.grid.Cols(),
		Cells:    cells,
		Piece:    piece,
		Score:    s.score,
		Lines:    s.lines,
		Ticks:    s.ticks,
		Interval: s.ramp.Interval(),
		GameOver: s.gameOver,
		Seed:     s.seed,
	}
}

// Composite returns the locked cells with the live piece painted on top.
// Piece cells above the top row are not shown.
func (s Snapshot) Composite() [][]core.Color {
	out := make([][]core.Color, len(s.Cells))
	for y, row := range s.Cells {
		out[y] = append([]core.Color(nil), row...)
	}
	if s.Piece != nil {
		s.Piece.Cells(func(x, y int) {
			if y >= 0 && y < s.Rows && x >= 0 && x < s.Cols {
				out[y][x] = s.Piece.Color
			}
		})
	}
	return out
}
