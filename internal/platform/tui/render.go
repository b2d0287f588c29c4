package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
)

// Board layout constants
const (
	cellWidth    = 2  // Screen columns per board cell
	sidebarGap   = 2  // Space between board and sidebar
	sidebarWidth = 16 // Width of the score sidebar
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorNone:   lipgloss.NewStyle(),
	core.ColorCyan:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBlue:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorOrange: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorPurple: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorGray:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorNone]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// BoardSize returns the screen area needed to draw a rows x cols board with
// its border and sidebar.
func BoardSize(rows, cols int) (w, h int) {
	return cols*cellWidth + 2 + sidebarGap + sidebarWidth, rows + 2
}

// DrawBoard paints a snapshot onto the screen: the bordered board with the
// live piece, the sidebar and, when the session is over, an overlay.
// If the screen is too small a notice is drawn instead.
func DrawBoard(s *core.Screen, snap engine.Snapshot) {
	s.Clear()

	w, h := BoardSize(snap.Rows, snap.Cols)
	if s.Width() < w || s.Height() < h {
		s.DrawTextCentered(s.Height()/2, "Terminal too small")
		s.DrawTextCentered(s.Height()/2+1, fmt.Sprintf("need %dx%d", w, h))
		return
	}

	area := core.NewRect(0, 0, s.Width(), s.Height()).Centered(w, h)
	board := core.NewRect(area.X, area.Y, snap.Cols*cellWidth+2, snap.Rows+2)
	s.DrawBox(board)

	for y, row := range snap.Composite() {
		for x, c := range row {
			sx := board.X + 1 + x*cellWidth
			sy := board.Y + 1 + y
			if c.Empty() {
				s.SetColored(sx+1, sy, '·', core.ColorGray)
				continue
			}
			s.SetColored(sx, sy, '█', c)
			s.SetColored(sx+1, sy, '█', c)
		}
	}

	drawSidebar(s, board.Right()+sidebarGap, board.Y+1, snap)

	if snap.GameOver {
		drawGameOver(s, board, snap)
	}
}

func drawSidebar(s *core.Screen, x, y int, snap engine.Snapshot) {
	s.DrawTextColored(x, y, "BLOCKFALL", core.ColorWhite)
	s.DrawText(x, y+2, "Score")
	s.DrawTextColored(x, y+3, fmt.Sprintf("%d", snap.Score), core.ColorYellow)
	s.DrawText(x, y+5, "Lines")
	s.DrawTextColored(x, y+6, fmt.Sprintf("%d", snap.Lines), core.ColorCyan)
	s.DrawText(x, y+8, "Speed")
	s.DrawTextColored(x, y+9, fmt.Sprintf("%dms", snap.Interval.Milliseconds()), core.ColorGreen)
	s.DrawTextColored(x, y+11, fmt.Sprintf("seed %d", snap.Seed), core.ColorGray)
}

func drawGameOver(s *core.Screen, board core.Rect, snap engine.Snapshot) {
	lines := []string{
		"GAME OVER",
		fmt.Sprintf("score %d", snap.Score),
		"r: restart",
	}
	box := board.Centered(board.W-4, len(lines)+2)
	s.DrawRect(box, ' ')
	s.DrawBox(box)
	for i, line := range lines {
		c := core.ColorWhite
		if i == 0 {
			c = core.ColorRed
		}
		lx := box.X + (box.W-len(line))/2
		s.DrawTextColored(lx, box.Y+1+i, line, c)
	}
}
