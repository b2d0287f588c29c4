// Package tui provides the Bubble Tea front end for blockfall.
// It maps keys to engine commands and draws the frames the scheduler publishes.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/scheduler"
)

// FrameMsg carries a new frame from the scheduler.
type FrameMsg scheduler.Frame

// framesClosedMsg is sent when the scheduler has stopped.
type framesClosedMsg struct{}

// waitForFrame returns a command that blocks until the next frame.
// The model re-issues it after every FrameMsg, so there is at most one
// reader at a time.
func waitForFrame(frames <-chan scheduler.Frame) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-frames
		if !ok {
			return framesClosedMsg{}
		}
		return FrameMsg(f)
	}
}
