package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
)

// KeyMap defines the key bindings for the game screen.
// It centralizes bindings and makes them testable.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	SoftDrop   key.Binding
	Rotate     key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Rotate, k.SoftDrop, k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Rotate, k.SoftDrop},
		{k.Restart, k.Screenshot, k.Quit},
	}
}

// DefaultKeyMap returns arrow, WASD and vim-style bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		SoftDrop: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "drop"),
		),
		Rotate: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w", "rotate"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a player action.
// Returns ActionNone for unbound keys.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.SoftDrop):
		return core.ActionSoftDrop
	case key.Matches(msg, k.Rotate):
		return core.ActionRotate
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Screenshot):
		return core.ActionScreenshot
	}
	return core.ActionNone
}

// commandFor returns the engine command for a movement action.
func commandFor(a core.Action) (engine.Command, bool) {
	switch a {
	case core.ActionLeft:
		return engine.CommandMoveLeft, true
	case core.ActionRight:
		return engine.CommandMoveRight, true
	case core.ActionSoftDrop:
		return engine.CommandSoftDrop, true
	case core.ActionRotate:
		return engine.CommandRotate, true
	}
	return 0, false
}
