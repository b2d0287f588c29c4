package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestKeyMapAction(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"a", runeKey('a'), core.ActionLeft},
		{"h", runeKey('h'), core.ActionLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"d", runeKey('d'), core.ActionRight},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, core.ActionSoftDrop},
		{"s", runeKey('s'), core.ActionSoftDrop},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionRotate},
		{"w", runeKey('w'), core.ActionRotate},
		{"r", runeKey('r'), core.ActionRestart},
		{"ctrl+s", tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionScreenshot},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runeKey('z'), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := keys.Action(tc.msg); got != tc.want {
				t.Errorf("Action(%s) = %s, expected %s", tc.msg, got, tc.want)
			}
		})
	}
}

func TestCommandFor(t *testing.T) {
	tests := []struct {
		action core.Action
		want   engine.Command
		ok     bool
	}{
		{core.ActionLeft, engine.CommandMoveLeft, true},
		{core.ActionRight, engine.CommandMoveRight, true},
		{core.ActionSoftDrop, engine.CommandSoftDrop, true},
		{core.ActionRotate, engine.CommandRotate, true},
		{core.ActionRestart, 0, false},
		{core.ActionNone, 0, false},
	}

	for _, tc := range tests {
		got, ok := commandFor(tc.action)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("commandFor(%s) = %s, %v", tc.action, got, ok)
		}
	}
}
