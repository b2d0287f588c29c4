package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/replay"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// maxReplays is how many recent replays the browser loads.
const maxReplays = 100

// ReplaysKeyMap defines the key bindings for the replay browser.
type ReplaysKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplaysKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Delete, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReplaysKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open},
		{k.Delete, k.Back, k.Quit},
	}
}

// DefaultReplaysKeyMap returns default key bindings.
func DefaultReplaysKeyMap() ReplaysKeyMap {
	return ReplaysKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "play back"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplaysModel is the Bubble Tea model for browsing the replay journal.
type ReplaysModel struct {
	store    *storage.Store
	entries  []storage.ReplayEntry
	table    table.Model
	help     help.Model
	keys     ReplaysKeyMap
	width    int
	height   int
	quitting bool
	err      error

	// Playback view, shown when open is true
	open     bool
	screen   *core.Screen
	verdict  string
	playback engine.Snapshot
}

// NewReplaysModel creates a new replay browser.
func NewReplaysModel(store *storage.Store, width, height int) ReplaysModel {
	h := help.New()
	h.ShowAll = false

	m := ReplaysModel{
		store:  store,
		keys:   DefaultReplaysKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the window.
func (m *ReplaysModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Started", Width: 14},
		{Title: "Preset", Width: 8},
		{Title: "Score", Width: 8},
		{Title: "Lines", Width: 6},
		{Title: "Time", Width: 8},
		{Title: "End", Width: 9},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the most recent replays.
func (m *ReplaysModel) load() {
	m.entries = nil
	if m.store != nil {
		entries, err := m.store.Replays(maxReplays)
		if err != nil {
			m.err = err
		} else {
			m.entries = entries
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded entries.
func (m *ReplaysModel) updateTableRows() {
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		end := "stopped"
		if e.GameOver {
			end = "game over"
		}
		preset := e.Preset
		if preset == "" {
			preset = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", e.ID),
			e.StartedAt.Local().Format("Jan 02 15:04"),
			preset,
			fmt.Sprintf("%d", e.Score),
			fmt.Sprintf("%d", e.Lines),
			e.Duration().Round(time.Second).String(),
			end,
		}
	}
	m.table.SetRows(rows)
}

// selected returns the entry under the cursor.
func (m ReplaysModel) selected() (storage.ReplayEntry, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.entries) {
		return storage.ReplayEntry{}, false
	}
	return m.entries[i], true
}

// openSelected loads and re-simulates the selected replay.
func (m *ReplaysModel) openSelected() {
	entry, ok := m.selected()
	if !ok {
		return
	}

	rec, err := m.store.LoadReplay(entry.ID)
	if err != nil || rec == nil {
		m.verdict = fmt.Sprintf("cannot load replay %d: %v", entry.ID, err)
		m.open = true
		return
	}

	snap, err := replay.Verify(*rec)
	switch {
	case errors.Is(err, replay.ErrMismatch):
		m.verdict = err.Error()
	case err != nil:
		m.verdict = fmt.Sprintf("playback failed: %v", err)
	default:
		m.verdict = fmt.Sprintf("replay %d verified: %d events", rec.ID, len(rec.Events))
	}
	m.playback = snap
	m.screen = core.NewScreen(m.width, max(m.height-2, 0))
	m.open = true
}

// Init initializes the replay browser.
func (m ReplaysModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the replay browser.
func (m ReplaysModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			if m.open {
				m.open = false
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit

		case m.open:
			return m, nil

		case key.Matches(msg, m.keys.Open):
			m.openSelected()
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if entry, ok := m.selected(); ok && m.store != nil {
				if err := m.store.DeleteReplay(entry.ID); err != nil {
					m.err = err
				}
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		if m.open {
			m.screen = core.NewScreen(m.width, max(m.height-2, 0))
		}
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the replay browser.
func (m ReplaysModel) View() string {
	if m.quitting {
		return ""
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	if m.open {
		var b strings.Builder
		if m.screen != nil && m.playback.Rows > 0 {
			DrawBoard(m.screen, m.playback)
			b.WriteString(RenderScreen(m.screen))
			b.WriteString("\n")
		}
		b.WriteString(m.verdict)
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("esc/b: back  q: quit"))
		return b.String()
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("REPLAYS", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ReplaysModel) renderTableContent() string {
	if len(m.entries) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No replays recorded yet.\nPlay a game to record one!")
	}

	return m.table.View()
}

// centerText pads text on the left to center it in width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}

// RunReplays runs the replay browser until the user leaves it.
func RunReplays(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewReplaysModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
