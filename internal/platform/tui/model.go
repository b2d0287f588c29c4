package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/replay"
	"github.com/vovakirdan/blockfall/internal/scheduler"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// helpHeight is the number of rows reserved below the board for the help line.
const helpHeight = 1

// Model is the Bubble Tea model for a blockfall game.
// It never touches the session directly: keys become scheduler commands and
// the view draws the latest frame the scheduler published.
type Model struct {
	sched    *scheduler.Scheduler
	frame    scheduler.Frame
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	logger   *log.Logger
	status   string // One-line notice, e.g. after a screenshot
	quitting bool
}

// NewModel creates a model that displays and controls sched.
func NewModel(sched *scheduler.Scheduler, cfg core.RuntimeConfig, logger *log.Logger) Model {
	h := help.New()
	h.ShowAll = false

	return Model{
		sched:  sched,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-helpHeight, 0)),
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   h,
		logger: logger,
	}
}

// Init starts listening for frames.
func (m Model) Init() tea.Cmd {
	return waitForFrame(m.sched.Frames())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen = core.NewScreen(msg.Width, max(msg.Height-helpHeight, 0))
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		m.frame = scheduler.Frame(msg)
		if m.frame.Cause == scheduler.CauseReset {
			m.status = ""
		}
		return m, waitForFrame(m.sched.Frames())

	case framesClosedMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)

	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionScreenshot:
		m.saveScreenshot()
		return m, nil
	case core.ActionRestart:
		m.sched.Reset()
		return m, nil
	}

	if cmd, ok := commandFor(action); ok {
		m.sched.Send(cmd)
	}
	return m, nil
}

// saveScreenshot saves the current board to a text file.
func (m *Model) saveScreenshot() {
	DrawBoard(m.screen, m.frame.Snapshot)

	dir := filepath.Join(os.Getenv("HOME"), ".blockfall", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("blockfall_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.status = "saved " + filepath.Base(path)
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.frame.Snapshot.Rows == 0 {
		return "starting..."
	}

	DrawBoard(m.screen, m.frame.Snapshot)
	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = m.status
	}
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(footer)
}

// NewScheduler builds a scheduler for one player. When saver is non-nil every
// session is recorded into it.
func NewScheduler(rules config.BlockfallConfig, rt core.RuntimeConfig, saver replay.Saver, logger *log.Logger) (*scheduler.Scheduler, error) {
	opts := []scheduler.Option{scheduler.WithLogger(logger)}
	if rt.Seed != 0 {
		opts = append(opts, scheduler.WithSeed(rt.Seed))
	}
	if saver != nil {
		opts = append(opts, scheduler.WithHook(replay.NewRecorder(saver, rt.Preset, logger)))
	}
	return scheduler.New(rules, opts...)
}

// Run plays blockfall in the local terminal until the player quits.
// When store is non-nil sessions are recorded into it.
func Run(rules config.BlockfallConfig, rt core.RuntimeConfig, store *storage.Store, logger *log.Logger) error {
	var saver replay.Saver
	if store != nil {
		w := replay.NewWriter(store, logger)
		defer w.Close()
		saver = w
	}

	sched, err := NewScheduler(rules, rt, saver, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		<-sched.Done()
	}()
	go sched.Run(ctx) //nolint:errcheck // Returns ctx.Err() on shutdown

	p := tea.NewProgram(
		NewModel(sched, rt, logger),
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}
