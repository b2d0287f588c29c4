package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/replay"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.blockfall/host_key.
	HostKeyPath string

	// DBPath is the path to the replay journal. Empty disables recording.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Rules and Preset apply to every session.
	Rules  config.BlockfallConfig
	Preset string
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.blockfall/replays.db",
		IdleTimeout: 30 * time.Minute,
		Rules:       config.DefaultBlockfallConfig(),
	}
}

// SSHServer serves blockfall over SSH. Every connection gets its own
// scheduler and session; players never share state.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	writer *replay.Writer // nil when store is nil
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	var store *storage.Store
	if cfg.DBPath != "" {
		var err error
		store, err = storage.Open(cfg.DBPath)
		if err != nil {
			logger.Warn("could not open replay journal", "error", err)
			// Continue without recording
			store = nil
		}
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}
	if store != nil {
		srv.writer = replay.NewWriter(store, logger)
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".blockfall", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if srv.writer != nil {
			srv.writer.Close()
		}
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler starts a scheduler bound to the SSH session's lifetime and
// returns the game model that drives it.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	rt := core.RuntimeConfig{
		ScreenW: pty.Window.Width,
		ScreenH: pty.Window.Height,
		Preset:  s.config.Preset,
	}

	logger := s.logger.With("user", sshSession.User())
	var saver replay.Saver
	if s.writer != nil {
		saver = s.writer
	}
	sched, err := NewScheduler(s.config.Rules, rt, saver, logger)
	if err != nil {
		logger.Error("cannot start session", "error", err)
		return nil, nil
	}
	go sched.Run(sshSession.Context()) //nolint:errcheck // Ends with the SSH session

	return NewModel(sched, rt, logger), []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("connection opened",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("connection closed",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server. Open sessions are closed first so
// their recordings reach the journal before it is closed.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)

	if s.writer != nil {
		s.writer.Close()
	}
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
