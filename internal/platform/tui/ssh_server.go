package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// MenuMode makes SSH sessions start in the mode picker instead of a game.
const MenuMode = "menu"

// ErrServerFull is reported to clients when MaxSessions are connected.
var ErrServerFull = errors.New("server full, try again later")

// SSHServer serves games over SSH with Wish. Each session gets its own
// Bubble Tea program; all sessions share one score store.
type SSHServer struct {
	config config.ServerConfig
	keys   KeyMap
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	active atomic.Int64
}

// NewSSHServer creates a server. A nil logger discards output. Storage
// failures are logged and the server runs without saving scores.
func NewSSHServer(cfg config.ServerConfig, keys KeyMap, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Mode == "" {
		cfg.Mode = MenuMode
	}
	if cfg.Mode != MenuMode && !registry.Exists(cfg.Mode) {
		return nil, fmt.Errorf("ssh: unknown mode %q", cfg.Mode)
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("ssh: home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".tetris", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("ssh: host key directory: %w", err)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		keys:   keys,
		store:  store,
		logger: logger,
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			activeterm.Middleware(),
			srv.limitMiddleware,
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("ssh: create server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: 60,
		Seed:     time.Now().UnixNano(),
	}

	model := NewSessionModel(s.store, SessionOptions{
		Runtime: cfg,
		Keys:    s.keys,
		Player:  sess.User(),
		Mode:    s.config.Mode,
		Logger:  s.logger.With("user", sess.User()),
	})
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// tryAcquire takes a session slot.
func (s *SSHServer) tryAcquire() bool {
	if s.active.Add(1) > int64(s.config.MaxSessions) {
		s.active.Add(-1)
		return false
	}
	return true
}

func (s *SSHServer) release() {
	s.active.Add(-1)
}

// limitMiddleware turns away sessions beyond MaxSessions.
func (s *SSHServer) limitMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		if !s.tryAcquire() {
			s.logger.Warn("session rejected", "user", sess.User(), "max", s.config.MaxSessions)
			wish.Fatalln(sess, ErrServerFull)
			return
		}
		defer s.release()
		next(sess)
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "mode", s.config.Mode)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errc:
		s.closeStore()
		return fmt.Errorf("ssh: serve: %w", err)
	}
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("close scores database", "err", err)
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	Runtime core.RuntimeConfig
	Keys    KeyMap
	Player  string
	Mode    string // A game ID, or MenuMode
	Logger  *log.Logger
}

// SessionModel manages one remote session: menu, game, scoreboard and
// back to the menu. With a game mode the session goes straight into that
// game and ends when the player quits.
type SessionModel struct {
	store      *storage.Store
	opts       SessionOptions
	menu       MenuModel
	scoreboard *ScoreboardModel
	game       *Model
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, opts SessionOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Mode == "" {
		opts.Mode = MenuMode
	}
	opts.Player = strings.TrimSpace(opts.Player)

	m := SessionModel{
		store: store,
		opts:  opts,
		menu:  NewMenuModel(store, opts.Runtime),
	}
	if opts.Mode != MenuMode {
		if err := m.startGame(opts.Mode); err != nil {
			opts.Logger.Error("start game", "err", err)
			m.opts.Mode = MenuMode
		}
	}
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.game != nil {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	switch {
	case m.game != nil:
		return m.updateGame(msg)
	case m.scoreboard != nil:
		return m.updateScoreboard(msg)
	}
	return m.updateMenu(msg)
}

// The child models return tea.Quit to leave their screen. Inside a
// session that would end the SSH program, so quit commands are dropped
// and the session switches screens instead.

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		sb := NewScoreboardModel(m.store, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		m.scoreboard = &sb
		return m, nil

	case m.menu.Selected() != nil:
		if err := m.startGame(m.menu.Selected().GameID); err != nil {
			m.opts.Logger.Error("start game", "err", err)
			m.menu = NewMenuModel(m.store, m.opts.Runtime)
			return m, nil
		}
		return m, m.game.Init()
	}

	return m, cmd
}

func (m *SessionModel) startGame(id string) error {
	game, err := registry.Create(id)
	if err != nil {
		return err
	}

	cfg := m.opts.Runtime
	cfg.Seed = time.Now().UnixNano()
	gm := NewModel(game, m.store, Options{
		Runtime: cfg,
		Keys:    m.opts.Keys,
		Player:  m.opts.Player,
		Logger:  m.opts.Logger,
		InMenu:  m.opts.Mode == MenuMode,
	})
	m.game = &gm
	m.opts.Logger.Info("game started", "game", id)
	return nil
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(Model); ok {
		m.game = &gm
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.game.BackToMenu():
		m.game = nil
		m.menu = NewMenuModel(m.store, m.opts.Runtime)
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.scoreboard.IsGoingBack():
		m.scoreboard = nil
		m.menu = NewMenuModel(m.store, m.opts.Runtime)
		return m, nil
	}

	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.game != nil:
		return m.game.View()
	case m.scoreboard != nil:
		return m.scoreboard.View()
	}
	return m.menu.View()
}

// InGame reports whether a game is running.
func (m SessionModel) InGame() bool {
	return m.game != nil
}
