package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// fullHelpHeight is the number of rows FullHelp needs.
const fullHelpHeight = 4

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Options configures a game model.
type Options struct {
	Runtime core.RuntimeConfig
	Keys    KeyMap
	Player  string      // Recorded with saved scores
	Logger  *log.Logger // Nil discards output

	// InMenu lets the back key leave a paused or finished game.
	InMenu bool
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	player     string
	logger     *log.Logger
	inMenu     bool
	inputFrame core.InputFrame
	gameState  core.GameState
	played     time.Duration // Unpaused game time, counted in ticks
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the current game's result has been saved
}

// NewModel creates a new Bubble Tea model for the given game. The store
// may be nil.
func NewModel(game registry.Game, store *storage.Store, opts Options) Model {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	keys := opts.Keys
	if len(keys.Quit.Keys()) == 0 {
		km, err := DefaultKeyMap()
		if err != nil {
			logger.Error("default key map", "err", err)
		}
		keys = km
	}

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		game:       game,
		store:      store,
		config:     cfg,
		keys:       keys,
		help:       h,
		player:     opts.Player,
		logger:     logger,
		inMenu:     opts.InMenu,
		inputFrame: core.NewInputFrame(),
	}
	m.screen = core.NewScreen(cfg.ScreenW, m.screenHeight())

	// Reset here rather than in Init: Init has a value receiver.
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	return m
}

// screenHeight is the terminal height minus the help footer.
func (m Model) screenHeight() int {
	rows := 1
	if m.help.ShowAll {
		rows = fullHelpHeight
	}
	return max(m.config.ScreenH-rows, 1)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		if err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.screen.Resize(m.config.ScreenW, m.screenHeight())
		return m, nil

	case m.inMenu && key.Matches(msg, m.keys.Back) && (m.gameState.GameOver || m.gameState.Paused):
		m.backToMenu = true
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(action)
		}
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize resizes the screen. Games render at any size, so the
// session keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.screen.Resize(msg.Width, m.screenHeight())
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.played = 0
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if !m.gameState.Paused && !m.scoreSaved {
		m.played += tickInterval(m.config.TickRate)
	}

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveResult()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveResult records the finished game. Failures are logged and the game
// goes on.
func (m Model) saveResult() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}

	res := storage.Result{
		GameID:   m.game.ID(),
		Player:   m.player,
		Score:    m.gameState.Score,
		Lines:    m.gameState.Lines,
		Level:    m.gameState.Level,
		Duration: m.played,
		Won:      m.gameState.Won,
	}
	if _, err := m.store.SaveResult(res); err != nil {
		m.logger.Error("save result", "game", res.GameID, "player", res.Player, "err", err)
		return
	}
	m.logger.Info("result saved", "game", res.GameID, "player", res.Player, "score", res.Score, "lines", res.Lines)
}

// saveScreenshot writes the current screen as plain text to
// ~/.tetris/screenshots.
func (m Model) saveScreenshot() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}

	dir := filepath.Join(home, ".tetris", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}

	m.game.Render(m.screen)
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	return nil
}

// View renders the game and the help footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// State returns the last known game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if the player asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the player asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one game in the current terminal.
func Run(game registry.Game, store *storage.Store, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, store, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
