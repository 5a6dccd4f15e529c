package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// boardSize is how many results a scoreboard page loads.
const boardSize = 50

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardEmpty      = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
)

var boardActiveTab = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("229")).
	Background(lipgloss.Color("57")).
	Padding(0, 1)

var boardFrame = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

// FormatRunTime formats a run length as m:ss.cc.
func FormatRunTime(d time.Duration) string {
	cs := d.Milliseconds() / 10
	return fmt.Sprintf("%d:%02d.%02d", cs/6000, cs/100%60, cs%100)
}

// Rankings loads a game's leaderboard: the fastest won runs for races,
// the highest scores for everything else.
func Rankings(store *storage.Store, g registry.GameInfo, limit int) ([]storage.ScoreEntry, error) {
	if g.Race {
		return store.FastestRuns(g.ID, limit)
	}
	return store.TopScores(g.ID, limit)
}

// bestLabel summarizes a game's best result, or "" when there is none.
func bestLabel(store *storage.Store, g registry.GameInfo) string {
	if store == nil {
		return ""
	}
	if g.Race {
		if best, ok, err := store.BestTime(g.ID); err == nil && ok {
			return "best " + FormatRunTime(best)
		}
		return ""
	}
	if best, err := store.HighScore(g.ID); err == nil && best > 0 {
		return fmt.Sprintf("best %d", best)
	}
	return ""
}

// boardColumn is one scoreboard column and how to fill it.
type boardColumn struct {
	title string
	width int
	cell  func(e storage.ScoreEntry) string
}

var (
	colScore  = boardColumn{"Score", 8, func(e storage.ScoreEntry) string { return fmt.Sprint(e.Score) }}
	colLines  = boardColumn{"Lines", 5, func(e storage.ScoreEntry) string { return fmt.Sprint(e.Lines) }}
	colLevel  = boardColumn{"Lvl", 3, func(e storage.ScoreEntry) string { return fmt.Sprint(e.Level) }}
	colTime   = boardColumn{"Time", 8, func(e storage.ScoreEntry) string { return FormatRunTime(e.Duration) }}
	colPlayer = boardColumn{"Player", 12, func(e storage.ScoreEntry) string { return e.Player }}
	colDate   = boardColumn{"Date", 12, func(e storage.ScoreEntry) string { return e.CreatedAt.Format("Jan 02 15:04") }}

	scoreColumns = []boardColumn{colScore, colLines, colLevel, colTime, colPlayer, colDate}
	raceColumns  = []boardColumn{colTime, colScore, colLines, colPlayer, colDate}
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		NextGame: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next mode")),
		PrevGame: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev mode")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows one leaderboard per mode. Races are ranked by
// completion time, other modes by score.
type ScoreboardModel struct {
	games     []registry.GameInfo
	cursor    int
	store     *storage.Store
	entries   []storage.ScoreEntry
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a new scoreboard model. The store may be nil.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.load()
	return m
}

// current returns the selected game.
func (m ScoreboardModel) current() (registry.GameInfo, bool) {
	if len(m.games) == 0 {
		return registry.GameInfo{}, false
	}
	return m.games[m.cursor], true
}

func (m ScoreboardModel) columns() []boardColumn {
	if g, ok := m.current(); ok && g.Race {
		return raceColumns
	}
	return scoreColumns
}

// load fetches the selected game's leaderboard and rebuilds the table.
func (m *ScoreboardModel) load() {
	m.entries, m.loadErr = nil, nil
	if g, ok := m.current(); ok && m.store != nil {
		m.entries, m.loadErr = Rankings(m.store, g, boardSize)
	}
	m.rebuild()
}

// rebuild lays the table out for the current size and entries. Spare
// width goes to the player column.
func (m *ScoreboardModel) rebuild() {
	const rankWidth, cellPad, framePad = 4, 2, 4

	cols := m.columns()
	used := rankWidth + cellPad + framePad
	for _, c := range cols {
		used += c.width + cellPad
	}
	spare := max(m.width-used, 0)

	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: rankWidth})
	for _, c := range cols {
		w := c.width
		if c.title == colPlayer.title {
			w += min(spare, 12)
		}
		tcols = append(tcols, table.Column{Title: c.title, Width: w})
	}

	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		row := table.Row{fmt.Sprint(i + 1)}
		for _, c := range cols {
			row = append(row, c.cell(e))
		}
		rows[i] = row
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	// Title, tabs, frame and help take eight rows.
	m.table = table.New(
		table.WithColumns(tcols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
		table.WithStyles(styles),
	)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame):
			m.switchGame(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			m.switchGame(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.rebuild()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) switchGame(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.games)) % len(m.games)
	m.load()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES"
	g, ok := m.current()
	if ok && g.Race {
		title = "FASTEST RUNS"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(boardTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.games))
	for i, info := range m.games {
		if i == m.cursor {
			tabs[i] = boardActiveTab.Render(info.Title)
		} else {
			tabs[i] = boardTabStyle.Render(info.Title)
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n")

	var body string
	switch {
	case m.loadErr != nil:
		body = boardEmpty.Render("Could not load scores: " + m.loadErr.Error())
	case len(m.entries) == 0 && ok && g.Race:
		body = boardEmpty.Render("No finished runs yet.\nClear the goal to set a time!")
	case len(m.entries) == 0:
		body = boardEmpty.Render("No scores recorded yet.\nPlay a game to set a high score!")
	default:
		body = m.table.View()
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardFrame.Render(body)))
	b.WriteString("\n")
	b.WriteString(menuDim.Render(m.help.View(m.keys)))

	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen. It reports whether the user
// went back to the menu rather than quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
