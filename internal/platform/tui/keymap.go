package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// ErrMissingBinding is returned when a game action has no keys bound.
var ErrMissingBinding = errors.New("tui: action has no keys")

// MissingBindingError names the unbound action.
type MissingBindingError struct {
	Action core.Action
}

func (e *MissingBindingError) Error() string {
	return fmt.Sprintf("tui: no keys bound to %s", e.Action)
}

func (e *MissingBindingError) Unwrap() error {
	return ErrMissingBinding
}

// KeyMap translates Bubble Tea key messages to game actions.
// Bindings come from the keys section of the game config.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	RotateCW   key.Binding
	RotateCCW  key.Binding
	SoftDrop   key.Binding
	HardDrop   key.Binding
	Hold       key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Quit       key.Binding
	Back       key.Binding
	Screenshot key.Binding
	Help       key.Binding
}

// NewKeyMap builds a key map from config. Every game action needs at
// least one key.
func NewKeyMap(cfg config.KeysConfig) (KeyMap, error) {
	specs := []struct {
		action core.Action
		keys   []string
		help   string
	}{
		{core.ActionLeft, cfg.Left, "left"},
		{core.ActionRight, cfg.Right, "right"},
		{core.ActionRotateCW, cfg.RotateCW, "rotate"},
		{core.ActionRotateCCW, cfg.RotateCCW, "rotate ccw"},
		{core.ActionSoftDrop, cfg.SoftDrop, "soft drop"},
		{core.ActionHardDrop, cfg.HardDrop, "hard drop"},
		{core.ActionHold, cfg.Hold, "hold"},
		{core.ActionPause, cfg.Pause, "pause"},
		{core.ActionRestart, cfg.Restart, "restart"},
		{core.ActionQuit, cfg.Quit, "quit"},
	}

	var km KeyMap
	targets := []*key.Binding{
		&km.Left, &km.Right, &km.RotateCW, &km.RotateCCW, &km.SoftDrop,
		&km.HardDrop, &km.Hold, &km.Pause, &km.Restart, &km.Quit,
	}

	for i, s := range specs {
		if len(s.keys) == 0 {
			return KeyMap{}, &MissingBindingError{Action: s.action}
		}
		*targets[i] = binding(s.keys, s.help)
	}

	km.Back = key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "menu"))
	km.Screenshot = key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "screenshot"))
	km.Help = key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help"))
	return km, nil
}

// DefaultKeyMap returns the key map for the built-in config.
func DefaultKeyMap() (KeyMap, error) {
	return NewKeyMap(config.DefaultTetrisConfig().Keys)
}

// binding creates a key binding. "space" becomes the literal space Bubble
// Tea reports.
func binding(keys []string, desc string) key.Binding {
	normalized := make([]string, len(keys))
	for i, k := range keys {
		if k == "space" {
			k = " "
		}
		normalized[i] = k
	}

	label := keys[0]
	if len(keys) > 1 {
		label = strings.Join(keys[:2], "/")
	}
	return key.NewBinding(key.WithKeys(normalized...), key.WithHelp(label, desc))
}

// Action maps a key to a game action. Quit is checked first so it cannot
// be shadowed by a game binding.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.RotateCW):
		return core.ActionRotateCW
	case key.Matches(msg, k.RotateCCW):
		return core.ActionRotateCCW
	case key.Matches(msg, k.SoftDrop):
		return core.ActionSoftDrop
	case key.Matches(msg, k.HardDrop):
		return core.ActionHardDrop
	case key.Matches(msg, k.Hold):
		return core.ActionHold
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.RotateCW, k.HardDrop, k.Hold, k.Pause, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.SoftDrop, k.HardDrop},
		{k.RotateCW, k.RotateCCW, k.Hold},
		{k.Pause, k.Restart, k.Back, k.Quit},
		{k.Screenshot, k.Help},
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
