package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func defaultKeys(t *testing.T) KeyMap {
	t.Helper()
	km, err := DefaultKeyMap()
	if err != nil {
		t.Fatalf("DefaultKeyMap() failed: %v", err)
	}
	return km
}

func TestDefaultKeyMapActions(t *testing.T) {
	km := defaultKeys(t)

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"a", runes("a"), core.ActionLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"up rotates", tea.KeyMsg{Type: tea.KeyUp}, core.ActionRotateCW},
		{"z rotates back", runes("z"), core.ActionRotateCCW},
		{"down soft drops", tea.KeyMsg{Type: tea.KeyDown}, core.ActionSoftDrop},
		{"space hard drops", spaceKey, core.ActionHardDrop},
		{"c holds", runes("c"), core.ActionHold},
		{"p pauses", runes("p"), core.ActionPause},
		{"esc pauses", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{"r restarts", runes("r"), core.ActionRestart},
		{"q quits", runes("q"), core.ActionQuit},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runes("m"), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.Action(tc.msg); got != tc.want {
				t.Errorf("Action(%q) = %s, expected %s", tc.msg.String(), got, tc.want)
			}
		})
	}
}

func TestNewKeyMapCustom(t *testing.T) {
	keys := config.DefaultTetrisConfig().Keys
	keys.HardDrop = []string{"enter"}
	keys.Quit = []string{"x"}

	km, err := NewKeyMap(keys)
	if err != nil {
		t.Fatalf("NewKeyMap() failed: %v", err)
	}

	if got := km.Action(tea.KeyMsg{Type: tea.KeyEnter}); got != core.ActionHardDrop {
		t.Errorf("enter = %s, expected HardDrop", got)
	}
	if got := km.Action(spaceKey); got != core.ActionNone {
		t.Errorf("space should be unbound, got %s", got)
	}
	// Quit wins over the default rotate binding on x.
	if got := km.Action(runes("x")); got != core.ActionQuit {
		t.Errorf("x = %s, expected Quit", got)
	}
}

func TestNewKeyMapMissingBinding(t *testing.T) {
	keys := config.DefaultTetrisConfig().Keys
	keys.Hold = nil

	_, err := NewKeyMap(keys)
	if !errors.Is(err, ErrMissingBinding) {
		t.Fatalf("expected ErrMissingBinding, got %v", err)
	}

	var mb *MissingBindingError
	if !errors.As(err, &mb) || mb.Action != core.ActionHold {
		t.Errorf("error should name the Hold action, got %v", err)
	}
}

func TestHelpListsBindings(t *testing.T) {
	km := defaultKeys(t)

	if len(km.ShortHelp()) == 0 {
		t.Error("short help should not be empty")
	}
	if got := len(km.FullHelp()); got == 0 {
		t.Error("full help should not be empty")
	}
	for _, col := range km.FullHelp() {
		if len(col) > fullHelpHeight {
			t.Errorf("help column has %d rows, footer reserves %d", len(col), fullHelpHeight)
		}
	}
	if km.HardDrop.Help().Key != "space" {
		t.Errorf("hard drop help key = %q, expected space", km.HardDrop.Help().Key)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runes("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runes("b"), MenuActionBack},
		{runes("q"), MenuActionQuit},
		{runes("m"), MenuActionNone},
	}

	for _, tc := range tests {
		if got := MapKeyToMenuAction(tc.msg); got != tc.want {
			t.Errorf("MapKeyToMenuAction(%q) = %d, expected %d", tc.msg.String(), got, tc.want)
		}
	}
}
