package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabletop/arcade/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		gameOver bool
		want     core.Action
		quit     bool
	}{
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, false, core.ActionUp, false},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, false, core.ActionLeft, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, false, core.ActionSelect, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, false, core.ActionConfirm, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, false, core.ActionBack, false},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, false, core.ActionPause, false},
		{"q", runeKey('q'), false, core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, false, core.ActionQuit, true},
		{"r while playing", runeKey('r'), false, core.ActionNone, false},
		{"r after game over", runeKey('r'), true, core.ActionRestart, false},
		{"w is a pad, not up", runeKey('w'), false, core.ActionNone, false},
		{"k is a pad, not up", runeKey('k'), false, core.ActionNone, false},
		{"j is a pad, not down", runeKey('j'), false, core.ActionNone, false},
		{"a is a pad, not left", runeKey('a'), false, core.ActionNone, false},
		{"l is a pad, not right", runeKey('l'), false, core.ActionNone, false},
		{"p is not pause", runeKey('p'), false, core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, quit := km.MapKey(tt.msg, tt.gameOver)
			if got != tt.want || quit != tt.quit {
				t.Errorf("MapKey = %v, %v; want %v, %v", got, quit, tt.want, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrameRecordsRunes(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	km.MapKeyToFrame(runeKey('k'), &frame, false)
	km.MapKeyToFrame(runeKey('r'), &frame, true)
	km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyEnter}, &frame, false)

	if string(frame.Keys) != "kr" {
		t.Errorf("keys = %q, want %q", string(frame.Keys), "kr")
	}
	if !frame.Has(core.ActionRestart) || !frame.Has(core.ActionConfirm) {
		t.Errorf("actions = %v", frame.Actions)
	}
	if quit := km.MapKeyToFrame(runeKey('q'), &frame, false); !quit {
		t.Error("q should quit")
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	km.MapMouseToFrame(tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, &frame)
	km.MapMouseToFrame(tea.MouseMsg{X: 5, Y: 6, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}, &frame)
	km.MapMouseToFrame(tea.MouseMsg{X: 7, Y: 8, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, &frame)

	if len(frame.Clicks) != 1 || frame.Clicks[0] != (core.Point{X: 3, Y: 4}) {
		t.Errorf("clicks = %v", frame.Clicks)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('b'), MenuActionBeats},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('z'), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}
