package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabletop/arcade/internal/config"
	"github.com/tabletop/arcade/internal/core"
	_ "github.com/tabletop/arcade/internal/games/chess"
	_ "github.com/tabletop/arcade/internal/games/rps"
)

func sendSession(m SessionModel, msgs ...tea.Msg) SessionModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(SessionModel)
	}
	return m
}

func newTestSession() SessionModel {
	return NewSessionModel(SessionOptions{
		Settings: config.DefaultSettings(),
		Player:   "alice",
	}, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
}

func menuIndex(m SessionModel, id string) int {
	for i, item := range m.menu.items {
		if item.GameID == id {
			return i
		}
	}
	return -1
}

func TestMenuHidesLocalChess(t *testing.T) {
	m := newTestSession()
	if menuIndex(m, "chess_local") >= 0 {
		t.Error("chess_local listed in the main menu")
	}
	if menuIndex(m, "chess") < 0 || menuIndex(m, "rps") < 0 {
		t.Error("registered games missing from the menu")
	}
}

func TestSessionChessModeSelector(t *testing.T) {
	m := newTestSession()
	m.menu.cursor = menuIndex(m, "chess")
	m = sendSession(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenChess {
		t.Fatalf("screen = %v, want chess menu", m.screen)
	}

	// second option: local two player
	m = sendSession(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame || m.gameModel == nil {
		t.Fatalf("screen = %v, want game", m.screen)
	}
	if m.gameModel.game.ID() != "chess_local" {
		t.Errorf("started %q", m.gameModel.game.ID())
	}

	m = sendSession(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu || m.quitting {
		t.Errorf("esc left the session in screen %v", m.screen)
	}
}

func TestSessionChessBackToMenu(t *testing.T) {
	m := newTestSession()
	m.menu.cursor = menuIndex(m, "chess")
	m = sendSession(m, tea.KeyMsg{Type: tea.KeyEnter}, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Errorf("screen = %v, want menu", m.screen)
	}
}

func TestSessionScoreboardAndBeats(t *testing.T) {
	m := newTestSession()
	m = sendSession(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatalf("screen = %v, want scores", m.screen)
	}
	m = sendSession(m, tea.KeyMsg{Type: tea.KeyEsc})
	m = sendSession(m, runeKey('b'))
	if m.screen != screenBeats {
		t.Fatalf("screen = %v, want beats", m.screen)
	}
	if m.View() == "" {
		t.Error("beats view is empty")
	}
	m = sendSession(m, runeKey('q'))
	if !m.quitting {
		t.Error("q did not quit the session")
	}
}
