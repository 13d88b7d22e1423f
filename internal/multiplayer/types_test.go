package multiplayer

import "testing"

type cpuGame struct{}

func (cpuGame) Mode() MatchMode { return MatchModeVsCPU }

func TestNewMatchSeats(t *testing.T) {
	tests := []struct {
		mode MatchMode
		p2   string
	}{
		{MatchModeSolo, ""},
		{MatchModeVsCPU, "CPU"},
		{MatchModeLocal, "Player 2"},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			m := NewMatch(NewMatchID(), tt.mode, NewSessionID(), "alice")
			if m.Name(Player1) != "alice" {
				t.Errorf("seat 1 = %q, want alice", m.Name(Player1))
			}
			if m.Name(Player2) != tt.p2 {
				t.Errorf("seat 2 = %q, want %q", m.Name(Player2), tt.p2)
			}
		})
	}

	var nilMatch *Match
	if nilMatch.Name(Player2) != "Player 2" {
		t.Error("nil match should name seats generically")
	}
}

func TestIDsAreUnique(t *testing.T) {
	if NewSessionID() == NewSessionID() {
		t.Error("session ids collide")
	}
	if NewMatchID() == NewMatchID() {
		t.Error("match ids collide")
	}
}

func TestModeOf(t *testing.T) {
	if ModeOf(cpuGame{}) != MatchModeVsCPU {
		t.Error("ModeOf should use the declared mode")
	}
	if ModeOf(struct{}{}) != MatchModeSolo {
		t.Error("ModeOf should default to solo")
	}
}
