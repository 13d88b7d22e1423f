package rps

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		player, computer Choice
		want             Result
	}{
		{Rock, Rock, Draw},
		{Paper, Paper, Draw},
		{Scissors, Scissors, Draw},
		{Rock, Scissors, PlayerWins},
		{Scissors, Paper, PlayerWins},
		{Paper, Rock, PlayerWins},
		{Scissors, Rock, ComputerWins},
		{Paper, Scissors, ComputerWins},
		{Rock, Paper, ComputerWins},
	}
	for _, tt := range tests {
		if got := Resolve(tt.player, tt.computer); got != tt.want {
			t.Errorf("Resolve(%v, %v) = %v, want %v", tt.player, tt.computer, got, tt.want)
		}
	}
}

func TestResolveIsAntisymmetric(t *testing.T) {
	for _, a := range Choices {
		for _, b := range Choices {
			ab, ba := Resolve(a, b), Resolve(b, a)
			switch ab {
			case Draw:
				if ba != Draw {
					t.Errorf("%v vs %v: draw one way only", a, b)
				}
			case PlayerWins:
				if ba != ComputerWins {
					t.Errorf("%v vs %v: both sides win", a, b)
				}
			}
		}
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		in   string
		want Choice
		ok   bool
	}{
		{"r", Rock, true},
		{"ROCK", Rock, true},
		{"2", Paper, true},
		{"scissor", Scissors, true},
		{"s", Scissors, true},
		{"x", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseChoice(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseChoice(%q) = %v %v, want %v %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
