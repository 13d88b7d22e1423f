// Package rps is rock-paper-scissors against the computer.
package rps

import "strings"

// Choice is a hand shape.
type Choice int

const (
	Rock Choice = iota
	Paper
	Scissors
)

// Choices lists every hand in display order.
var Choices = []Choice{Rock, Paper, Scissors}

func (c Choice) String() string {
	switch c {
	case Rock:
		return "Rock"
	case Paper:
		return "Paper"
	case Scissors:
		return "Scissors"
	default:
		return "?"
	}
}

// beats maps each choice to the one it defeats.
var beats = map[Choice]Choice{
	Rock:     Scissors,
	Scissors: Paper,
	Paper:    Rock,
}

// ParseChoice accepts a choice name or its initial, case-insensitively.
func ParseChoice(s string) (Choice, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "r", "rock", "1":
		return Rock, true
	case "p", "paper", "2":
		return Paper, true
	case "s", "scissor", "scissors", "3":
		return Scissors, true
	}
	return 0, false
}

// Result is the outcome of one round from the player's side.
type Result int

const (
	Draw Result = iota
	PlayerWins
	ComputerWins
)

func (r Result) String() string {
	switch r {
	case PlayerWins:
		return "You win!"
	case ComputerWins:
		return "Computer wins!"
	default:
		return "It's a draw!"
	}
}

// Resolve decides a round. It has no state.
func Resolve(player, computer Choice) Result {
	switch {
	case player == computer:
		return Draw
	case beats[player] == computer:
		return PlayerWins
	default:
		return ComputerWins
	}
}
