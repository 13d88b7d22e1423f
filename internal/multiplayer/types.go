// Package multiplayer provides the match and session identities shared by the
// platform and the games. Matches are local: a solo run, a game against the
// computer, or two players sharing one keyboard.
package multiplayer

import (
	"github.com/google/uuid"

	"github.com/tabletop/arcade/internal/core"
)

// PlayerID is an alias to core.PlayerID for convenience.
// Player1 is always the local human player, Player2 is the CPU or the second
// hot-seat player.
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	Player1 = core.Player1
	Player2 = core.Player2
)

// SessionID uniquely identifies a player's session (a local run or an SSH
// connection).
type SessionID string

// NewSessionID returns a fresh random session id.
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// MatchID uniquely identifies a game match.
type MatchID string

// NewMatchID returns a fresh random match id.
func NewMatchID() MatchID {
	return MatchID(uuid.NewString())
}

// MatchMode defines how a game match is configured.
type MatchMode int

const (
	// MatchModeSolo is a single-player game (simon, drums).
	MatchModeSolo MatchMode = iota

	// MatchModeVsCPU is player vs computer (chess engine, rps).
	MatchModeVsCPU

	// MatchModeLocal is two players taking turns at one keyboard.
	MatchModeLocal
)

// String returns a human-readable name for the match mode.
func (m MatchMode) String() string {
	switch m {
	case MatchModeSolo:
		return "Solo"
	case MatchModeVsCPU:
		return "vs CPU"
	case MatchModeLocal:
		return "Local 2P"
	default:
		return "Unknown"
	}
}

// Moded is implemented by games that know their match mode.
type Moded interface {
	Mode() MatchMode
}

// ModeOf returns the mode a game declares, or MatchModeSolo.
func ModeOf(g any) MatchMode {
	if m, ok := g.(Moded); ok {
		return m.Mode()
	}
	return MatchModeSolo
}

// Match describes one played game and who sits at each seat.
type Match struct {
	id      MatchID
	mode    MatchMode
	session SessionID
	seats   map[PlayerID]string
}

// NewMatch creates a match. player names the local player; the second seat is
// named after the mode.
func NewMatch(id MatchID, mode MatchMode, session SessionID, player string) *Match {
	if player == "" {
		player = "Player 1"
	}
	seats := map[PlayerID]string{Player1: player}
	switch mode {
	case MatchModeVsCPU:
		seats[Player2] = "CPU"
	case MatchModeLocal:
		seats[Player2] = "Player 2"
	}
	return &Match{
		id:      id,
		mode:    mode,
		session: session,
		seats:   seats,
	}
}

// ID returns the match identifier.
func (m *Match) ID() MatchID {
	return m.id
}

// Mode returns the match mode.
func (m *Match) Mode() MatchMode {
	return m.mode
}

// Session returns the session the match was started from.
func (m *Match) Session() SessionID {
	return m.session
}

// Name returns the name of the player at seat p, or "" for an empty seat.
// A nil match names both seats generically.
func (m *Match) Name(p PlayerID) string {
	if m == nil {
		if p == Player1 {
			return "Player 1"
		}
		return "Player 2"
	}
	return m.seats[p]
}
