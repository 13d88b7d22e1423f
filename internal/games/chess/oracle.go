// Package chess implements a chess board with two-click move entry. Rules,
// turn order and game-over detection are delegated to
// github.com/corentings/chess/v2; best moves come from a UCI engine.
package chess

import (
	"errors"
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"
)

// ErrIllegalMove is returned by Oracle.Apply for moves the rules reject.
var ErrIllegalMove = errors.New("chess: illegal move")

// Oracle answers rule questions about one game in progress.
type Oracle struct {
	game    *nchess.Game
	history []string // applied moves in UCI notation
}

// NewOracle starts a game from the standard position.
func NewOracle() *Oracle {
	return &Oracle{game: nchess.NewGame()}
}

// NewOracleFromFEN starts a game from an arbitrary position.
func NewOracleFromFEN(fen string) (*Oracle, error) {
	opt, err := nchess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("chess: invalid fen %q: %w", fen, err)
	}
	return &Oracle{game: nchess.NewGame(opt)}, nil
}

// PieceAt returns the piece on sq, nchess.NoPiece when empty.
func (o *Oracle) PieceAt(sq nchess.Square) nchess.Piece {
	return o.game.Position().Board().Piece(sq)
}

// Turn returns the side to move.
func (o *Oracle) Turn() nchess.Color {
	return o.game.Position().Turn()
}

// Apply plays a move given in UCI notation ("e2e4", "e7e8q") if it is legal.
func (o *Oracle) Apply(move string) error {
	if o.Finished() {
		return ErrIllegalMove
	}
	move = strings.ToLower(strings.TrimSpace(move))
	if err := o.game.PushNotationMove(move, nchess.UCINotation{}, nil); err != nil {
		return fmt.Errorf("%w: %s", ErrIllegalMove, move)
	}
	o.history = append(o.history, move)
	return nil
}

// Finished reports whether the game has an outcome.
func (o *Oracle) Finished() bool {
	return o.game.Outcome() != nchess.NoOutcome
}

// Outcome returns the result and how it was reached.
func (o *Oracle) Outcome() (nchess.Outcome, nchess.Method) {
	return o.game.Outcome(), o.game.Method()
}

// FEN returns the current position.
func (o *Oracle) FEN() string {
	return o.game.FEN()
}

// History returns the applied moves in UCI notation.
func (o *Oracle) History() []string {
	return append([]string(nil), o.history...)
}

// LastMove returns the squares of the most recent move.
func (o *Oracle) LastMove() (from, to nchess.Square, ok bool) {
	if len(o.history) == 0 {
		return 0, 0, false
	}
	from, to, ok = parseSquares(o.history[len(o.history)-1])
	return from, to, ok
}

// LegalMoves lists every legal move in UCI notation.
func (o *Oracle) LegalMoves() []string {
	moves := o.game.ValidMoves()
	out := make([]string, 0, len(moves))
	for _, mv := range moves {
		out = append(out, mv.String())
	}
	return out
}

// LegalCaptures lists the legal moves that take a piece.
func (o *Oracle) LegalCaptures() []string {
	var out []string
	for _, mv := range o.game.ValidMoves() {
		if mv.HasTag(nchess.Capture) || mv.HasTag(nchess.EnPassant) {
			out = append(out, mv.String())
		}
	}
	return out
}

// parseSquares extracts the from and to squares of a UCI move.
func parseSquares(move string) (from, to nchess.Square, ok bool) {
	if len(move) < 4 {
		return 0, 0, false
	}
	from, ok = parseSquare(move[0:2])
	if !ok {
		return 0, 0, false
	}
	to, ok = parseSquare(move[2:4])
	return from, to, ok
}

func parseSquare(s string) (nchess.Square, bool) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return 0, false
	}
	return nchess.NewSquare(nchess.File(s[0]-'a'), nchess.Rank(s[1]-'1')), true
}
