package chess

import nchess "github.com/corentings/chess/v2"

// Board is the part of the rules oracle the selector needs.
type Board interface {
	PieceAt(sq nchess.Square) nchess.Piece
	Turn() nchess.Color
	Apply(move string) error
}

// ClickResult says what a click did.
type ClickResult int

const (
	// ClickIgnored: nothing selected and the square holds no piece of the side to move.
	ClickIgnored ClickResult = iota
	// ClickSelected: a piece of the side to move was selected.
	ClickSelected
	// ClickMoved: the candidate move was legal and applied.
	ClickMoved
	// ClickRejected: the candidate move was illegal and dropped.
	ClickRejected
)

// Selector implements two-click move entry: the first click picks a piece,
// the second names its destination.
type Selector struct {
	selected nchess.Square
	active   bool
}

// Click handles a click on sq. Any click made while a piece is selected
// attempts a move and clears the selection, legal or not.
func (s *Selector) Click(b Board, sq nchess.Square) (ClickResult, string) {
	if !s.active {
		p := b.PieceAt(sq)
		if p == nchess.NoPiece || p.Color() != b.Turn() {
			return ClickIgnored, ""
		}
		s.selected, s.active = sq, true
		return ClickSelected, ""
	}

	move := Candidate(b, s.selected, sq)
	s.Clear()
	if err := b.Apply(move); err != nil {
		return ClickRejected, move
	}
	return ClickMoved, move
}

// Selected returns the selected square, if any.
func (s *Selector) Selected() (nchess.Square, bool) {
	return s.selected, s.active
}

// Clear drops the selection.
func (s *Selector) Clear() {
	s.selected, s.active = 0, false
}

// Candidate builds the UCI move from -> to. A pawn reaching the last rank is
// always promoted to a queen.
func Candidate(b Board, from, to nchess.Square) string {
	move := from.String() + to.String()
	p := b.PieceAt(from)
	if p.Type() == nchess.Pawn && (to.Rank() == nchess.Rank8 || to.Rank() == nchess.Rank1) {
		move += "q"
	}
	return move
}
