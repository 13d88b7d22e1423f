package chess

import (
	"errors"
	"testing"

	nchess "github.com/corentings/chess/v2"
)

func sq(s string) nchess.Square {
	v, ok := parseSquare(s)
	if !ok {
		panic("bad square " + s)
	}
	return v
}

func TestOracleStartPosition(t *testing.T) {
	o := NewOracle()
	if o.Turn() != nchess.White {
		t.Fatal("white should move first")
	}
	p := o.PieceAt(sq("e1"))
	if p.Type() != nchess.King || p.Color() != nchess.White {
		t.Errorf("e1 = %v, want white king", p)
	}
	if o.PieceAt(sq("e4")) != nchess.NoPiece {
		t.Error("e4 should be empty")
	}
	if got := len(o.LegalMoves()); got != 20 {
		t.Errorf("legal moves = %d, want 20", got)
	}
}

func TestOracleApply(t *testing.T) {
	o := NewOracle()
	if err := o.Apply("e2e4"); err != nil {
		t.Fatalf("Apply(e2e4) = %v", err)
	}
	if o.Turn() != nchess.Black {
		t.Error("turn did not pass to black")
	}

	err := o.Apply("e2e4")
	if !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("replaying e2e4 = %v, want ErrIllegalMove", err)
	}
	if len(o.History()) != 1 {
		t.Errorf("history = %v", o.History())
	}

	from, to, ok := o.LastMove()
	if !ok || from != sq("e2") || to != sq("e4") {
		t.Errorf("LastMove = %v %v %v", from, to, ok)
	}
}

func TestOracleFoolsMate(t *testing.T) {
	o := NewOracle()
	for _, mv := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		if err := o.Apply(mv); err != nil {
			t.Fatalf("Apply(%s) = %v", mv, err)
		}
	}
	if !o.Finished() {
		t.Fatal("checkmate not detected")
	}
	outcome, method := o.Outcome()
	if outcome != nchess.BlackWon || method != nchess.Checkmate {
		t.Errorf("outcome = %v by %v", outcome, method)
	}
	if err := o.Apply("a2a3"); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("move after mate = %v", err)
	}
}

func TestOracleFromFEN(t *testing.T) {
	if _, err := NewOracleFromFEN("not a fen"); err == nil {
		t.Error("expected error for invalid FEN")
	}

	// white can take the queen on d5
	o, err := NewOracleFromFEN("4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	caps := o.LegalCaptures()
	if len(caps) != 1 || caps[0] != "e4d5" {
		t.Errorf("captures = %v, want [e4d5]", caps)
	}
}
