package chess

import (
	"testing"

	nchess "github.com/corentings/chess/v2"
)

func TestSelectorTwoClicks(t *testing.T) {
	tests := []struct {
		name   string
		clicks []string
		want   []ClickResult
		moved  string
		active bool
	}{
		{"empty square ignored", []string{"e4"}, []ClickResult{ClickIgnored}, "", false},
		{"opponent piece ignored", []string{"e7"}, []ClickResult{ClickIgnored}, "", false},
		{"own piece selected", []string{"e2"}, []ClickResult{ClickSelected}, "", true},
		{"legal move", []string{"e2", "e4"}, []ClickResult{ClickSelected, ClickMoved}, "e2e4", false},
		{"illegal move clears", []string{"e2", "e5"}, []ClickResult{ClickSelected, ClickRejected}, "", false},
		{"reclick own piece clears", []string{"g1", "b1"}, []ClickResult{ClickSelected, ClickRejected}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOracle()
			var s Selector
			var last string
			for i, c := range tt.clicks {
				res, move := s.Click(o, sq(c))
				if res != tt.want[i] {
					t.Fatalf("click %d on %s = %v, want %v", i, c, res, tt.want[i])
				}
				if res == ClickMoved {
					last = move
				}
			}
			if last != tt.moved {
				t.Errorf("moved = %q, want %q", last, tt.moved)
			}
			if _, active := s.Selected(); active != tt.active {
				t.Errorf("selection active = %v, want %v", active, tt.active)
			}
		})
	}
}

func TestSelectorRejectedMoveKeepsPosition(t *testing.T) {
	o := NewOracle()
	fen := o.FEN()
	var s Selector
	s.Click(o, sq("a1"))
	s.Click(o, sq("a5"))
	if o.FEN() != fen {
		t.Error("illegal move changed the position")
	}
	if o.Turn() != nchess.White {
		t.Error("turn changed after an illegal move")
	}
}

func TestSelectorPromotesToQueen(t *testing.T) {
	o, err := NewOracleFromFEN("8/P6k/8/8/8/8/8/K7 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var s Selector
	s.Click(o, sq("a7"))
	res, move := s.Click(o, sq("a8"))
	if res != ClickMoved || move != "a7a8q" {
		t.Fatalf("promotion = %v %q", res, move)
	}
	p := o.PieceAt(sq("a8"))
	if p.Type() != nchess.Queen || p.Color() != nchess.White {
		t.Errorf("a8 = %v, want white queen", p)
	}
}

func TestCandidate(t *testing.T) {
	o, err := NewOracleFromFEN("8/P6k/8/8/8/8/p7/7K b - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		from, to, want string
	}{
		{"a2", "a1", "a2a1q"},
		{"a7", "a8", "a7a8q"},
		{"h7", "h8", "h7h8"},
	}
	for _, tt := range tests {
		if got := Candidate(o, sq(tt.from), sq(tt.to)); got != tt.want {
			t.Errorf("Candidate(%s, %s) = %q, want %q", tt.from, tt.to, got, tt.want)
		}
	}
}
