package chess

import (
	"context"
	"errors"
	"math/rand"
	"sync"
)

// RandomEngine plays a random legal move, preferring captures. It runs in
// process and answers immediately.
type RandomEngine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomEngine creates a random mover with a fixed seed.
func NewRandomEngine(seed int64) *RandomEngine {
	return &RandomEngine{rng: rand.New(rand.NewSource(seed))}
}

// Go picks a move for req.FEN.
func (e *RandomEngine) Go(_ context.Context, req SearchRequest) <-chan SearchResult {
	out := make(chan SearchResult, 1)
	out <- e.pick(req.FEN)
	return out
}

func (e *RandomEngine) pick(fen string) SearchResult {
	o, err := NewOracleFromFEN(fen)
	if err != nil {
		return SearchResult{Source: "random", Err: err}
	}

	moves := o.LegalCaptures()
	if len(moves) == 0 {
		moves = o.LegalMoves()
	}
	if len(moves) == 0 {
		return SearchResult{Source: "random", Err: errors.New("chess: no legal moves")}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return SearchResult{Source: "random", Move: moves[e.rng.Intn(len(moves))]}
}

// Close is a no-op.
func (e *RandomEngine) Close() error { return nil }
