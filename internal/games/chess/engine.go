package chess

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tabletop/arcade/internal/logging"
)

// ErrEngineTimeout is reported when no best move arrived within the bound.
var ErrEngineTimeout = errors.New("chess: engine timed out")

// SearchRequest asks for the best move in a position.
type SearchRequest struct {
	FEN      string
	MoveTime time.Duration
}

// SearchResult is the reply to a SearchRequest.
type SearchResult struct {
	Move   string // UCI notation
	Source string // engine name
	Err    error
}

// Engine searches positions. Go must return immediately; the result arrives
// on the channel, which receives exactly one value. Cancelling ctx abandons
// the search and yields a result with an error.
type Engine interface {
	Go(ctx context.Context, req SearchRequest) <-chan SearchResult
	Close() error
}

// request is one in-flight engine call with a bounded wait.
type request struct {
	ch     <-chan SearchResult
	cancel context.CancelFunc
}

// startRequest issues req and bounds the wait to timeout.
func startRequest(eng Engine, req SearchRequest, timeout time.Duration) *request {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	return &request{ch: eng.Go(ctx, req), cancel: cancel}
}

// poll returns the result if it has arrived. It never blocks.
func (r *request) poll() (SearchResult, bool) {
	select {
	case res := <-r.ch:
		r.cancel()
		return res, true
	default:
		return SearchResult{}, false
	}
}

// abandon cancels the request; its result is dropped.
func (r *request) abandon() {
	r.cancel()
}

// fallbackEngine asks primary first and answers from backup when primary
// fails, times out or is abandoned.
type fallbackEngine struct {
	primary Engine
	backup  Engine
	logger  *log.Logger
}

// WithFallback wraps primary so that every request yields a move as long as
// backup can produce one.
func WithFallback(primary, backup Engine, logger *log.Logger) Engine {
	return &fallbackEngine{
		primary: primary,
		backup:  backup,
		logger:  logging.OrDiscard(logger),
	}
}

func (e *fallbackEngine) Go(ctx context.Context, req SearchRequest) <-chan SearchResult {
	out := make(chan SearchResult, 1)
	go func() {
		res := <-e.primary.Go(ctx, req)
		if res.Err == nil && res.Move != "" {
			out <- res
			return
		}
		e.logger.Warn("engine failed, using fallback", "engine", res.Source, "error", res.Err)
		out <- <-e.backup.Go(context.Background(), req)
	}()
	return out
}

func (e *fallbackEngine) Close() error {
	return errors.Join(e.primary.Close(), e.backup.Close())
}
