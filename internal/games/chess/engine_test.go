package chess

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corentings/chess/v2/uci"
)

// fixedEngine answers every request with the same result.
type fixedEngine struct {
	res    SearchResult
	calls  int
	closed bool
}

func (e *fixedEngine) Go(_ context.Context, _ SearchRequest) <-chan SearchResult {
	e.calls++
	out := make(chan SearchResult, 1)
	out <- e.res
	return out
}

func (e *fixedEngine) Close() error {
	e.closed = true
	return nil
}

// hungEngine never answers until its context ends.
type hungEngine struct{}

func (hungEngine) Go(ctx context.Context, _ SearchRequest) <-chan SearchResult {
	out := make(chan SearchResult, 1)
	go func() {
		<-ctx.Done()
		out <- SearchResult{Source: "hung", Err: ErrEngineTimeout}
	}()
	return out
}

func (hungEngine) Close() error { return nil }

func waitResult(t *testing.T, r *request) SearchResult {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if res, ok := r.poll(); ok {
			return res
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("no result within 2s")
	return SearchResult{}
}

func TestRequestTimesOut(t *testing.T) {
	r := startRequest(hungEngine{}, SearchRequest{FEN: NewOracle().FEN()}, 20*time.Millisecond)
	if _, ok := r.poll(); ok {
		t.Fatal("hung engine answered immediately")
	}
	res := waitResult(t, r)
	if !errors.Is(res.Err, ErrEngineTimeout) {
		t.Errorf("err = %v, want timeout", res.Err)
	}
}

func TestFallbackOnTimeout(t *testing.T) {
	eng := WithFallback(hungEngine{}, NewRandomEngine(1), nil)
	r := startRequest(eng, SearchRequest{FEN: NewOracle().FEN()}, 20*time.Millisecond)
	res := waitResult(t, r)
	if res.Err != nil || res.Source != "random" {
		t.Fatalf("result = %+v, want a random move", res)
	}
	if err := NewOracle().Apply(res.Move); err != nil {
		t.Errorf("fallback move %q is illegal: %v", res.Move, err)
	}
}

func TestFallbackPrefersPrimary(t *testing.T) {
	primary := &fixedEngine{res: SearchResult{Source: "fixed", Move: "e2e4"}}
	backup := &fixedEngine{res: SearchResult{Source: "backup", Move: "d2d4"}}
	eng := WithFallback(primary, backup, nil)

	res := <-eng.Go(context.Background(), SearchRequest{})
	if res.Move != "e2e4" || backup.calls != 0 {
		t.Errorf("result = %+v, backup calls = %d", res, backup.calls)
	}

	primary.res = SearchResult{Source: "fixed", Err: errors.New("boom")}
	res = <-eng.Go(context.Background(), SearchRequest{})
	if res.Move != "d2d4" {
		t.Errorf("result = %+v, want backup move", res)
	}

	if err := eng.Close(); err != nil || !primary.closed || !backup.closed {
		t.Error("Close did not reach both engines")
	}
}

func TestRandomEnginePrefersCaptures(t *testing.T) {
	eng := NewRandomEngine(7)
	res := <-eng.Go(context.Background(), SearchRequest{FEN: "4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1"})
	if res.Move != "e4d5" {
		t.Errorf("move = %q, want the capture e4d5", res.Move)
	}

	res = <-eng.Go(context.Background(), SearchRequest{FEN: "garbage"})
	if res.Err == nil {
		t.Error("expected error for an invalid position")
	}
}

// A search that outlives its timeout must see that its process was replaced
// and drop the reply instead of reporting it.
func TestUCIEngineDropsReplyFromReplacedProcess(t *testing.T) {
	e := NewUCIEngine("stockfish", 20, nil)
	if e.current(nil) {
		t.Error("nil process reported current with nothing running")
	}

	timedOut := &uci.Engine{}
	e.eng = timedOut
	if !e.current(timedOut) {
		t.Fatal("running process not current")
	}

	// what Go's timeout path leaves behind: the old process gone, a fresh
	// one started by the next search
	e.eng = &uci.Engine{}
	if e.current(timedOut) {
		t.Error("replaced process still reported current")
	}
	if e.current(nil) {
		t.Error("nil process reported current")
	}
}
