package chess

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	nchess "github.com/corentings/chess/v2"
	"github.com/corentings/chess/v2/uci"

	"github.com/tabletop/arcade/internal/logging"
)

var errEngineReplaced = errors.New("chess: engine restarted during search")

// UCIEngine runs an external UCI binary such as Stockfish. The process is
// started on the first search and restarted after a failure or timeout.
type UCIEngine struct {
	path   string
	skill  int
	logger *log.Logger

	mu  sync.Mutex
	eng *uci.Engine
}

// NewUCIEngine creates an engine for the binary at path. Nothing is started
// until the first search.
func NewUCIEngine(path string, skill int, logger *log.Logger) *UCIEngine {
	return &UCIEngine{
		path:   path,
		skill:  skill,
		logger: logging.OrDiscard(logger),
	}
}

// Go searches req.FEN for req.MoveTime.
func (e *UCIEngine) Go(ctx context.Context, req SearchRequest) <-chan SearchResult {
	out := make(chan SearchResult, 1)
	go func() {
		done := make(chan SearchResult, 1)
		go func() { done <- e.search(req) }()

		select {
		case res := <-done:
			out <- res
		case <-ctx.Done():
			// the library cannot interrupt a running search; killing the
			// process unblocks it and the next search starts a fresh one
			e.reset(nil)
			err := ctx.Err()
			if errors.Is(err, context.DeadlineExceeded) {
				err = ErrEngineTimeout
			}
			out <- SearchResult{Source: "uci", Err: err}
		}
	}()
	return out
}

func (e *UCIEngine) search(req SearchRequest) SearchResult {
	eng, err := e.process()
	if err != nil {
		return SearchResult{Source: "uci", Err: err}
	}

	opt, err := nchess.FEN(req.FEN)
	if err != nil {
		return SearchResult{Source: "uci", Err: fmt.Errorf("chess: invalid fen: %w", err)}
	}
	pos := nchess.NewGame(opt).Position()

	start := time.Now()
	err = eng.Run(uci.CmdPosition{Position: pos}, uci.CmdGo{MoveTime: req.MoveTime})
	// Go has already answered with a timeout and killed eng; whatever it
	// said last is dropped.
	if !e.current(eng) {
		e.logger.Debug("late engine reply dropped", "took", time.Since(start), "err", err)
		return SearchResult{Source: "uci", Err: errEngineReplaced}
	}
	if err != nil {
		e.reset(eng)
		return SearchResult{Source: "uci", Err: fmt.Errorf("chess: engine search: %w", err)}
	}

	best := eng.SearchResults().BestMove
	if best == nil {
		return SearchResult{Source: "uci", Err: errors.New("chess: engine returned no move")}
	}
	e.logger.Debug("engine move", "move", best.String(), "took", time.Since(start))
	return SearchResult{Source: "uci", Move: best.String()}
}

// process returns the running engine, starting it if needed.
func (e *UCIEngine) process() (*uci.Engine, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.eng != nil {
		return e.eng, nil
	}

	eng, err := uci.New(e.path)
	if err != nil {
		return nil, fmt.Errorf("chess: cannot start engine %s: %w", e.path, err)
	}
	setup := []uci.Cmd{
		uci.CmdUCI,
		uci.CmdSetOption{Name: "Skill Level", Value: strconv.Itoa(e.skill)},
		uci.CmdIsReady,
		uci.CmdUCINewGame,
	}
	if err := eng.Run(setup...); err != nil {
		eng.Close()
		return nil, fmt.Errorf("chess: engine handshake: %w", err)
	}
	e.logger.Info("engine started", "path", e.path, "skill", e.skill)
	e.eng = eng
	return eng, nil
}

// current reports whether eng is still the running process.
func (e *UCIEngine) current(eng *uci.Engine) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return eng != nil && eng == e.eng
}

// reset kills the running process. When only is non-nil, the process is
// killed only if it is still the current one.
func (e *UCIEngine) reset(only *uci.Engine) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.eng != nil && (only == nil || only == e.eng) {
		//nolint:errcheck // the process is being discarded
		e.eng.Close()
		e.eng = nil
	}
}

// Close stops the engine process.
func (e *UCIEngine) Close() error {
	e.reset(nil)
	return nil
}
