package chess

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	nchess "github.com/corentings/chess/v2"
	"github.com/google/uuid"

	"github.com/tabletop/arcade/internal/audio"
	"github.com/tabletop/arcade/internal/config"
	"github.com/tabletop/arcade/internal/core"
	"github.com/tabletop/arcade/internal/logging"
	"github.com/tabletop/arcade/internal/multiplayer"
	"github.com/tabletop/arcade/internal/registry"
	"github.com/tabletop/arcade/internal/storage"
)

// Mode selects who plays Black.
type Mode int

const (
	ModeVsCPU Mode = iota
	ModeLocal
)

// Game is a chess board driven by clicks or a keyboard cursor. In ModeVsCPU
// the human plays White and the engine answers for Black.
type Game struct {
	mode   Mode
	cfg    config.ChessConfig
	sound  audio.Player
	logger *log.Logger
	store  *storage.Store
	match  *multiplayer.Match
	engine Engine

	oracle   *Oracle
	selector Selector
	cursor   nchess.Square
	pending  *request
	message  string
	archived bool
	score    int

	view boardView // geometry of the last render, for click hit-tests
}

// New creates a chess game. The engine process, if any, starts lazily on the
// first engine turn.
func New(deps registry.Deps, mode Mode) *Game {
	return NewWithEngine(deps, mode, nil)
}

// NewWithEngine creates a chess game with an explicit engine. A nil engine
// selects one from the configuration.
func NewWithEngine(deps registry.Deps, mode Mode, eng Engine) *Game {
	cfg := deps.Settings.Chess
	if cfg.Engine.MoveTimeMS <= 0 {
		cfg = config.DefaultChessConfig()
	}
	g := &Game{
		mode:   mode,
		cfg:    cfg,
		sound:  audio.OrNull(deps.Sound),
		logger: logging.OrDiscard(deps.Logger),
		store:  deps.Store,
		match:  deps.Match,
		engine: eng,
		oracle: NewOracle(),
	}
	return g
}

// newEngine builds the configured engine: a UCI binary backed by the random
// mover, or the random mover alone when no binary is configured.
func (g *Game) newEngine(seed int64) Engine {
	random := NewRandomEngine(seed)
	if g.cfg.Engine.Path == "" {
		return random
	}
	return WithFallback(NewUCIEngine(g.cfg.Engine.Path, g.cfg.Engine.SkillLevel, g.logger), random, g.logger)
}

func init() {
	registry.Register("chess", func(deps registry.Deps) registry.Game {
		return New(deps, ModeVsCPU)
	})
	registry.Register("chess_local", func(deps registry.Deps) registry.Game {
		return New(deps, ModeLocal)
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeLocal {
		return "chess_local"
	}
	return "chess"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeLocal {
		return "Chess (Local 2-Player)"
	}
	return "Chess (vs Computer)"
}

// Mode returns the match mode for the platform.
func (g *Game) Mode() multiplayer.MatchMode {
	if g.mode == ModeLocal {
		return multiplayer.MatchModeLocal
	}
	return multiplayer.MatchModeVsCPU
}

// Reset starts a new game from the standard position.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cancelSearch()
	if g.engine == nil && g.mode == ModeVsCPU {
		g.engine = g.newEngine(cfg.Seed)
	}
	g.oracle = NewOracle()
	g.selector.Clear()
	g.cursor = nchess.NewSquare(nchess.FileE, nchess.Rank2)
	g.message = "White to move"
	g.archived = false
	g.score = 0
	g.view = layoutBoard(cfg.ScreenW, cfg.ScreenH, g.cfg.Board)
}

// Step advances the game by one tick. Engine turns are polled, never waited on.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.oracle.Finished() {
		return core.StepResult{State: g.State()}
	}

	if g.engineTurn() {
		g.stepEngine()
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)
	if in.Has(core.ActionSelect) || in.Has(core.ActionConfirm) {
		g.click(g.cursor)
	}
	for _, c := range in.Clicks {
		if sq, ok := g.view.squareAt(c); ok {
			g.cursor = sq
			g.click(sq)
		}
		if g.engineTurn() || g.oracle.Finished() {
			break
		}
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) engineTurn() bool {
	return g.mode == ModeVsCPU && g.oracle.Turn() == nchess.Black
}

func (g *Game) moveCursor(in core.InputFrame) {
	file, rank := int(g.cursor.File()), int(g.cursor.Rank())
	switch {
	case in.Has(core.ActionUp):
		rank++
	case in.Has(core.ActionDown):
		rank--
	case in.Has(core.ActionLeft):
		file--
	case in.Has(core.ActionRight):
		file++
	}
	file = core.Clamp(file, 0, 7)
	rank = core.Clamp(rank, 0, 7)
	g.cursor = nchess.NewSquare(nchess.File(file), nchess.Rank(rank))
}

func (g *Game) click(sq nchess.Square) {
	res, move := g.selector.Click(g.oracle, sq)
	switch res {
	case ClickSelected:
		g.message = fmt.Sprintf("Selected %s", sq)
	case ClickRejected:
		g.message = sideName(g.oracle.Turn()) + " to move"
		g.logger.Debug("illegal move ignored", "move", move)
	case ClickMoved:
		g.afterMove(move)
	}
}

// stepEngine issues or polls the engine request for the current position.
func (g *Game) stepEngine() {
	if g.pending == nil {
		req := SearchRequest{FEN: g.oracle.FEN(), MoveTime: g.cfg.Engine.MoveTime()}
		g.pending = startRequest(g.engine, req, g.cfg.Engine.Deadline())
		g.message = "Computer is thinking..."
		return
	}

	res, ok := g.pending.poll()
	if !ok {
		return
	}
	g.pending = nil

	if res.Err == nil {
		if err := g.oracle.Apply(res.Move); err == nil {
			g.afterMove(res.Move)
			return
		}
		g.logger.Warn("engine proposed an illegal move", "move", res.Move, "engine", res.Source)
	} else {
		g.logger.Warn("engine search failed", "engine", res.Source, "error", res.Err)
	}

	// the engine could not help; answer with any legal move
	fallback := NewRandomEngine(int64(len(g.oracle.History()))).pick(g.oracle.FEN())
	if fallback.Err == nil && g.oracle.Apply(fallback.Move) == nil {
		g.afterMove(fallback.Move)
	}
}

func (g *Game) afterMove(move string) {
	g.sound.Play("move")
	if !g.oracle.Finished() {
		g.message = sideName(g.oracle.Turn()) + " to move"
		return
	}

	outcome, method := g.oracle.Outcome()
	g.message = fmt.Sprintf("Game over: %s (%s)", outcome, method)
	if g.mode == ModeVsCPU && outcome == nchess.WhiteWon {
		// quicker wins score higher
		g.score = max(1, 200-len(g.oracle.History()))
	}
	g.archive(outcome, method)
	g.logger.Info("chess game finished", "outcome", outcome.String(), "method", method.String(), "last", move)
}

// archive stores the finished game once.
func (g *Game) archive(outcome nchess.Outcome, method nchess.Method) {
	if g.archived || g.store == nil {
		return
	}
	g.archived = true

	mode := "cpu"
	if g.mode == ModeLocal {
		mode = "local"
	}
	history := g.oracle.History()
	rec := storage.ChessGame{
		ID:       uuid.NewString(),
		Mode:     mode,
		White:    g.match.Name(multiplayer.Player1),
		Black:    g.match.Name(multiplayer.Player2),
		Result:   outcome.String(),
		Method:   method.String(),
		FinalFEN: g.oracle.FEN(),
		Moves:    strings.Join(history, " "),
		Plies:    len(history),
	}
	if err := g.store.SaveChessGame(rec); err != nil {
		g.logger.Error("could not archive chess game", "error", err)
	}
}

func (g *Game) cancelSearch() {
	if g.pending != nil {
		g.pending.abandon()
		g.pending = nil
	}
}

// Close abandons any search and stops the engine.
func (g *Game) Close() error {
	g.cancelSearch()
	if g.engine != nil {
		return g.engine.Close()
	}
	return nil
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.oracle.Finished(),
	}
}

// Oracle exposes the rules oracle, mainly for tests.
func (g *Game) Oracle() *Oracle {
	return g.oracle
}

func sideName(c nchess.Color) string {
	if c == nchess.Black {
		return "Black"
	}
	return "White"
}

// thinking reports whether an engine request is outstanding.
func (g *Game) thinking() bool {
	return g.pending != nil
}
