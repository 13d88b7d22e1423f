package simon

import (
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/tabletop/arcade/internal/audio"
	"github.com/tabletop/arcade/internal/config"
	"github.com/tabletop/arcade/internal/core"
	"github.com/tabletop/arcade/internal/logging"
	"github.com/tabletop/arcade/internal/registry"
)

const (
	msgStart   = "Press any key to start"
	msgWatch   = "Watch the pattern..."
	msgYours   = "Your turn! Repeat the pattern"
	msgCorrect = "Correct! Watch next pattern..."
	msgWrong   = "Wrong! Press any key to restart"
	msgSlow    = "Too slow! Press any key to restart"

	minFlash = 150 * time.Millisecond
	minGap   = 80 * time.Millisecond
)

// Game adapts a Round to the arcade platform. Time comes from the input
// frame; unstamped frames fall back to the tick counter, so two games fed
// the same input and seed behave identically.
type Game struct {
	cfg    config.SimonConfig
	sound  audio.Player
	logger *log.Logger
	best   func() int

	round      *Round
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	interval   time.Duration
	tick       uint64

	keys     map[rune]int
	message  string
	lit      int // symbol highlighted by the presentation, -1 if none
	pressSym int
	pressEnd time.Time
	bestSeen int

	pads    []core.Rect // click targets from the last render
	screenW int
	screenH int
}

// New creates a memory game from deps.
func New(deps registry.Deps) *Game {
	cfg := deps.Settings.Simon
	if len(cfg.Symbols) == 0 {
		cfg = config.DefaultSimonConfig()
	}

	g := &Game{
		cfg:        cfg,
		sound:      audio.OrNull(deps.Sound),
		logger:     logging.OrDiscard(deps.Logger),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		keys:       keyTable(cfg.Symbols),
		lit:        -1,
		pressSym:   -1,
	}
	store := deps.Store
	g.best = func() int {
		if store == nil {
			return 0
		}
		high, err := store.HighScore("simon")
		if err != nil {
			g.logger.Warn("could not read high score", "game", "simon", "error", err)
			return 0
		}
		return high
	}
	return g
}

func init() {
	registry.Register("simon", func(deps registry.Deps) registry.Game {
		return New(deps)
	})
}

// keyTable binds 1..n and each symbol's first letter, when unambiguous.
func keyTable(symbols []string) map[rune]int {
	keys := make(map[rune]int)
	initials := make(map[rune]int)
	for i, name := range symbols {
		if i < 9 {
			keys[rune('1'+i)] = i
		}
		if name != "" {
			r := []rune(strings.ToLower(name))[0]
			initials[r]++
		}
	}
	for i, name := range symbols {
		if name == "" {
			continue
		}
		r := []rune(strings.ToLower(name))[0]
		if initials[r] == 1 {
			if _, taken := keys[r]; !taken {
				keys[r] = i
			}
		}
	}
	return keys
}

// ID returns the game identifier.
func (g *Game) ID() string { return "simon" }

// Title returns the display name.
func (g *Game) Title() string { return "Simon Says" }

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.interval = cfg.TickInterval()
	g.tick = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.round = NewRound(len(g.cfg.Symbols), g.timingFor(0), g.rng, g)
	g.message = msgStart
	g.lit = -1
	g.pressSym = -1
	g.bestSeen = g.best()
	g.layout(cfg.ScreenW, cfg.ScreenH)
}

// timingFor speeds the presentation up as the level grows.
func (g *Game) timingFor(level int) Timing {
	t := g.cfg.Timing
	speed := g.difficulty.Speed(1.0, level, 0)
	if speed <= 0 {
		speed = 1
	}
	return Timing{
		LeadIn:         t.LeadIn(),
		Flash:          max(minFlash, time.Duration(float64(t.Flash())/speed)),
		Gap:            max(minGap, time.Duration(float64(t.Gap())/speed)),
		NextRoundPause: t.NextRoundPause(),
		InputTimeout:   t.InputTimeout(),
	}
}

func (g *Game) now() time.Time {
	return time.Unix(0, 0).Add(time.Duration(g.tick) * g.interval)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	now := in.At(g.now())

	switch g.round.Phase() {
	case PhaseIdle:
		if !in.Empty() {
			g.round.StartRound(now)
			g.message = msgWatch
			g.logger.Debug("simon started")
		}

	case PhasePresenting:
		g.round.Present(now)
		if g.round.Phase() == PhaseAwaitingInput {
			g.message = msgYours
		}

	case PhaseAwaitingInput:
		if g.round.CheckTimeout(now) {
			break
		}
		for _, sym := range g.pressed(in) {
			g.press(sym, now)
			if g.round.Phase() != PhaseAwaitingInput {
				break
			}
		}

	case PhaseFailed:
		if !in.Empty() {
			g.round.Acknowledge()
			g.message = msgStart
			g.bestSeen = g.best()
		}
	}

	return core.StepResult{State: g.State()}
}

// pressed collects the symbols hit this frame, keys before clicks.
func (g *Game) pressed(in core.InputFrame) []int {
	var syms []int
	for _, r := range in.Keys {
		if sym, ok := g.keys[unicode.ToLower(r)]; ok {
			syms = append(syms, sym)
		}
	}
	for _, c := range in.Clicks {
		for i, pad := range g.pads {
			if pad.ContainsPoint(c) {
				syms = append(syms, i)
				break
			}
		}
	}
	return syms
}

func (g *Game) press(sym int, now time.Time) {
	g.pressSym = sym
	g.pressEnd = now.Add(g.cfg.Timing.InputFlash())
	g.sound.Play(g.cfg.Symbols[sym])

	switch g.round.Submit(sym, now) {
	case OutcomeRoundComplete:
		g.message = msgCorrect
		g.round.SetTiming(g.timingFor(g.round.Level()))
		g.logger.Debug("simon round complete", "level", g.round.Level())
	case OutcomeWrong:
		g.message = msgWrong
	}
}

// Highlight implements Signals.
func (g *Game) Highlight(sym int, on bool) {
	if on {
		g.lit = sym
	} else if g.lit == sym {
		g.lit = -1
	}
}

// Tone implements Signals.
func (g *Game) Tone(sym int) {
	if sym >= 0 && sym < len(g.cfg.Symbols) {
		g.sound.Play(g.cfg.Symbols[sym])
	}
}

// Fail implements Signals.
func (g *Game) Fail(reason FailReason) {
	g.sound.Play("wrong")
	if reason == FailTimeout {
		g.message = msgSlow
	} else {
		g.message = msgWrong
	}
	g.logger.Debug("simon failed", "level", g.round.Level(), "timeout", reason == FailTimeout)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.round == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.round.Level(),
		GameOver: g.round.Phase() == PhaseFailed,
	}
}

// Round exposes the state machine, mainly for tests.
func (g *Game) Round() *Round {
	return g.round
}
