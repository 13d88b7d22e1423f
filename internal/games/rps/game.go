package rps

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tabletop/arcade/internal/audio"
	"github.com/tabletop/arcade/internal/config"
	"github.com/tabletop/arcade/internal/core"
	"github.com/tabletop/arcade/internal/logging"
	"github.com/tabletop/arcade/internal/multiplayer"
	"github.com/tabletop/arcade/internal/registry"
)

// minReveal is the floor the reveal shrinks to.
const minReveal = 300 * time.Millisecond

// Tally counts the rounds of a session.
type Tally struct {
	Wins   int
	Losses int
	Draws  int
}

// Played returns the number of rounds played.
func (t Tally) Played() int {
	return t.Wins + t.Losses + t.Draws
}

// Round is one resolved round.
type Round struct {
	Player   Choice
	Computer Choice
	Result   Result
}

// Game is a best-of-N session against a random computer.
type Game struct {
	cfg    config.RPSConfig
	sound  audio.Player
	logger *log.Logger
	match  *multiplayer.Match

	rng         *rand.Rand
	difficulty  *config.DifficultyManager
	revealTicks int
	minReveal   int

	tally  Tally
	last   *Round
	reveal int // ticks left before the next choice is accepted
	over   bool

	buttons []core.Rect // click targets from the last render, in Choices order
}

// New creates a rock-paper-scissors session.
func New(deps registry.Deps) *Game {
	cfg := deps.Settings.RPS
	if cfg.Rounds <= 0 {
		cfg = config.DefaultRPSConfig()
	}
	return &Game{
		cfg:        cfg,
		sound:      audio.OrNull(deps.Sound),
		logger:     logging.OrDiscard(deps.Logger),
		match:      deps.Match,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
}

func init() {
	registry.Register("rps", func(deps registry.Deps) registry.Game {
		return New(deps)
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "rps" }

// Title returns the display name.
func (g *Game) Title() string { return "Rock Paper Scissors" }

// Mode returns the match mode.
func (g *Game) Mode() multiplayer.MatchMode { return multiplayer.MatchModeVsCPU }

// Reset starts a new session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.revealTicks = cfg.Ticks(g.cfg.Reveal())
	g.minReveal = min(g.revealTicks, cfg.Ticks(minReveal))
	g.tally = Tally{}
	g.last = nil
	g.reveal = 0
	g.over = false
	g.layout(cfg.ScreenW, cfg.ScreenH)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.over {
		return core.StepResult{State: g.State()}
	}
	if g.reveal > 0 {
		g.reveal--
		return core.StepResult{State: g.State()}
	}

	if c, ok := g.chosen(in); ok {
		g.Play(c)
	}
	return core.StepResult{State: g.State()}
}

// chosen returns the first choice made this frame, by key or click.
func (g *Game) chosen(in core.InputFrame) (Choice, bool) {
	for _, r := range in.Keys {
		if c, ok := ParseChoice(string(r)); ok {
			return c, true
		}
	}
	for _, p := range in.Clicks {
		for i, b := range g.buttons {
			if b.ContainsPoint(p) {
				return Choices[i], true
			}
		}
	}
	return 0, false
}

// Play resolves a round against a random computer choice.
func (g *Game) Play(player Choice) Round {
	computer := Choices[g.rng.Intn(len(Choices))]
	r := Round{Player: player, Computer: computer, Result: Resolve(player, computer)}
	g.last = &r

	switch r.Result {
	case PlayerWins:
		g.tally.Wins++
		g.sound.Play("win")
	case ComputerWins:
		g.tally.Losses++
		g.sound.Play("lose")
	default:
		g.tally.Draws++
		g.sound.Play("draw")
	}
	g.reveal = g.revealFor(g.tally.Wins)

	if g.decided() {
		g.over = true
		g.reveal = 0
		g.logger.Debug("rps session over", "wins", g.tally.Wins, "losses", g.tally.Losses, "draws", g.tally.Draws)
	}
	return r
}

// revealFor returns how many ticks a result stays up once the player has won
// wins rounds.
func (g *Game) revealFor(wins int) int {
	return g.difficulty.Shorten(g.revealTicks, g.minReveal, wins)
}

// decided reports whether the session is over: all rounds played or one side
// can no longer be caught.
func (g *Game) decided() bool {
	need := g.cfg.Rounds/2 + 1
	return g.tally.Played() >= g.cfg.Rounds || g.tally.Wins >= need || g.tally.Losses >= need
}

// Tally returns the running score.
func (g *Game) Tally() Tally {
	return g.tally
}

// State returns the current game state. Rounds won is the score.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.tally.Wins, GameOver: g.over}
}

func (g *Game) verdict() string {
	switch {
	case g.tally.Wins > g.tally.Losses:
		return fmt.Sprintf("%s wins the match!", g.match.Name(multiplayer.Player1))
	case g.tally.Losses > g.tally.Wins:
		return "The computer wins the match!"
	default:
		return "The match is a draw!"
	}
}
