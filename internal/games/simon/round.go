// Package simon implements the Simon Says memory game: the computer plays a
// growing pattern of colors and the player repeats it.
package simon

import (
	"math/rand"
	"time"
)

// Phase is the state of a Round.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePresenting
	PhaseAwaitingInput
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePresenting:
		return "presenting"
	case PhaseAwaitingInput:
		return "awaiting_input"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FailReason says why a round ended in PhaseFailed.
type FailReason int

const (
	FailNone FailReason = iota
	FailWrong
	FailTimeout
)

// Outcome is the result of one Submit call.
type Outcome int

const (
	// OutcomeIgnored means the press arrived outside PhaseAwaitingInput.
	OutcomeIgnored Outcome = iota
	// OutcomeAccepted means the press matched and more are expected.
	OutcomeAccepted
	// OutcomeRoundComplete means the whole sequence was repeated.
	OutcomeRoundComplete
	// OutcomeWrong means the press did not match.
	OutcomeWrong
)

// Signals receives the side effects of a Round. Symbols are indices into the
// game's symbol table.
type Signals interface {
	Highlight(sym int, on bool)
	Tone(sym int)
	Fail(reason FailReason)
}

type nopSignals struct{}

func (nopSignals) Highlight(int, bool) {}
func (nopSignals) Tone(int)            {}
func (nopSignals) Fail(FailReason)     {}

// Timing controls presentation speed and the input latency bound.
type Timing struct {
	LeadIn         time.Duration
	Flash          time.Duration
	Gap            time.Duration
	NextRoundPause time.Duration
	InputTimeout   time.Duration
}

// Round is the memory game state machine:
//
//	Idle -> Presenting -> AwaitingInput -> AwaitingInput | Failed | Presenting
//	Failed -> Idle
//
// It never reads a clock; every transition takes the current time.
type Round struct {
	symbols int
	timing  Timing
	rng     *rand.Rand
	sig     Signals

	sequence []int
	input    []int
	level    int
	phase    Phase
	failure  FailReason

	presentAt time.Time // presentation clock origin, lead-in included
	lastInput time.Time // input deadline origin
	lit       int       // index into sequence currently lit, -1 when dark
}

// NewRound creates an idle round over symbols distinct symbols.
func NewRound(symbols int, timing Timing, rng *rand.Rand, sig Signals) *Round {
	if sig == nil {
		sig = nopSignals{}
	}
	r := &Round{
		symbols: max(1, symbols),
		timing:  timing,
		rng:     rng,
		sig:     sig,
	}
	r.Reset()
	return r
}

// Reset returns to Idle with an empty sequence and level 0.
func (r *Round) Reset() {
	r.sequence = r.sequence[:0]
	r.input = r.input[:0]
	r.level = 0
	r.phase = PhaseIdle
	r.failure = FailNone
	r.lit = -1
}

// SetTiming replaces the timing used from the next presentation on.
func (r *Round) SetTiming(t Timing) {
	r.timing = t
}

// StartRound clears the player's input, appends one random symbol and starts
// presenting the sequence.
func (r *Round) StartRound(now time.Time) {
	r.input = r.input[:0]
	r.sequence = append(r.sequence, r.rng.Intn(r.symbols))
	r.phase = PhasePresenting
	r.failure = FailNone
	r.presentAt = now
	r.lastInput = now
	r.lit = -1
}

// Present advances the presentation to now. Each symbol is lit for
// Timing.Flash followed by Timing.Gap of darkness, after an initial lead-in.
// Presentation cannot be interrupted; once the last gap has passed the round
// waits for input.
func (r *Round) Present(now time.Time) {
	if r.phase != PhasePresenting {
		return
	}

	idx, on, done := r.schedule(now.Sub(r.presentAt))
	if done {
		r.setLit(-1)
		r.phase = PhaseAwaitingInput
		r.lastInput = now
		return
	}
	if !on {
		idx = -1
	}
	r.setLit(idx)
}

// schedule maps time since presentation start to the lit sequence index.
func (r *Round) schedule(elapsed time.Duration) (idx int, on, done bool) {
	elapsed -= r.timing.LeadIn
	if elapsed < 0 {
		return 0, false, false
	}
	slot := r.timing.Flash + r.timing.Gap
	if slot <= 0 {
		return 0, false, true
	}
	idx = int(elapsed / slot)
	if idx >= len(r.sequence) {
		return 0, false, true
	}
	return idx, elapsed%slot < r.timing.Flash, false
}

func (r *Round) setLit(idx int) {
	if idx == r.lit {
		return
	}
	if r.lit >= 0 {
		r.sig.Highlight(r.sequence[r.lit], false)
	}
	r.lit = idx
	if idx >= 0 {
		sym := r.sequence[idx]
		r.sig.Highlight(sym, true)
		r.sig.Tone(sym)
	}
}

// Submit records a player press. Presses outside AwaitingInput are ignored.
func (r *Round) Submit(sym int, now time.Time) Outcome {
	if r.phase != PhaseAwaitingInput {
		return OutcomeIgnored
	}

	r.input = append(r.input, sym)
	r.lastInput = now

	if sym != r.sequence[len(r.input)-1] {
		r.fail(FailWrong)
		return OutcomeWrong
	}

	if len(r.input) < len(r.sequence) {
		return OutcomeAccepted
	}

	r.level++
	r.StartRound(now)
	r.presentAt = now.Add(r.timing.NextRoundPause)
	return OutcomeRoundComplete
}

// CheckTimeout fails the round when the player has been silent longer than
// the input timeout. It reports whether the round failed now.
func (r *Round) CheckTimeout(now time.Time) bool {
	if r.phase != PhaseAwaitingInput || r.timing.InputTimeout <= 0 {
		return false
	}
	if now.Sub(r.lastInput) <= r.timing.InputTimeout {
		return false
	}
	r.fail(FailTimeout)
	return true
}

func (r *Round) fail(reason FailReason) {
	r.phase = PhaseFailed
	r.failure = reason
	r.sig.Fail(reason)
}

// Acknowledge leaves PhaseFailed for a fresh idle game.
func (r *Round) Acknowledge() {
	if r.phase == PhaseFailed {
		r.Reset()
	}
}

// Phase returns the current phase.
func (r *Round) Phase() Phase { return r.phase }

// Level returns the number of completed rounds.
func (r *Round) Level() int { return r.level }

// Failure returns why the round failed, FailNone otherwise.
func (r *Round) Failure() FailReason { return r.failure }

// Sequence returns a copy of the symbols to repeat.
func (r *Round) Sequence() []int { return append([]int(nil), r.sequence...) }

// Input returns a copy of the symbols entered this round.
func (r *Round) Input() []int { return append([]int(nil), r.input...) }

// Lit returns the symbol lit by the presentation, if any.
func (r *Round) Lit() (int, bool) {
	if r.phase != PhasePresenting || r.lit < 0 {
		return 0, false
	}
	return r.sequence[r.lit], true
}
