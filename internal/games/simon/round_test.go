package simon

import (
	"math/rand"
	"testing"
	"time"
)

var testTiming = Timing{
	LeadIn:         600 * time.Millisecond,
	Flash:          500 * time.Millisecond,
	Gap:            200 * time.Millisecond,
	NextRoundPause: 500 * time.Millisecond,
	InputTimeout:   5 * time.Second,
}

type recordingSignals struct {
	tones    []int
	lights   []int
	failures []FailReason
}

func (s *recordingSignals) Highlight(sym int, on bool) {
	if on {
		s.lights = append(s.lights, sym)
	}
}
func (s *recordingSignals) Tone(sym int)           { s.tones = append(s.tones, sym) }
func (s *recordingSignals) Fail(reason FailReason) { s.failures = append(s.failures, reason) }

// finishPresentation steps the clock until the round accepts input.
func finishPresentation(t *testing.T, r *Round, now time.Time) time.Time {
	t.Helper()
	for i := 0; i < 10000 && r.Phase() == PhasePresenting; i++ {
		now = now.Add(10 * time.Millisecond)
		r.Present(now)
	}
	if r.Phase() != PhaseAwaitingInput {
		t.Fatalf("presentation did not finish, phase = %v", r.Phase())
	}
	return now
}

func TestCorrectInputsAdvanceLevel(t *testing.T) {
	sig := &recordingSignals{}
	r := NewRound(4, testTiming, rand.New(rand.NewSource(1)), sig)
	now := time.Unix(0, 0)

	r.StartRound(now)
	for level := 0; level < 8; level++ {
		if r.Level() != level {
			t.Fatalf("level = %d, want %d", r.Level(), level)
		}
		if r.Phase() != PhasePresenting {
			t.Fatalf("phase = %v, want presenting", r.Phase())
		}
		now = finishPresentation(t, r, now)

		seq := r.Sequence()
		if len(seq) != level+1 {
			t.Fatalf("sequence length = %d, want %d", len(seq), level+1)
		}
		for i, sym := range seq {
			now = now.Add(time.Second)
			got := r.Submit(sym, now)
			want := OutcomeAccepted
			if i == len(seq)-1 {
				want = OutcomeRoundComplete
			}
			if got != want {
				t.Fatalf("level %d press %d: outcome = %v, want %v", level, i, got, want)
			}
			if r.Phase() == PhaseFailed {
				t.Fatal("correct input must never fail")
			}
		}
	}
	if len(sig.failures) != 0 {
		t.Errorf("unexpected failures %v", sig.failures)
	}
}

func TestMismatchFails(t *testing.T) {
	for wrongAt := 0; wrongAt < 4; wrongAt++ {
		sig := &recordingSignals{}
		r := NewRound(4, testTiming, rand.New(rand.NewSource(int64(wrongAt))), sig)
		now := time.Unix(0, 0)

		// grow the sequence to 4 symbols
		r.StartRound(now)
		for r.Level() < 3 {
			now = finishPresentation(t, r, now)
			for _, sym := range r.Sequence() {
				r.Submit(sym, now)
			}
		}
		now = finishPresentation(t, r, now)

		seq := r.Sequence()
		for i := 0; i < wrongAt; i++ {
			r.Submit(seq[i], now)
		}
		if got := r.Submit((seq[wrongAt]+1)%4, now); got != OutcomeWrong {
			t.Fatalf("outcome = %v, want wrong", got)
		}

		// later input, even correct, changes nothing
		for i := wrongAt + 1; i < len(seq); i++ {
			if got := r.Submit(seq[i], now); got != OutcomeIgnored {
				t.Errorf("input after failure: outcome = %v", got)
			}
		}
		if r.Phase() != PhaseFailed || r.Failure() != FailWrong {
			t.Errorf("phase = %v failure = %v", r.Phase(), r.Failure())
		}
		if len(sig.failures) != 1 {
			t.Errorf("fail signals = %d, want 1", len(sig.failures))
		}
		if len(r.Input()) > len(r.Sequence()) {
			t.Error("input longer than sequence")
		}
	}
}

func TestTimeout(t *testing.T) {
	r := NewRound(4, testTiming, rand.New(rand.NewSource(3)), nil)
	now := time.Unix(0, 0)
	r.StartRound(now)

	// no timeout while presenting, however long it takes
	if r.CheckTimeout(now.Add(time.Minute)) {
		t.Fatal("timed out during presentation")
	}

	now = finishPresentation(t, r, now)
	if r.CheckTimeout(now.Add(5 * time.Second)) {
		t.Fatal("timed out at exactly the bound")
	}
	if !r.CheckTimeout(now.Add(5*time.Second + time.Millisecond)) {
		t.Fatal("expected timeout")
	}
	if r.Phase() != PhaseFailed || r.Failure() != FailTimeout {
		t.Errorf("phase = %v failure = %v", r.Phase(), r.Failure())
	}
}

func TestTimeoutMeasuredFromLastInput(t *testing.T) {
	r := NewRound(1, testTiming, rand.New(rand.NewSource(3)), nil)
	now := time.Unix(0, 0)
	r.StartRound(now)
	now = finishPresentation(t, r, now)
	r.Submit(0, now)
	now = finishPresentation(t, r, now)

	now = now.Add(4 * time.Second)
	r.Submit(0, now)
	if r.CheckTimeout(now.Add(4 * time.Second)) {
		t.Error("deadline should restart after an accepted press")
	}
}

func TestPresentationSchedule(t *testing.T) {
	sig := &recordingSignals{}
	r := NewRound(1, testTiming, rand.New(rand.NewSource(1)), sig)
	start := time.Unix(0, 0)
	r.StartRound(start)

	r.Present(start.Add(599 * time.Millisecond))
	if _, on := r.Lit(); on {
		t.Fatal("lit during lead-in")
	}
	r.Present(start.Add(600 * time.Millisecond))
	if sym, on := r.Lit(); !on || sym != 0 {
		t.Fatal("first symbol not lit after lead-in")
	}
	r.Present(start.Add(1100 * time.Millisecond))
	if _, on := r.Lit(); on {
		t.Fatal("still lit during gap")
	}
	r.Present(start.Add(1299 * time.Millisecond))
	if r.Phase() != PhasePresenting {
		t.Fatal("presentation ended before the gap")
	}
	r.Present(start.Add(1300 * time.Millisecond))
	if r.Phase() != PhaseAwaitingInput {
		t.Fatalf("phase = %v, want awaiting input", r.Phase())
	}
	if len(sig.tones) != 1 || len(sig.lights) != 1 {
		t.Errorf("tones = %v lights = %v", sig.tones, sig.lights)
	}
}

func TestRepeatedSymbolsEachFlash(t *testing.T) {
	sig := &recordingSignals{}
	// a single symbol makes every step of the sequence identical
	r := NewRound(1, testTiming, rand.New(rand.NewSource(1)), sig)
	now := time.Unix(0, 0)
	r.StartRound(now)
	for r.Level() < 2 {
		now = finishPresentation(t, r, now)
		for _, sym := range r.Sequence() {
			r.Submit(sym, now)
		}
	}
	sig.tones = nil
	finishPresentation(t, r, now)
	if len(sig.tones) != 3 {
		t.Errorf("tones = %d, want 3", len(sig.tones))
	}
}

func TestSubmitIgnoredOutsideInputPhase(t *testing.T) {
	r := NewRound(4, testTiming, rand.New(rand.NewSource(1)), nil)
	now := time.Unix(0, 0)
	if r.Submit(0, now) != OutcomeIgnored {
		t.Error("idle submit not ignored")
	}
	r.StartRound(now)
	if r.Submit(0, now) != OutcomeIgnored {
		t.Error("submit during presentation not ignored")
	}
	if len(r.Input()) != 0 {
		t.Error("ignored press was recorded")
	}
}

func TestAcknowledgeResets(t *testing.T) {
	r := NewRound(2, testTiming, rand.New(rand.NewSource(1)), nil)
	now := time.Unix(0, 0)
	r.StartRound(now)
	now = finishPresentation(t, r, now)
	r.Submit((r.Sequence()[0]+1)%2, now)

	r.Acknowledge()
	if r.Phase() != PhaseIdle || r.Level() != 0 || len(r.Sequence()) != 0 {
		t.Errorf("after acknowledge: phase=%v level=%d seq=%v", r.Phase(), r.Level(), r.Sequence())
	}

	// acknowledging outside Failed is a no-op
	r.StartRound(now)
	r.Acknowledge()
	if r.Phase() != PhasePresenting {
		t.Error("acknowledge left a running round")
	}
}
