// Package audio provides fire-and-forget sound playback and the sample bank
// shared by the games.
package audio

import (
	"io"
	"sync"
	"time"
)

// Player plays a sound identified by id. Play never blocks and reports no
// errors; a player that cannot produce a sound simply stays silent.
type Player interface {
	Play(id string)
}

// PlayerFunc adapts a function to the Player interface.
type PlayerFunc func(id string)

// Play calls f(id).
func (f PlayerFunc) Play(id string) { f(id) }

// Null is a Player that discards every sound.
type Null struct{}

// Play does nothing.
func (Null) Play(string) {}

// OrNull returns p, or Null when p is nil.
func OrNull(p Player) Player {
	if p == nil {
		return Null{}
	}
	return p
}

// Bell rings the terminal bell on a writer. A terminal has a single voice, so
// every id sounds the same and bursts are collapsed to one ring per interval.
type Bell struct {
	mu       sync.Mutex
	w        io.Writer
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

// NewBell creates a bell that writes to w (os.Stdout locally, the session
// channel over SSH).
func NewBell(w io.Writer) *Bell {
	return &Bell{
		w:        w,
		interval: 60 * time.Millisecond,
		now:      time.Now,
	}
}

// Play rings the bell unless it rang within the last interval.
func (b *Bell) Play(string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t := b.now()
	if !b.last.IsZero() && t.Sub(b.last) < b.interval {
		return
	}
	b.last = t
	//nolint:errcheck // a lost bell is not worth reporting
	b.w.Write([]byte{'\a'})
}
