package drums

import (
	"strings"
	"time"
)

// Event is one pad hit, Offset after the recording started.
type Event struct {
	Offset time.Duration
	Pad    string
}

// Recorder captures pad hits between Start and Stop.
type Recorder struct {
	recording bool
	started   time.Time
	events    []Event
}

// Start begins a new take, discarding any previous events.
func (r *Recorder) Start(now time.Time) {
	r.recording = true
	r.started = now
	r.events = nil
}

// Stop ends the take and returns its events in the order they were played.
func (r *Recorder) Stop() []Event {
	r.recording = false
	events := r.events
	r.events = nil
	return events
}

// Press records a hit on pad if a take is running.
func (r *Recorder) Press(pad string, now time.Time) bool {
	if !r.recording {
		return false
	}
	r.events = append(r.events, Event{Offset: now.Sub(r.started), Pad: pad})
	return true
}

// Recording reports whether a take is running.
func (r *Recorder) Recording() bool {
	return r.recording
}

// Len returns the number of hits in the running take.
func (r *Recorder) Len() int {
	return len(r.events)
}

// padSequence lists the pads of events in hit order.
func padSequence(events []Event) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(e.Pad)
	}
	return sb.String()
}
