package drums

import (
	"testing"
	"time"
)

func TestRecorder(t *testing.T) {
	base := time.Unix(100, 0)
	var r Recorder

	if r.Press("k", base) {
		t.Fatal("press recorded while idle")
	}

	r.Start(base)
	r.Press("k", base)
	r.Press("j", base.Add(500*time.Millisecond))
	if r.Len() != 2 || !r.Recording() {
		t.Fatalf("len = %d recording = %v", r.Len(), r.Recording())
	}

	events := r.Stop()
	want := []Event{{0, "k"}, {500 * time.Millisecond, "j"}}
	if len(events) != len(want) {
		t.Fatalf("events = %v", events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, events[i], want[i])
		}
	}
	if r.Recording() || r.Len() != 0 {
		t.Error("stop did not reset the recorder")
	}
	if got := padSequence(events); got != "kj" {
		t.Errorf("padSequence = %q", got)
	}

	r.Start(base.Add(time.Hour))
	if len(r.Stop()) != 0 {
		t.Error("new take kept old events")
	}
}
