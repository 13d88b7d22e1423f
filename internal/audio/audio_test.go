package audio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestBellCollapsesBursts(t *testing.T) {
	var buf bytes.Buffer
	b := NewBell(&buf)
	clock := time.Unix(0, 0)
	b.now = func() time.Time { return clock }

	b.Play("a")
	b.Play("b")
	clock = clock.Add(100 * time.Millisecond)
	b.Play("c")

	if got := buf.String(); got != "\a\a" {
		t.Errorf("bell output = %q, want two rings", got)
	}
}

func TestOrNull(t *testing.T) {
	OrNull(nil).Play("x")

	var got []string
	p := OrNull(PlayerFunc(func(id string) { got = append(got, id) }))
	p.Play("k")
	if len(got) != 1 || got[0] != "k" {
		t.Errorf("played %v", got)
	}
}

func TestSynthDurations(t *testing.T) {
	tone := Tone(440, 300*time.Millisecond, 1000)
	if len(tone.Data) != 300 {
		t.Errorf("tone length = %d, want 300", len(tone.Data))
	}
	if tone.Duration() != 300*time.Millisecond {
		t.Errorf("tone duration = %v", tone.Duration())
	}

	a := Noise(100*time.Millisecond, 1000, 7)
	b := Noise(100*time.Millisecond, 1000, 7)
	for i := range a.Data {
		if a.Data[i] != b.Data[i] {
			t.Fatalf("noise differs at %d for equal seeds", i)
		}
		if a.Data[i] > 32767 || a.Data[i] < -32768 {
			t.Fatalf("noise sample %d out of range: %d", i, a.Data[i])
		}
	}
}

func TestWAVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hit.wav")
	data := []int{0, 1000, -1000, 32767, -32768, 5}
	if err := WriteWAV(path, data, 8000); err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}

	s, err := LoadWAV(path, 8000)
	if err != nil {
		t.Fatalf("LoadWAV: %v", err)
	}
	if len(s.Data) != len(data) {
		t.Fatalf("loaded %d samples, want %d", len(s.Data), len(data))
	}
	for i := range data {
		if s.Data[i] != data[i] {
			t.Errorf("sample %d = %d, want %d", i, s.Data[i], data[i])
		}
	}

	half, err := LoadWAV(path, 4000)
	if err != nil {
		t.Fatal(err)
	}
	if len(half.Data) != 3 {
		t.Errorf("resampled length = %d, want 3", len(half.Data))
	}
}

func TestBankFallback(t *testing.T) {
	bank := NewBank(1000)
	fallback := Tone(100, 50*time.Millisecond, 1000)

	err := bank.Load("kick", filepath.Join(t.TempDir(), "missing.wav"), fallback)
	if err == nil {
		t.Error("expected load error for missing file")
	}
	s, ok := bank.Get("kick")
	if !ok || len(s.Data) != len(fallback.Data) {
		t.Error("fallback sample not stored")
	}

	junk := filepath.Join(t.TempDir(), "junk.wav")
	if err := os.WriteFile(junk, []byte("not a wav"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := bank.Load("snare", junk, fallback); !errors.Is(err, ErrInvalidWAV) {
		t.Errorf("err = %v, want ErrInvalidWAV", err)
	}

	if _, ok := bank.Get("nothing"); ok {
		t.Error("unexpected sample for unknown id")
	}
}
