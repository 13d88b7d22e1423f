package drums

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tabletop/arcade/internal/audio"
	"github.com/tabletop/arcade/internal/config"
	"github.com/tabletop/arcade/internal/storage"
)

func newTestExporter(t *testing.T, store *storage.Store) *Exporter {
	t.Helper()
	cfg := config.DefaultDrumsConfig()
	cfg.OutputDir = filepath.Join(t.TempDir(), "beats")
	cfg.SampleRate = testRate
	e := NewExporter(cfg, store)
	e.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }
	e.name = func() string { return "brave-otter" }
	return e
}

func TestExportWritesAndIndexes(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "arcade.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	e := newTestExporter(t, store)
	src := fakeSource{"k": constSample(100, 300*time.Millisecond), "j": constSample(-100, 300*time.Millisecond)}
	rec, err := e.Export([]Event{{0, "k"}, {500 * time.Millisecond, "j"}}, src, "alice")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if filepath.Base(rec.Path) != "beat-brave-otter-20240501-123000.wav" {
		t.Errorf("path = %s", rec.Path)
	}
	if rec.DurationMS < 1500 || rec.Events != 2 || rec.Pads != "kj" {
		t.Errorf("recording = %+v", rec)
	}

	s, err := audio.LoadWAV(rec.Path, testRate)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if s.Data[0] != 100 || s.Data[600] != -100 {
		t.Errorf("samples = %d %d", s.Data[0], s.Data[600])
	}

	indexed, err := store.Recordings(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(indexed) != 1 || indexed[0].ID != rec.ID || indexed[0].Owner != "alice" {
		t.Errorf("indexed = %+v", indexed)
	}
}

func TestExportEmpty(t *testing.T) {
	e := newTestExporter(t, nil)
	_, err := e.Export(nil, fakeSource{}, "")
	if !errors.Is(err, ErrEmptyRecording) {
		t.Fatalf("err = %v, want ErrEmptyRecording", err)
	}
	if _, err := os.Stat(e.dir); !os.IsNotExist(err) {
		t.Error("empty take created the output directory")
	}
}

func TestExportUnwritableDir(t *testing.T) {
	e := newTestExporter(t, nil)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	e.dir = filepath.Join(blocker, "beats")

	_, err := e.Export([]Event{{0, "k"}}, fakeSource{"k": constSample(1, 10*time.Millisecond)}, "")
	if err == nil {
		t.Fatal("expected an error for an unwritable directory")
	}
}
