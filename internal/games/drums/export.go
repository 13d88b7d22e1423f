package drums

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"

	"github.com/tabletop/arcade/internal/audio"
	"github.com/tabletop/arcade/internal/config"
	"github.com/tabletop/arcade/internal/storage"
)

// ErrEmptyRecording is returned when a take holds no hits.
var ErrEmptyRecording = errors.New("drums: no sounds recorded")

// Exporter writes mixdowns into a directory and indexes them in the store.
type Exporter struct {
	dir   string
	rate  int
	tail  time.Duration
	store *storage.Store // optional
	now   func() time.Time
	name  func() string
}

// NewExporter creates an exporter from the drum configuration.
func NewExporter(cfg config.DrumsConfig, store *storage.Store) *Exporter {
	return &Exporter{
		dir:   expandHome(cfg.OutputDir),
		rate:  cfg.SampleRate,
		tail:  cfg.Tail(),
		store: store,
		now:   time.Now,
		name:  func() string { return petname.Generate(2, "-") },
	}
}

// Export mixes events down and saves the result as a WAV file.
func (e *Exporter) Export(events []Event, src SampleSource, owner string) (storage.Recording, error) {
	if len(events) == 0 {
		return storage.Recording{}, ErrEmptyRecording
	}

	mix := Mixdown(events, src, e.rate, e.tail)
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return storage.Recording{}, fmt.Errorf("drums: cannot create %s: %w", e.dir, err)
	}

	name := e.name()
	path := filepath.Join(e.dir, fmt.Sprintf("beat-%s-%s.wav", name, e.now().Format("20060102-150405")))
	if err := audio.WriteWAV(path, clip(mix), e.rate); err != nil {
		return storage.Recording{}, fmt.Errorf("drums: %w", err)
	}

	rec := storage.Recording{
		ID:         uuid.NewString(),
		Name:       name,
		Path:       path,
		Events:     len(events),
		DurationMS: Duration(mix, e.rate).Milliseconds(),
		Pads:       padSequence(events),
		Owner:      owner,
	}
	if e.store != nil {
		if err := e.store.SaveRecording(rec); err != nil {
			return rec, fmt.Errorf("drums: saved %s but could not index it: %w", path, err)
		}
	}
	return rec, nil
}
