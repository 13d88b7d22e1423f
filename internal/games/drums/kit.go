// Package drums is a seven-pad drum kit that can record what is played and
// mix the performance down to a WAV file.
package drums

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tabletop/arcade/internal/audio"
	"github.com/tabletop/arcade/internal/config"
)

// fallbackLength is the length of a synthesized hit.
const fallbackLength = 300 * time.Millisecond

// Pad is one playable drum. Its ID is the key it is bound to.
type Pad struct {
	ID        string
	Key       rune
	Label     string
	Synthetic bool // the sample file could not be used
}

// Kit is the immutable pad table plus the samples behind it.
type Kit struct {
	pads  []Pad
	byKey map[rune]int
	bank  *audio.Bank
}

// NewKit loads every pad sample. Relative sample paths are resolved against
// baseDir. A sample that cannot be read is replaced by a synthesized hit and
// logged; the kit stays playable.
func NewKit(cfg config.DrumsConfig, baseDir string, logger *log.Logger) *Kit {
	k := &Kit{
		byKey: make(map[rune]int, len(cfg.Pads)),
		bank:  audio.NewBank(cfg.SampleRate),
	}

	for i, spec := range cfg.Pads {
		key := []rune(strings.ToLower(spec.Key))[0]
		pad := Pad{ID: string(key), Key: key, Label: spec.Label}

		fallback := synthesize(spec, cfg.SampleRate, int64(i+1))
		if spec.Sample == "" {
			k.bank.Add(pad.ID, fallback)
			pad.Synthetic = true
		} else if err := k.bank.Load(pad.ID, resolve(baseDir, spec.Sample), fallback); err != nil {
			logger.Warn("sample unavailable, using synthesized hit", "pad", pad.ID, "label", spec.Label, "error", err)
			pad.Synthetic = true
		}

		k.byKey[key] = len(k.pads)
		k.pads = append(k.pads, pad)
	}
	return k
}

func synthesize(spec config.PadSpec, rate int, seed int64) audio.Sample {
	if spec.Noise || spec.ToneHz <= 0 {
		return audio.Noise(fallbackLength, rate, seed)
	}
	return audio.Tone(spec.ToneHz, fallbackLength, rate)
}

func resolve(baseDir, path string) string {
	path = expandHome(path)
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

// expandHome expands a leading ~, leaving the path unchanged when the home
// directory is unknown.
func expandHome(path string) string {
	if p, err := config.ExpandHome(path); err == nil {
		return p
	}
	return path
}

// Pads returns the pads in configuration order.
func (k *Kit) Pads() []Pad {
	return append([]Pad(nil), k.pads...)
}

// PadForKey returns the pad bound to r, ignoring case.
func (k *Kit) PadForKey(r rune) (Pad, bool) {
	i, ok := k.byKey[toLower(r)]
	if !ok {
		return Pad{}, false
	}
	return k.pads[i], true
}

// Pad returns the pad with the given id.
func (k *Kit) Pad(id string) (Pad, bool) {
	r := []rune(id)
	if len(r) != 1 {
		return Pad{}, false
	}
	return k.PadForKey(r[0])
}

// Sample returns the sound of a pad.
func (k *Kit) Sample(id string) (audio.Sample, bool) {
	return k.bank.Get(id)
}

// Rate returns the sample rate shared by all pads.
func (k *Kit) Rate() int {
	return k.bank.Rate()
}

func (k *Kit) String() string {
	labels := make([]string, len(k.pads))
	for i, p := range k.pads {
		labels[i] = fmt.Sprintf("%c=%s", p.Key, p.Label)
	}
	return strings.Join(labels, " ")
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + 'a' - 'A'
	}
	return r
}
