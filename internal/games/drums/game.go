package drums

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tabletop/arcade/internal/audio"
	"github.com/tabletop/arcade/internal/config"
	"github.com/tabletop/arcade/internal/core"
	"github.com/tabletop/arcade/internal/logging"
	"github.com/tabletop/arcade/internal/multiplayer"
	"github.com/tabletop/arcade/internal/registry"
)

const (
	msgReady   = "Press Enter to record"
	msgRec     = "Recording..."
	msgStopped = "Recording Stopped"
	msgEmpty   = "No sounds recorded."

	flashTime = 150 * time.Millisecond
)

// Game is the playable drum kit.
type Game struct {
	cfg    config.DrumsConfig
	sound  audio.Player
	logger *log.Logger
	owner  string

	kit      *Kit
	recorder Recorder
	exporter *Exporter

	interval time.Duration
	tick     uint64

	message   string
	dismiss   bool // message stays until the next key
	current   string
	flashPad  string
	flashEnd  time.Time
	saved     int
	lastSaved string

	pads []core.Rect // click targets from the last render, in kit order
}

// New creates a drum kit game. Samples are loaded on the first Reset.
func New(deps registry.Deps) *Game {
	cfg := deps.Settings.Drums
	if len(cfg.Pads) == 0 || cfg.SampleRate <= 0 {
		cfg = config.DefaultDrumsConfig()
	}
	g := &Game{
		cfg:      cfg,
		sound:    audio.OrNull(deps.Sound),
		logger:   logging.OrDiscard(deps.Logger),
		exporter: NewExporter(cfg, deps.Store),
	}
	if deps.Match != nil {
		g.owner = deps.Match.Name(multiplayer.Player1)
	}
	return g
}

func init() {
	registry.Register("drums", func(deps registry.Deps) registry.Game {
		return New(deps)
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "drums" }

// Title returns the display name.
func (g *Game) Title() string { return "Drum Kit" }

// Reset stops any take and clears the status line.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.kit == nil {
		g.kit = NewKit(g.cfg, "", g.logger)
	}
	g.interval = cfg.TickInterval()
	g.tick = 0
	g.recorder = Recorder{}
	g.message = msgReady
	g.dismiss = false
	g.current = ""
	g.flashPad = ""
	g.layout(cfg.ScreenW, cfg.ScreenH)
}

func (g *Game) now() time.Time {
	return time.Unix(0, 0).Add(time.Duration(g.tick) * g.interval)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	now := in.At(g.now())

	if g.dismiss {
		if in.Empty() {
			return core.StepResult{State: g.State()}
		}
		g.dismiss = false
		g.message = msgReady
		return core.StepResult{State: g.State()}
	}

	for _, r := range in.Keys {
		if pad, ok := g.kit.PadForKey(r); ok {
			g.Press(pad.ID, now)
		}
	}
	for _, c := range in.Clicks {
		for i, rect := range g.pads {
			if rect.ContainsPoint(c) {
				g.Press(g.kit.pads[i].ID, now)
				break
			}
		}
	}

	if in.Has(core.ActionConfirm) {
		if g.recorder.Recording() {
			g.Stop()
		} else {
			g.Start(now)
		}
	}

	return core.StepResult{State: g.State()}
}

// Press plays a pad and records it when a take is running.
func (g *Game) Press(id string, now time.Time) {
	if _, ok := g.kit.Pad(id); !ok {
		return
	}
	g.sound.Play(id)
	g.recorder.Press(id, now)
	g.current = id
	g.flashPad = id
	g.flashEnd = now.Add(flashTime)
}

// Start begins recording.
func (g *Game) Start(now time.Time) {
	g.recorder.Start(now)
	g.message = msgRec
	g.logger.Debug("recording started")
}

// Stop ends the take and exports it.
func (g *Game) Stop() {
	events := g.recorder.Stop()
	g.message = msgStopped

	rec, err := g.exporter.Export(events, g.kit, g.owner)
	switch {
	case errors.Is(err, ErrEmptyRecording):
		g.message = msgEmpty
	case err != nil:
		g.logger.Error("beat export failed", "error", err)
		g.message = fmt.Sprintf("Export failed: %v (press any key)", err)
		g.dismiss = true
	default:
		g.saved++
		g.lastSaved = rec.Path
		g.message = fmt.Sprintf("%s. Saved %s", msgStopped, filepath.Base(rec.Path))
		g.logger.Info("beat saved", "path", rec.Path, "events", rec.Events, "duration_ms", rec.DurationMS)
	}
}

// State returns the current game state. The kit never ends on its own; the
// score counts beats saved this session.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.saved}
}

// Kit returns the loaded kit.
func (g *Game) Kit() *Kit {
	return g.kit
}
