// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import "time"

// Settings bundles the configuration of every game. It is loaded once at
// startup and handed to game factories read-only.
type Settings struct {
	Simon SimonConfig
	Chess ChessConfig
	Drums DrumsConfig
	RPS   RPSConfig
}

// SimonConfig contains all configuration for the memory game.
type SimonConfig struct {
	Symbols    []string         `yaml:"symbols"`
	Timing     SimonTiming      `yaml:"timing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SimonTiming holds the presentation and input timings in milliseconds.
type SimonTiming struct {
	LeadInMS         int `yaml:"lead_in_ms"`          // pause before the first flash
	FlashMS          int `yaml:"flash_ms"`            // how long one symbol stays lit
	GapMS            int `yaml:"gap_ms"`              // dark time between symbols
	InputFlashMS     int `yaml:"input_flash_ms"`      // feedback flash for a player press
	NextRoundPauseMS int `yaml:"next_round_pause_ms"` // pause after a completed round
	InputTimeoutMS   int `yaml:"input_timeout_ms"`    // max wait for the next press
}

// LeadIn returns the lead-in pause.
func (t SimonTiming) LeadIn() time.Duration { return ms(t.LeadInMS) }

// Flash returns the presentation flash duration.
func (t SimonTiming) Flash() time.Duration { return ms(t.FlashMS) }

// Gap returns the dark gap between presented symbols.
func (t SimonTiming) Gap() time.Duration { return ms(t.GapMS) }

// InputFlash returns the feedback flash duration.
func (t SimonTiming) InputFlash() time.Duration { return ms(t.InputFlashMS) }

// NextRoundPause returns the pause after a completed round.
func (t SimonTiming) NextRoundPause() time.Duration { return ms(t.NextRoundPauseMS) }

// InputTimeout returns the input latency bound.
func (t SimonTiming) InputTimeout() time.Duration { return ms(t.InputTimeoutMS) }

// ChessConfig contains configuration for the chess board and its engine.
type ChessConfig struct {
	Engine ChessEngine `yaml:"engine"`
	Board  ChessBoard  `yaml:"board"`
}

// ChessEngine configures the external UCI engine.
type ChessEngine struct {
	Path       string `yaml:"path"`         // UCI binary; empty selects the built-in engine
	MoveTimeMS int    `yaml:"move_time_ms"` // search budget per move
	GraceMS    int    `yaml:"grace_ms"`     // extra wait before the request is abandoned
	SkillLevel int    `yaml:"skill_level"`  // 0-20, sent as "Skill Level"
}

// MoveTime returns the per-move search budget.
func (e ChessEngine) MoveTime() time.Duration { return ms(e.MoveTimeMS) }

// Deadline returns the total bounded wait for one engine reply.
func (e ChessEngine) Deadline() time.Duration { return ms(e.MoveTimeMS + e.GraceMS) }

// ChessBoard configures the on-screen board geometry.
type ChessBoard struct {
	SquareWidth  int `yaml:"square_width"`
	SquareHeight int `yaml:"square_height"`
}

// DrumsConfig contains the pad table and mixdown parameters.
type DrumsConfig struct {
	SampleRate int       `yaml:"sample_rate"`
	TailMS     int       `yaml:"tail_ms"`    // silence appended after the last hit
	OutputDir  string    `yaml:"output_dir"` // where mixdowns are written
	Pads       []PadSpec `yaml:"pads"`
}

// Tail returns the mixdown tail.
func (d DrumsConfig) Tail() time.Duration { return ms(d.TailMS) }

// PadSpec binds one key to a sample.
type PadSpec struct {
	Key    string  `yaml:"key"`
	Label  string  `yaml:"label"`
	Sample string  `yaml:"sample"`  // WAV file; missing files fall back to a synthesized hit
	ToneHz float64 `yaml:"tone_hz"` // pitch of the synthesized fallback
	Noise  bool    `yaml:"noise"`   // synthesize a noise burst instead of a tone
}

// RPSConfig configures a rock-paper-scissors session.
type RPSConfig struct {
	Rounds     int              `yaml:"rounds"`     // rounds per session
	RevealMS   int              `yaml:"reveal_ms"`  // how long a round result stays on screen
	Difficulty DifficultyConfig `yaml:"difficulty"` // shortens the reveal as wins pile up
}

// Reveal returns the result display time.
func (r RPSConfig) Reveal() time.Duration { return ms(r.RevealMS) }

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
