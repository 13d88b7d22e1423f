package config

import (
	_ "embed"
)

//go:embed defaults/simon.yaml
var defaultSimonYAML []byte

//go:embed defaults/chess.yaml
var defaultChessYAML []byte

//go:embed defaults/drums.yaml
var defaultDrumsYAML []byte

//go:embed defaults/rps.yaml
var defaultRPSYAML []byte

// DefaultSimonConfig returns the default memory game configuration.
func DefaultSimonConfig() SimonConfig {
	return SimonConfig{
		Symbols: []string{"green", "red", "yellow", "blue"},
		Timing: SimonTiming{
			LeadInMS:         600,
			FlashMS:          500,
			GapMS:            200,
			InputFlashMS:     300,
			NextRoundPauseMS: 500,
			InputTimeoutMS:   5000,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// DefaultChessConfig returns the default chess configuration.
func DefaultChessConfig() ChessConfig {
	return ChessConfig{
		Engine: ChessEngine{
			MoveTimeMS: 300,
			GraceMS:    2000,
			SkillLevel: 20,
		},
		Board: ChessBoard{
			SquareWidth:  4,
			SquareHeight: 2,
		},
	}
}

// DefaultDrumsConfig returns the default seven-pad kit.
func DefaultDrumsConfig() DrumsConfig {
	return DrumsConfig{
		SampleRate: 22050,
		TailMS:     1000,
		OutputDir:  "~/.arcade/beats",
		Pads: []PadSpec{
			{Key: "w", Label: "Tom 1", Sample: "sounds/sound1.wav", ToneHz: 220},
			{Key: "a", Label: "Tom 2", Sample: "sounds/sound2.wav", ToneHz: 180},
			{Key: "s", Label: "Tom 3", Sample: "sounds/sound3.wav", ToneHz: 145},
			{Key: "d", Label: "Tom 4", Sample: "sounds/sound4.wav", ToneHz: 110},
			{Key: "j", Label: "Snare", Sample: "sounds/sound5.wav", Noise: true},
			{Key: "k", Label: "Crash", Sample: "sounds/sound6.wav", Noise: true},
			{Key: "l", Label: "Kick", Sample: "sounds/sound7.wav", ToneHz: 60},
		},
	}
}

// DefaultRPSConfig returns the default rock-paper-scissors configuration.
func DefaultRPSConfig() RPSConfig {
	return RPSConfig{
		Rounds:   5,
		RevealMS: 1200,
		Difficulty: DifficultyConfig{
			Enabled:     true,
			Progression: ProgressionConfig{Type: "score", MaxAt: 3},
			Scaling:     ScalingConfig{SpeedMultiplier: 1.0},
		},
	}
}

// DefaultSettings returns the hardcoded defaults for every game.
func DefaultSettings() Settings {
	return Settings{
		Simon: DefaultSimonConfig(),
		Chess: DefaultChessConfig(),
		Drums: DefaultDrumsConfig(),
		RPS:   DefaultRPSConfig(),
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "simon":
		return defaultSimonYAML
	case "chess":
		return defaultChessYAML
	case "drums":
		return defaultDrumsYAML
	case "rps":
		return defaultRPSYAML
	default:
		return nil
	}
}
