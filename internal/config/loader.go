package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// load resolves one game's configuration.
// Search order: customPath -> ~/.arcade/configs/<name>.yaml -> ./configs/<name>.yaml -> embedded default.
// Files are decoded on top of the hardcoded defaults, so a partial file only
// overrides the keys it names.
func load[T any](name, customPath string, hardcoded func() T) (T, error) {
	cfg := hardcoded()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return hardcoded(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(name + ".yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = hardcoded()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", name+".yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = hardcoded()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(GetDefaultYAML(name), &cfg); err != nil {
		return hardcoded(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadSimon loads the memory game configuration.
func LoadSimon(customPath string) (SimonConfig, error) {
	return load("simon", customPath, DefaultSimonConfig)
}

// LoadChess loads the chess configuration.
func LoadChess(customPath string) (ChessConfig, error) {
	return load("chess", customPath, DefaultChessConfig)
}

// LoadDrums loads the drum kit configuration.
func LoadDrums(customPath string) (DrumsConfig, error) {
	cfg, err := load("drums", customPath, DefaultDrumsConfig)
	if err != nil {
		return cfg, err
	}
	if err := cfg.validate(); err != nil {
		return DefaultDrumsConfig(), err
	}
	return cfg, nil
}

// LoadRPS loads the rock-paper-scissors configuration.
func LoadRPS(customPath string) (RPSConfig, error) {
	return load("rps", customPath, DefaultRPSConfig)
}

// LoadSettings loads every game's configuration. overrides maps a game ID
// ("simon", "chess", "drums", "rps") to a custom YAML path.
func LoadSettings(overrides map[string]string) (Settings, error) {
	var (
		s   Settings
		err error
	)
	if s.Simon, err = LoadSimon(overrides["simon"]); err != nil {
		return DefaultSettings(), err
	}
	if s.Chess, err = LoadChess(overrides["chess"]); err != nil {
		return DefaultSettings(), err
	}
	if s.Drums, err = LoadDrums(overrides["drums"]); err != nil {
		return DefaultSettings(), err
	}
	if s.RPS, err = LoadRPS(overrides["rps"]); err != nil {
		return DefaultSettings(), err
	}
	return s, nil
}

// validate rejects pad tables the recorder cannot use.
func (d DrumsConfig) validate() error {
	if d.SampleRate <= 0 {
		return fmt.Errorf("config: drums sample_rate must be > 0, got %d", d.SampleRate)
	}
	seen := make(map[string]bool, len(d.Pads))
	for _, p := range d.Pads {
		key := strings.ToLower(p.Key)
		if len([]rune(key)) != 1 {
			return fmt.Errorf("config: drums pad key %q must be a single character", p.Key)
		}
		if seen[key] {
			return fmt.Errorf("config: drums pad key %q bound twice", p.Key)
		}
		seen[key] = true
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// ApplySimonPreset modifies the config based on a difficulty preset.
// Harder presets shorten the input window and start progression further in.
func ApplySimonPreset(cfg *SimonConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Timing.InputTimeoutMS = 8000
	case DifficultyHard:
		cfg.Timing.InputTimeoutMS = 3000
	}
}

// ApplyChessPreset scales the engine strength with the preset.
func ApplyChessPreset(cfg *ChessConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Engine.SkillLevel = 3
		cfg.Engine.MoveTimeMS = 100
	case DifficultyNormal:
		cfg.Engine.SkillLevel = 10
	case DifficultyHard:
		cfg.Engine.SkillLevel = 20
		cfg.Engine.MoveTimeMS = 1000
	}
}

// ApplyPreset applies a difficulty preset to the game it belongs to.
// Games without difficulty settings are left unchanged.
func (s *Settings) ApplyPreset(gameID string, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	switch gameID {
	case "simon":
		ApplySimonPreset(&s.Simon, preset)
	case "chess", "chess_local":
		ApplyChessPreset(&s.Chess, preset)
	}
}
