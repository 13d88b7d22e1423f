package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsParse(t *testing.T) {
	for _, id := range []string{"simon", "chess", "drums", "rps"} {
		if len(GetDefaultYAML(id)) == 0 {
			t.Errorf("missing embedded default for %s", id)
		}
	}
	if GetDefaultYAML("pong") != nil {
		t.Error("unknown game should have no embedded default")
	}

	s, err := LoadSettings(nil)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if len(s.Simon.Symbols) != 4 {
		t.Errorf("simon symbols = %v, want 4", s.Simon.Symbols)
	}
	if len(s.Drums.Pads) != 7 {
		t.Errorf("drum pads = %d, want 7", len(s.Drums.Pads))
	}
	if s.Drums.Tail().Milliseconds() != 1000 {
		t.Errorf("drum tail = %v, want 1s", s.Drums.Tail())
	}
	if s.RPS.Rounds != 5 {
		t.Errorf("rps rounds = %d, want 5", s.RPS.Rounds)
	}
}

func TestLoadCustomPathOverridesPartially(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simon.yaml")
	data := []byte("timing:\n  input_timeout_ms: 1234\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSimon(path)
	if err != nil {
		t.Fatalf("LoadSimon: %v", err)
	}
	if cfg.Timing.InputTimeoutMS != 1234 {
		t.Errorf("input timeout = %d, want 1234", cfg.Timing.InputTimeoutMS)
	}
	if cfg.Timing.FlashMS != 500 {
		t.Errorf("flash = %d, want default 500", cfg.Timing.FlashMS)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadRPS(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "rps.yaml")
	if err := os.WriteFile(path, []byte("rounds: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadRPS(path)
	if err == nil {
		t.Error("expected parse error")
	}
	if cfg.Rounds != 5 {
		t.Errorf("rounds after parse error = %d, want default", cfg.Rounds)
	}
}

func TestLoadDrumsRejectsDuplicateKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drums.yaml")
	data := []byte("pads:\n  - key: w\n  - key: W\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDrums(path); err == nil {
		t.Error("expected error for duplicate pad key")
	}
}

func TestApplyPreset(t *testing.T) {
	s := DefaultSettings()
	s.ApplyPreset("simon", DifficultyHard)
	if s.Simon.Timing.InputTimeoutMS != 3000 {
		t.Errorf("hard timeout = %d, want 3000", s.Simon.Timing.InputTimeoutMS)
	}
	if s.Simon.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard initial level = %v", s.Simon.Difficulty.InitialLevel)
	}

	s.ApplyPreset("simon", DifficultyFixed)
	if s.Simon.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	s.ApplyPreset("chess_local", DifficultyEasy)
	if s.Chess.Engine.SkillLevel != 3 {
		t.Errorf("easy skill = %d, want 3", s.Chess.Engine.SkillLevel)
	}

	before := s.RPS
	s.ApplyPreset("rps", DifficultyHard)
	if s.RPS != before {
		t.Error("rps has no presets and must stay unchanged")
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DefaultSimonConfig().Difficulty
	dm := NewDifficultyManager(cfg)

	if got := dm.Level(0, 0); got != 0 {
		t.Errorf("Level(0) = %v, want 0", got)
	}
	if got := dm.Level(40, 0); got != 1 {
		t.Errorf("Level beyond max = %v, want 1", got)
	}
	if got := dm.Shorten(500, 100, 0); got != 500 {
		t.Errorf("Shorten at level 0 = %d, want 500", got)
	}
	if got := dm.Shorten(500, 100, 20); got != 250 {
		t.Errorf("Shorten at max = %d, want 250", got)
	}
	if got := dm.Shorten(500, 300, 20); got != 300 {
		t.Errorf("Shorten floor = %d, want 300", got)
	}

	cfg.Enabled = false
	fixed := NewDifficultyManager(cfg)
	fixed.SetInitialLevel(0.5)
	if got := fixed.Level(20, 0); got != 0.5 {
		t.Errorf("disabled Level = %v, want initial 0.5", got)
	}
}

func TestExpandHome(t *testing.T) {
	got, err := ExpandHome("/abs/path")
	if err != nil || got != "/abs/path" {
		t.Errorf("ExpandHome(abs) = %q, %v", got, err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err = ExpandHome("~/beats")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "beats") {
		t.Errorf("ExpandHome(~/beats) = %q", got)
	}
}
