// arcade is a terminal game cabinet: Simon, chess, a drum kit and
// rock-paper-scissors, playable locally or over SSH.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores [game]     - Show high scores (all games when omitted)
//	arcade beats             - List recorded drum beats
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--log-level <level>  - Log level for ~/.arcade/arcade.log (default: info)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tabletop/arcade/internal/config"
	"github.com/tabletop/arcade/internal/core"
	"github.com/tabletop/arcade/internal/logging"

	// Import games to register them
	_ "github.com/tabletop/arcade/internal/games/chess"
	_ "github.com/tabletop/arcade/internal/games/drums"
	_ "github.com/tabletop/arcade/internal/games/rps"
	_ "github.com/tabletop/arcade/internal/games/simon"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "TUI Arcade - Play tabletop games in your terminal",
	Long: `TUI Arcade is a terminal game cabinet with a memory game, chess,
a drum kit you can record, and rock-paper-scissors.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  beats    - Browse recorded drum beats

Examples:
  arcade list
  arcade play simon
  arcade play chess --difficulty hard
  arcade menu
  arcade serve --ssh :2222
  arcade scores rps`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(beatsCmd)
}

// runtimeConfig sizes the first frame from the terminal, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openLogger opens the local session log. The terminal belongs to the game,
// so a log that cannot be opened is replaced by a discard logger.
func openLogger() (*log.Logger, io.Closer) {
	logger, closer, err := logging.Open(logging.DefaultPath, flagLogLevel, "arcade")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		return logging.Discard(), io.NopCloser(nil)
	}
	return logger, closer
}

// loadSettings loads every game config, using customPath for gameID.
// Broken config files fall back to the defaults with a warning.
func loadSettings(gameID, customPath string) config.Settings {
	overrides := map[string]string{}
	if gameID != "" && customPath != "" {
		overrides[gameKey(gameID)] = customPath
	}
	settings, err := config.LoadSettings(overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
	}
	return settings
}

// gameKey maps a registry id to the config it reads.
func gameKey(gameID string) string {
	if gameID == "chess_local" {
		return "chess"
	}
	return gameID
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
