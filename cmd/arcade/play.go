package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tabletop/arcade/internal/audio"
	"github.com/tabletop/arcade/internal/config"
	"github.com/tabletop/arcade/internal/core"
	"github.com/tabletop/arcade/internal/multiplayer"
	"github.com/tabletop/arcade/internal/platform/tui"
	"github.com/tabletop/arcade/internal/registry"
	"github.com/tabletop/arcade/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows       - Move the cursor
  Space        - Select / click under the cursor
  Enter        - Confirm (start, record/stop)
  Mouse        - Click pads, squares and buttons
  Tab          - Pause
  R            - Restart (after game over)
  Esc          - Back
  Q/Ctrl+C     - Quit
  Ctrl+S       - Save a screenshot

Difficulty options (simon, chess):
  easy, normal, hard, fixed

Examples:
  arcade play simon
  arcade play simon --difficulty hard
  arcade play chess
  arcade play chess_local
  arcade play drums --config ./my-kit.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	cfg := runtimeConfig()
	settings := loadSettings(gameID, flagConfig)
	preset := config.DifficultyPreset(flagDifficulty)

	// Chess asks for the opponent first, unless the id already says
	if gameID == "chess" {
		sel, quit, err := tui.RunChessModeSelector(cfg)
		if err != nil {
			fail("%v", err)
		}
		if quit || sel == nil {
			return
		}
		gameID = sel.GameID
		if preset == "" {
			preset = sel.Preset
		}
	}
	settings.ApplyPreset(gameID, preset)

	logger, closer := openLogger()
	defer closer.Close()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	_, runErr := playGame(gameID, settings, store, cfg, logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("%v", runErr)
	}
}

// playGame creates gameID for the local player and runs it until the player
// quits or goes back.
func playGame(gameID string, settings config.Settings, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) (back bool, err error) {
	info, _ := registry.Info(gameID)
	match := multiplayer.NewMatch(multiplayer.NewMatchID(), info.Mode, multiplayer.NewSessionID(), "")

	game, err := registry.Create(gameID, registry.Deps{
		Settings: settings,
		Logger:   logger.WithPrefix(gameID),
		Sound:    audio.NewBell(os.Stdout),
		Store:    store,
		Match:    match,
	})
	if err != nil {
		return false, fmt.Errorf("creating game: %w", err)
	}

	logger.Info("game started", "game", gameID, "mode", info.Mode, "match", match.ID())
	back, err = tui.Run(game, store, cfg, logger)
	if err != nil {
		return false, fmt.Errorf("running game: %w", err)
	}
	return back, nil
}
