package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tabletop/arcade/internal/registry"
	"github.com/tabletop/arcade/internal/storage"
)

var (
	flagClearScores bool
	flagAllScores   bool
	flagGames       int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top 10 high scores for the specified game.
For chess, the most recently finished games are listed as well.
Without a game, a summary of every game played so far is shown.

Examples:
  arcade scores
  arcade scores simon
  arcade scores rps --all
  arcade scores chess --games 5
  arcade scores simon --clear`,
	Args: cobra.RangeArgs(0, 1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all scores for the game")
	scoresCmd.Flags().BoolVar(&flagAllScores, "all", false, "List every score instead of the top 10")
	scoresCmd.Flags().IntVar(&flagGames, "games", 10, "Archived chess games to list")
}

func runScores(_ *cobra.Command, args []string) {
	var gameID string
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
			os.Exit(1)
		}
	} else if flagClearScores {
		fail("--clear needs a game")
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if gameID == "" {
		if err := printSummary(os.Stdout, store); err != nil {
			fail("%v", err)
		}
		return
	}

	info, _ := registry.Info(gameID)
	if flagClearScores {
		if err := store.ClearScores(gameID); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Scores for %s cleared.\n", info.Title)
		return
	}

	if err := printScores(os.Stdout, store, info, flagAllScores); err != nil {
		fail("%v", err)
	}

	if gameID == "chess" || gameID == "chess_local" {
		printChessGames(store)
	}
}

// printSummary writes one line per registered game that has scores.
func printSummary(w io.Writer, store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}

	fmt.Fprintln(w, "High Scores - All games")
	fmt.Fprintln(w)
	if len(stats) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-24s  %-6s  %-6s  %-7s  %s\n", "Game", "Played", "Best", "Average", "Last played")
	fmt.Fprintf(w, "  %-24s  %-6s  %-6s  %-7s  %s\n", "----", "------", "----", "-------", "-----------")
	for _, g := range registry.List() {
		s, ok := stats[g.ID]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  %-24s  %-6d  %-6d  %-7.1f  %s\n",
			g.Title, s.GamesCount, s.HighScore, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'arcade scores <game>' for a game's table.")
	return nil
}

// printScores writes the score table for one game: the top 10, or every
// score when all is set.
func printScores(w io.Writer, store *storage.Store, info registry.GameInfo, all bool) error {
	var (
		scores []storage.ScoreEntry
		err    error
	)
	if all {
		scores, err = store.AllScores(info.ID)
	} else {
		scores, err = store.TopScores(info.ID, 10)
	}
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Fprintf(w, "High Scores - %s\n", info.Title)
	fmt.Fprintln(w)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'arcade play %s' to set the first high score!\n", info.ID)
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Fprintf(w, "  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Fprintf(w, "  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(w)
	if stats, err := store.GetGameStats(info.ID); err == nil && stats != nil {
		fmt.Fprintf(w, "Best: %d  Played: %d  Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
	return nil
}

func printChessGames(store *storage.Store) {
	games, err := store.RecentChessGames(flagGames)
	if err != nil {
		fail("retrieving chess games: %v", err)
	}
	if len(games) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent games:")
	fmt.Printf("  %-16s  %-7s  %-12s  %-12s  %-7s  %-20s  %s\n", "Date", "Mode", "White", "Black", "Result", "Method", "Plies")
	for _, g := range games {
		fmt.Printf("  %-16s  %-7s  %-12s  %-12s  %-7s  %-20s  %d\n",
			g.CreatedAt.Format("2006-01-02 15:04"), g.Mode, g.White, g.Black, g.Result, g.Method, g.Plies)
	}
}
