package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tabletop/arcade/internal/platform/tui"
	"github.com/tabletop/arcade/internal/storage"
)

var (
	flagBrowse     bool
	flagBeatsLimit int
)

var beatsCmd = &cobra.Command{
	Use:   "beats [id]",
	Short: "List recorded drum beats",
	Long: `List the beats recorded with the drum kit, newest first.
With an id, show the details of a single beat.

Examples:
  arcade beats
  arcade beats --limit 50
  arcade beats 6f1c2b7e-...
  arcade beats --browse`,
	Args: cobra.MaximumNArgs(1),
	Run:  runBeats,
}

func init() {
	beatsCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive beats browser")
	beatsCmd.Flags().IntVar(&flagBeatsLimit, "limit", 20, "Number of beats to list")
}

func runBeats(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening database: %v", err)
	}
	defer store.Close()

	if flagBrowse {
		cfg := runtimeConfig()
		if _, err := tui.RunBeats(store, cfg.ScreenW, cfg.ScreenH); err != nil {
			fail("%v", err)
		}
		return
	}

	if len(args) == 1 {
		showBeat(store, args[0])
		return
	}

	recs, err := store.Recordings(flagBeatsLimit)
	if err != nil {
		fail("%v", err)
	}
	if len(recs) == 0 {
		fmt.Println("No beats recorded yet.")
		fmt.Println()
		fmt.Println("Play 'arcade play drums', press Enter to record and Enter again to save.")
		return
	}

	fmt.Printf("  %-36s  %-20s  %-6s  %-8s  %-16s  %s\n", "ID", "Name", "Hits", "Length", "Date", "File")
	for _, r := range recs {
		fmt.Printf("  %-36s  %-20s  %-6d  %-8s  %-16s  %s\n",
			r.ID, r.Name, r.Events, fmt.Sprintf("%.1fs", float64(r.DurationMS)/1000),
			r.CreatedAt.Format("2006-01-02 15:04"), r.Path)
	}
}

func showBeat(store *storage.Store, id string) {
	r, err := store.RecordingByID(id)
	if err != nil {
		fail("%v", err)
	}
	if r == nil {
		fail("no beat with id %q", id)
	}

	fmt.Printf("Name:    %s\n", r.Name)
	fmt.Printf("File:    %s\n", r.Path)
	fmt.Printf("Hits:    %d (%s)\n", r.Events, r.Pads)
	fmt.Printf("Length:  %.1fs\n", float64(r.DurationMS)/1000)
	if r.Owner != "" {
		fmt.Printf("Owner:   %s\n", r.Owner)
	}
	fmt.Printf("Date:    %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))

	if _, err := os.Stat(r.Path); err != nil {
		fmt.Println()
		fmt.Println("Warning: the WAV file is missing.")
	}
}
