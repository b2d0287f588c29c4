package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagList  bool
	flagLimit int
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse recorded sessions",
	Long: `Browse the replay journal.

In a terminal this opens an interactive browser: select a recording and press
Enter to re-simulate it, or X to delete it. With --list (or when stdout is not
a terminal) the journal is printed as plain text.

Examples:
  blockfall replays
  blockfall replays --list --limit 50
  blockfall replays --db /tmp/replays.db`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

func init() {
	replaysCmd.Flags().BoolVar(&flagList, "list", false, "Print the journal instead of opening the browser")
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of recordings to list")
}

func runReplays(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fd := int(os.Stdout.Fd())
	if !flagList && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(fd); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunReplays(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := printReplays(store, flagLimit); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printReplays(store *storage.Store, limit int) error {
	entries, err := store.Replays(limit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No recordings yet. Play a game to record one!")
		return nil
	}

	fmt.Println("\n=== Replay Journal ===")
	fmt.Println()
	fmt.Printf("%-6s %-20s %-8s %8s %6s %8s %s\n", "ID", "Started", "Preset", "Score", "Lines", "Time", "End")
	fmt.Println("------------------------------------------------------------------------")

	for _, e := range entries {
		end := "stopped"
		if e.GameOver {
			end = "game over"
		}
		fmt.Printf("%-6d %-20s %-8s %8d %6d %8s %s\n",
			e.ID,
			e.StartedAt.Local().Format("2006-01-02 15:04:05"),
			e.Preset,
			e.Score,
			e.Lines,
			e.Duration().Round(time.Second).String(),
			end,
		)
	}

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Sessions: %d  Lines: %d  Ticks: %d", stats.Sessions, stats.TotalLines, stats.TotalTicks)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("  Last played: %s", stats.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	fmt.Println()
	fmt.Println()
	return nil
}
