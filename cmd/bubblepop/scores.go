package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <level>",
	Short: "Show top runs for a level",
	Long: `Display the top 10 runs for the given level.

Examples:
  bubblepop scores 1
  bubblepop scores 12`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func runScores(_ *cobra.Command, args []string) {
	level, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid level %q\n", args[0])
		os.Exit(1)
	}
	lc, err := core.LevelConfigFor(level, 0, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'bubblepop levels' to see available levels.")
		os.Exit(1)
	}

	store := mustOpenStore()

	runs, err := store.TopScores(level, 10)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fmt.Printf("Top Runs - Level %d: %s\n", lc.Level, lc.Name)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'bubblepop play --level %d' to set the first score!\n", level)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-9s  %-6s  %s\n", "Rank", "Score", "Stars", "Outcome", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-9s  %-6s  %s\n", "----", "-----", "-----", "-------", "----", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-5s  %-9s  %-6s  %s\n",
			i+1, r.Score, starString(r.Stars), r.Outcome,
			fmt.Sprintf("%.0fs", r.Duration.Seconds()),
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.HighScore(level); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
}
