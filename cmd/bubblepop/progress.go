package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
	"github.com/vovakirdan/bubblepop/internal/storage"
)

var flagResetProgress bool

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show stars and best scores per level",
	Long: `Display the stars and best score of every completed level.

Examples:
  bubblepop progress
  bubblepop progress --reset`,
	Run: runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagResetProgress, "reset", false, "Forget all level completions")
}

func runProgress(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	if flagResetProgress {
		if err := store.ResetProgression(); err != nil {
			fmt.Fprintf(os.Stderr, "Error resetting progression: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Progression reset. Only level 1 is unlocked.")
		return
	}

	progress, err := store.AllProgress()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving progress: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("  %-5s  %-22s  %-5s  %s\n", "Level", "Name", "Stars", "Best")
	fmt.Printf("  %-5s  %-22s  %-5s  %s\n", "-----", "----", "-----", "----")

	stars := 0
	for _, lc := range core.AllLevels(0, 0) {
		p, done := progress[lc.Level]
		if !done {
			fmt.Printf("  %-5d  %-22s  %-5s  %s\n", lc.Level, lc.Name, "-", "-")
			continue
		}
		stars += p.Stars
		fmt.Printf("  %-5d  %-22s  %-5s  %d\n", lc.Level, lc.Name, starString(p.Stars), p.BestScore)
	}

	fmt.Println()
	fmt.Printf("%d/%d levels completed, %d/%d stars\n",
		len(progress), storage.MaxLevel, stars, storage.MaxLevel*3)
}

func starString(n int) string {
	n = min(max(n, 0), 3)
	return strings.Repeat("*", n) + strings.Repeat(".", 3-n)
}
