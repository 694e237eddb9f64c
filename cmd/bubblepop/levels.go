package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all levels",
	Long:  `Shows every level with its theme, objectives and whether it is unlocked.`,
	Run:   runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	logger := newLogger()
	store := openStore(logger)
	var completed []int
	if store != nil {
		defer store.Close()
		levels, err := store.CompletedLevels()
		if err != nil {
			logger.Warn("could not load progress", "error", err)
		}
		completed = levels
	}

	for _, theme := range core.Themes() {
		fmt.Println(theme.Title())
		for _, lc := range core.ThemeLevels(theme, 0, 0) {
			state := "locked"
			if core.IsLevelUnlocked(lc.Level, completed) {
				state = "open"
			}
			fmt.Printf("  %2d  %-22s  %-6s  %s\n", lc.Level, lc.Name, state, lc.Primary)
			if lc.Secondary != "" {
				fmt.Printf("      %-22s  %-6s  %s\n", "", "", lc.Secondary)
			}
		}
		fmt.Println()
	}

	fmt.Println("Run 'bubblepop play --level <n>' to play a level.")
}
