package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubblepop/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the level select menu",
	Long: `Start Bubble Pop in interactive menu mode.

Use the arrow keys to pick a level and Enter to play it. Left and right
switch between themes. After a level ends, press B to return to the menu.

Controls:
  Arrows/hjkl  - Navigate levels
  Enter/Space  - Play level
  Tab          - Progress
  Q            - Quit

Examples:
  bubblepop menu
  bubblepop menu --fps 30
  bubblepop menu --difficulty easy`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runMenu(_ *cobra.Command, _ []string) {
	tuning, err := loadTuning()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := newFileLogger()
	defer closeLog()

	store := openStore(logger)
	prefs := openSettings(logger)
	cfg := runtimeConfig(1)

	for {
		menuResult, err := tui.RunMenu(store, cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsProgress {
			goBack, pErr := tui.RunProgress(store, cfg.ScreenW, cfg.ScreenH, logger)
			if pErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", pErr)
			}
			if goBack {
				continue
			}
			break
		}

		if menuResult.Level == 0 {
			break
		}
		cfg.Level = menuResult.Level

		// Fresh seed for each run unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		exit, err := tui.Run(tui.Options{
			Runtime:  cfg,
			Tuning:   tuning,
			Store:    store,
			Settings: prefs,
			Logger:   logger,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if exit == tui.ExitQuit {
			break
		}
	}

	if store != nil {
		store.Close()
	}
}
