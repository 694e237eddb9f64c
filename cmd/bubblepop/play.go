package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubblepop/internal/config"
	"github.com/vovakirdan/bubblepop/internal/core"
	"github.com/vovakirdan/bubblepop/internal/platform/tui"
	"github.com/vovakirdan/bubblepop/internal/settings"
)

var (
	flagLevel      int
	flagConfig     string
	flagDifficulty string
	flagSlowMo     bool
	flagSpawnRate  float64
	flagForce      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a level",
	Long: `Start playing the given level.

Controls:
  Mouse click     - Pop a bubble
  Arrows/hjkl     - Move the cursor
  Space/Enter     - Pop the bubble under the cursor
  P               - Pause
  R               - Restart
  B/Esc           - Back
  Q/Ctrl+C        - Quit
  ?               - Help

Debug keys:
  S               - Slow motion
  +/-             - Spawn faster/slower
  D               - Toggle the fixed-seed spawner
  F               - Finish the run now

Difficulty options:
  easy   - Start at the bottom of the ramp, ramp slowly
  normal - Start at 30% of the ramp
  hard   - Start at 70% of the ramp, ramp quickly
  fixed  - No ramp, stays at the config's initial level

Examples:
  bubblepop play
  bubblepop play --level 4 --difficulty hard
  bubblepop play --level 2 --config ./my-bubblepop.yaml
  bubblepop play --level 1 --slowmo --spawn-rate 2`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Level to play (1-20)")
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagSlowMo, "slowmo", false, "Start in slow motion")
	playCmd.Flags().Float64Var(&flagSpawnRate, "spawn-rate", 0, "Spawn rate multiplier (0.1-5)")
	playCmd.Flags().BoolVar(&flagForce, "force", false, "Play the level even if it is locked")
}

// loadTuning reads the tuning file and applies the difficulty preset.
func loadTuning() (config.BubblePopConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

// openSettings opens the accessibility settings. A nil manager uses defaults.
func openSettings(logger *log.Logger) *settings.Manager {
	m, err := settings.Open(logger)
	if err != nil {
		logger.Warn("could not open settings", "error", err)
		return nil
	}
	return m
}

func runPlay(_ *cobra.Command, _ []string) {
	if !core.ValidLevel(flagLevel) {
		fmt.Fprintf(os.Stderr, "Error: unknown level %d\n", flagLevel)
		fmt.Fprintln(os.Stderr, "Run 'bubblepop levels' to see available levels.")
		os.Exit(1)
	}

	tuning, err := loadTuning()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := newFileLogger()
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
		unlocked, err := store.IsLevelUnlocked(flagLevel)
		if err != nil {
			logger.Warn("could not check unlock state", "error", err)
		}
		if err == nil && !unlocked && !flagForce {
			fmt.Fprintf(os.Stderr, "Level %d is locked. Complete level %d first.\n", flagLevel, flagLevel-1)
			return
		}
	}

	_, runErr := tui.Run(tui.Options{
		Runtime:   runtimeConfig(flagLevel),
		Tuning:    tuning,
		Store:     store,
		Settings:  openSettings(logger),
		Logger:    logger,
		SlowMo:    flagSlowMo,
		SpawnRate: flagSpawnRate,
	})
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
