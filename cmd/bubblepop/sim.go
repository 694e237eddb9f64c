package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	platformcore "github.com/vovakirdan/bubblepop/internal/core"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
)

var (
	flagSimLevel    int
	flagSimAll      bool
	flagSimSeconds  float64
	flagSimReaction float64
	flagSimAccuracy float64
	flagSimWidth    int
	flagSimHeight   int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run levels headless with a bot",
	Long: `Play levels without a terminal using a simple bot and print the results.
Useful for checking tuning changes. Runs use the --seed flag (default 1 here)
so the same flags always give the same numbers.

Examples:
  bubblepop sim --level 3
  bubblepop sim --all --accuracy 0.6
  bubblepop sim --all --difficulty hard --seed 42`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimLevel, "level", 1, "Level to simulate (1-20)")
	simCmd.Flags().BoolVar(&flagSimAll, "all", false, "Simulate every level")
	simCmd.Flags().Float64Var(&flagSimSeconds, "seconds", 0, "Stop after this much game time (0 = run to the end)")
	simCmd.Flags().Float64Var(&flagSimReaction, "reaction", 0.3, "Seconds a bubble must be visible before the bot pops it")
	simCmd.Flags().Float64Var(&flagSimAccuracy, "accuracy", 0.9, "Chance that the bot avoids avoiders (0-1)")
	simCmd.Flags().IntVar(&flagSimWidth, "cols", 80, "Terminal columns to size the playfield for")
	simCmd.Flags().IntVar(&flagSimHeight, "rows", 24, "Terminal rows to size the playfield for")
	simCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

type simOutcome struct {
	result core.Result
	popped int
	culled int
}

func runSim(cmd *cobra.Command, _ []string) error {
	tuning, err := loadTuning()
	if err != nil {
		return err
	}

	levels := []int{flagSimLevel}
	if flagSimAll {
		levels = levels[:0]
		for l := 1; l <= platformcore.MaxLevel; l++ {
			levels = append(levels, l)
		}
	} else if !platformcore.ValidLevel(flagSimLevel) {
		return fmt.Errorf("unknown level %d", flagSimLevel)
	}

	seed := flagSeed
	if seed == 0 {
		seed = 1
	}
	w, h := bubblepop.PlayfieldSize(flagSimWidth, flagSimHeight)
	logger := newLogger()

	outcomes := make([]simOutcome, len(levels))
	g, ctx := errgroup.WithContext(context.Background())
	for i, level := range levels {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			run := core.HeadlessRun{
				Options: core.SessionOptions{
					Level:         level,
					ScreenW:       w,
					ScreenH:       h,
					Tuning:        tuning,
					Seed:          seed + int64(level),
					Deterministic: flagDeterministic,
					Logger:        logger.With("level", level),
				},
				Bot:   core.NewAutoplay(core.NewRandomSource(seed*31+int64(level)), flagSimReaction, flagSimAccuracy),
				Start: time.Unix(0, 0),
				Limit: time.Duration(flagSimSeconds * float64(time.Second)),
			}
			res, events, err := run.Run()
			if err != nil {
				return fmt.Errorf("level %d: %w", level, err)
			}
			out := simOutcome{result: res}
			for _, e := range events {
				switch e.Type {
				case core.EventPopped:
					out.popped++
				case core.EventCulled:
					out.culled++
				}
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  %-5s  %-10s  %-7s  %-5s  %-5s  %-6s  %-6s  %s\n",
		"Level", "Outcome", "Score", "Stars", "Pops", "Culled", "Avoid", "Time")
	fmt.Fprintf(out, "  %-5s  %-10s  %-7s  %-5s  %-5s  %-6s  %-6s  %s\n",
		"-----", "-------", "-----", "-----", "----", "------", "-----", "----")
	completed := 0
	for _, o := range outcomes {
		r := o.result
		if r.Outcome == core.OutcomeCompleted {
			completed++
		}
		fmt.Fprintf(out, "  %-5d  %-10s  %-7d  %-5s  %-5d  %-6d  %-6d  %.1fs\n",
			r.Level, r.Outcome, r.Score, starString(r.Stars), o.popped, o.culled, r.AvoidViolations, r.Duration.Seconds())
	}
	fmt.Fprintf(out, "\n%d/%d levels completed\n", completed, len(outcomes))
	return nil
}
