// bubblepop is a terminal bubble popping game with twenty themed levels.
//
// Usage:
//
//	bubblepop menu                - Pick a level interactively
//	bubblepop play --level <n>    - Play a level directly
//	bubblepop levels              - List levels and their unlock state
//	bubblepop progress            - Show stars and best scores
//	bubblepop scores <level>      - Show top runs for a level
//	bubblepop settings            - Show or change accessibility settings
//	bubblepop sim                 - Run levels headless with a bot
//	bubblepop events              - Export or clear local telemetry
//	bubblepop serve               - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.bubblepop/bubblepop.db)
//	--log-level <level>   - Set log level: debug, info, warn, error
//	--deterministic       - Start runs with the fixed-seed spawner
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bubblepop/internal/core"
	"github.com/vovakirdan/bubblepop/internal/storage"
)

var (
	// Global flags
	flagFPS           int
	flagSeed          int64
	flagDBPath        string
	flagLogLevel      string
	flagDeterministic bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bubblepop",
	Short: "Bubble Pop - pop bubbles in your terminal",
	Long: `Bubble Pop is a terminal game about popping bubbles before they float away.

Twenty levels across four themes (farm, beach, candy, space) each come
with their own objectives. Completing a level unlocks the next one.

Available commands:
  menu      - Interactive level select
  play      - Play a specific level directly
  levels    - Show all levels
  progress  - Stars and best scores per level
  scores    - Top runs for a level
  settings  - Accessibility settings
  sim       - Headless bot runs for tuning
  events    - Local telemetry log
  serve     - Start SSH server for remote play

Examples:
  bubblepop menu
  bubblepop play --level 3
  bubblepop settings set color-assist on
  bubblepop sim --all --accuracy 0.8
  bubblepop serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to progression database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagDeterministic, "deterministic", false, "Start runs with the fixed-seed spawner")

	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger creates the console logger for non-interactive commands.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "bubblepop",
	})
	setLevel(logger)
	return logger
}

// newFileLogger logs to ~/.bubblepop/bubblepop.log so that the alternate
// screen is left alone. The returned function closes the file.
func newFileLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return newLogger(), func() {}
	}
	dir := filepath.Join(home, ".bubblepop")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newLogger(), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "bubblepop.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return newLogger(), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{ReportTimestamp: true})
	setLevel(logger)
	return logger, func() { f.Close() }
}

func setLevel(logger *log.Logger) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
}

// openStore opens the progression database. Play continues without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open progression database", "error", err)
		return nil
	}
	return store
}

// mustOpenStore opens the database or exits.
func mustOpenStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening progression database: %v\n", err)
		os.Exit(1)
	}
	return store
}

// runtimeConfig builds the runtime config from the terminal size and
// global flags.
func runtimeConfig(level int) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.Deterministic = flagDeterministic
	cfg.Level = level
	return cfg
}
