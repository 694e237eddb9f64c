package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagEventsOut string

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show the local telemetry log",
	Long: `Show a summary of the local telemetry log.

Telemetry never leaves this machine. The newest 1000 events are kept.

Examples:
  bubblepop events
  bubblepop events export --out events.json
  bubblepop events clear`,
	Args: cobra.NoArgs,
	Run:  runEventsSummary,
}

var eventsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all events as JSON",
	Args:  cobra.NoArgs,
	Run:   runEventsExport,
}

var eventsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all events",
	Args:  cobra.NoArgs,
	Run:   runEventsClear,
}

func init() {
	eventsExportCmd.Flags().StringVar(&flagEventsOut, "out", "", "Output file (default stdout)")
	eventsCmd.AddCommand(eventsExportCmd)
	eventsCmd.AddCommand(eventsClearCmd)
}

func runEventsSummary(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	events, err := store.Events(0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading events: %v\n", err)
		os.Exit(1)
	}
	if len(events) == 0 {
		fmt.Println("No events recorded yet.")
		return
	}

	counts := map[string]int{}
	var names []string
	for _, e := range events {
		if counts[e.Name] == 0 {
			names = append(names, e.Name)
		}
		counts[e.Name]++
	}
	fmt.Printf("%d events from %s to %s\n\n", len(events),
		events[0].Timestamp.Local().Format("2006-01-02 15:04"),
		events[len(events)-1].Timestamp.Local().Format("2006-01-02 15:04"))
	for _, name := range names {
		fmt.Printf("  %-18s  %d\n", name, counts[name])
	}
}

func runEventsExport(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	data, err := store.ExportEvents()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting events: %v\n", err)
		os.Exit(1)
	}
	if flagEventsOut == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(flagEventsOut, append(data, '\n'), 0o600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", flagEventsOut, err)
		os.Exit(1)
	}
	fmt.Printf("Exported events to %s\n", flagEventsOut)
}

func runEventsClear(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	if err := store.ClearEvents(); err != nil {
		fmt.Fprintf(os.Stderr, "Error clearing events: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Events cleared.")
}
