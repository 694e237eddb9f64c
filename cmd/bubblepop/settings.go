package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubblepop/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show accessibility settings",
	Long: `Show or change the accessibility settings.

Flags:
  reduce-motion    - Fewer particles and shorter effects
  color-assist     - Draw a symbol on every bubble
  long-press-mode  - Pop with the mouse only after holding for 400ms

Examples:
  bubblepop settings
  bubblepop settings get color-assist
  bubblepop settings set reduce-motion on`,
	Args: cobra.NoArgs,
	Run:  runSettingsShow,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <flag>",
	Short: "Print one accessibility setting",
	Args:  cobra.ExactArgs(1),
	Run:   runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <flag> <on|off>",
	Short: "Change one accessibility setting",
	Args:  cobra.ExactArgs(2),
	Run:   runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

func mustOpenSettings() *settings.Manager {
	m, err := settings.Open(newLogger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening settings: %v\n", err)
		os.Exit(1)
	}
	return m
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func runSettingsShow(_ *cobra.Command, _ []string) {
	m := mustOpenSettings()
	for _, flag := range settings.Flags() {
		v, err := m.Get(flag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("  %-16s  %s\n", flag, onOff(v))
	}
}

func runSettingsGet(_ *cobra.Command, args []string) {
	m := mustOpenSettings()
	v, err := m.Get(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(onOff(v))
}

func runSettingsSet(_ *cobra.Command, args []string) {
	v, err := settings.ParseBool(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	m := mustOpenSettings()
	if err := m.Set(args[0], v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := m.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving settings: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s = %s\n", args[0], onOff(v))
}
