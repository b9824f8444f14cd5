package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "trippy-sequencer",
	Short: "A TUI step sequencer with a reactive visualizer",
	Long: `trippy-sequencer is a terminal step sequencer built with Bubbletea.

Toggle cells on a 6x16 grid and each active cell triggers a sample through
a distortion/pitch effects chain on playback, while an analyser-driven
visualizer reacts to whatever is currently sounding.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
