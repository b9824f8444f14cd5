package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ethanKlein/trippy-sequencer/internal/midiecho"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List available MIDI output ports",
	Long:  `List the MIDI output ports triggers can be echoed to from the sequencer.`,
	Run:   runDevices,
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}

func runDevices(cmd *cobra.Command, args []string) {
	names := midiecho.New().Names()
	if len(names) == 0 {
		fmt.Println("No MIDI output ports found.")
		return
	}
	for i, name := range names {
		fmt.Printf("%2d: %s\n", i, name)
	}
}
