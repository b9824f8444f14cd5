package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ethanKlein/trippy-sequencer/internal/audio"
	"github.com/ethanKlein/trippy-sequencer/internal/engine"
	"github.com/ethanKlein/trippy-sequencer/internal/midiecho"
	"github.com/ethanKlein/trippy-sequencer/internal/tui"
	"github.com/ethanKlein/trippy-sequencer/internal/viz"
)

var (
	sampleDir string
	tempo     int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the step sequencer",
	Long: `Start the step sequencer with an interactive TUI interface.

Without --samples the built-in kit is synthesized at startup. With
--samples DIR, up to ten .wav files are decoded into the sample slots
(six pattern rows, then four arcade pads) in filename order; slots stay
silent until their file finishes decoding.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVarP(&sampleDir, "samples", "s", "", "Directory of .wav files to load into the slots")
	playCmd.Flags().IntVarP(&tempo, "tempo", "t", 120, "Initial tempo in BPM (60-200)")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	if tempo < 60 || tempo > 200 {
		return fmt.Errorf("tempo %d out of range (60-200)", tempo)
	}

	bank := audio.NewBank()
	if sampleDir != "" {
		if err := audio.LoadWAVDir(bank, sampleDir); err != nil {
			return err
		}
	} else {
		audio.LoadDefaultKit(bank)
	}

	// No audio device means nothing to sequence; fail loudly instead
	// of starting a silent UI.
	device, err := audio.NewDevice(bank)
	if err != nil {
		return err
	}
	defer device.Close()

	echo := midiecho.New()
	defer echo.Close()

	eng := engine.New(device, echo)
	eng.SetTempo(tempo)

	mapper := viz.NewMapper(device.Analyser(), time.Now().UnixNano())

	p := tea.NewProgram(tui.New(eng, mapper, echo, bank), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
