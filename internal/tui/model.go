// Package tui is the terminal front end: grid editing, transport and
// parameter keys, the arcade pads, and the reactive shape visualizer.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/ethanKlein/trippy-sequencer/internal/audio"
	"github.com/ethanKlein/trippy-sequencer/internal/engine"
	"github.com/ethanKlein/trippy-sequencer/internal/midiecho"
	"github.com/ethanKlein/trippy-sequencer/internal/viz"
)

const (
	framesPerSecond = 60

	minTempo       = 60
	maxTempo       = 200
	tempoStep      = 5
	distortionMax  = 100
	distortionStep = 5
	pitchMin       = -12
	pitchMax       = 12
)

// frameMsg drives the visualization frame stream. It runs at the
// display rate, independent of the engine's tempo clock; the two are
// deliberately unsynchronized.
type frameMsg time.Time

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#B300FF")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#B300FF")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

var rowNames = [engine.NumRows]string{"Kick", "Snare", "ClHat", "OpHat", "Clap", "Tom"}

type shapeSpring struct {
	pos float64
	vel float64
}

// Model is the bubbletea state for the sequencer screen.
type Model struct {
	eng    *engine.Engine
	mapper *viz.Mapper
	echo   *midiecho.Echo
	bank   *audio.Bank

	cursorX int
	cursorY int
	message string
	width   int
	height  int

	// MIDI port selection overlay
	selectingPort bool
	portCursor    int
	portNames     []string

	// Scale smoothing for the visualizer bars
	spring  harmonica.Spring
	springs [viz.NumShapes]shapeSpring
}

// New assembles the sequencer screen around an already-initialized
// engine stack.
func New(eng *engine.Engine, mapper *viz.Mapper, echo *midiecho.Echo, bank *audio.Bank) *Model {
	m := &Model{
		eng:    eng,
		mapper: mapper,
		echo:   echo,
		bank:   bank,
		spring: harmonica.NewSpring(harmonica.FPS(framesPerSecond), 6.0, 0.5),
	}
	for i, s := range mapper.Shapes() {
		m.springs[i].pos = s.Scale
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	return frameTick()
}

func frameTick() tea.Cmd {
	return tea.Tick(time.Second/framesPerSecond, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case frameMsg:
		m.mapper.Frame()
		for i, s := range m.mapper.Shapes() {
			m.springs[i].pos, m.springs[i].vel = m.spring.Update(
				m.springs[i].pos, m.springs[i].vel, s.Scale)
		}
		return m, frameTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.selectingPort {
		return m.handlePortKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.eng.Stop()
		m.echo.Close()
		return m, tea.Quit

	case "left", "h":
		if m.cursorX > 0 {
			m.cursorX--
		}
	case "right", "l":
		if m.cursorX < engine.NumSteps-1 {
			m.cursorX++
		}
	case "up", "k":
		if m.cursorY > 0 {
			m.cursorY--
		}
	case "down", "j":
		if m.cursorY < engine.NumRows-1 {
			m.cursorY++
		}

	case " ":
		m.eng.ToggleCell(m.cursorY, m.cursorX)

	case "p":
		if m.eng.Playing() {
			m.eng.Stop()
			m.echo.AllNotesOff()
		} else {
			m.eng.Start()
		}

	case "c":
		m.eng.ClearRow(m.cursorY)

	case "+", "=":
		// The engine does not clamp; the UI owns the 60-200 bound.
		if bpm := m.eng.Params().TempoBPM + tempoStep; bpm <= maxTempo {
			m.eng.SetTempo(bpm)
		}
	case "-", "_":
		if bpm := m.eng.Params().TempoBPM - tempoStep; bpm >= minTempo {
			m.eng.SetTempo(bpm)
		}

	case "f":
		if d := m.eng.Params().DistortionAmount + distortionStep; d <= distortionMax {
			m.eng.SetDistortion(d)
		}
	case "d":
		if d := m.eng.Params().DistortionAmount - distortionStep; d >= 0 {
			m.eng.SetDistortion(d)
		}

	case "s":
		if p := m.eng.Params().PitchSemitones + 1; p <= pitchMax {
			m.eng.SetPitch(p)
		}
	case "a":
		if p := m.eng.Params().PitchSemitones - 1; p >= pitchMin {
			m.eng.SetPitch(p)
		}

	case "1", "2", "3", "4":
		button := int(msg.String()[0] - '1')
		m.eng.TriggerSlot(engine.ArcadeSlot(button))

	case "5", "6", "7", "8", "9":
		m.mapper.Hit(int(msg.String()[0] - '5'))

	case "o":
		m.echo.Refresh()
		m.portNames = m.echo.Names()
		m.portCursor = 0
		m.selectingPort = true
		if len(m.portNames) == 0 {
			m.message = "No MIDI outputs found. Press 'r' to refresh."
		} else {
			m.message = fmt.Sprintf("Found %d MIDI output(s)", len(m.portNames))
		}
	}

	return m, nil
}

func (m *Model) handlePortKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.portCursor > 0 {
			m.portCursor--
		}
	case "down", "j":
		if m.portCursor < len(m.portNames)-1 {
			m.portCursor++
		}
	case "enter":
		if m.portCursor >= 0 && m.portCursor < len(m.portNames) {
			if err := m.echo.Connect(m.portCursor); err != nil {
				m.message = fmt.Sprintf("Error: %v", err)
			} else {
				m.message = fmt.Sprintf("Connected to: %s", m.portNames[m.portCursor])
			}
		}
		m.selectingPort = false
	case "x":
		m.echo.Disconnect()
		m.message = "MIDI output disconnected"
		m.selectingPort = false
	case "r":
		m.echo.Refresh()
		m.portNames = m.echo.Names()
		m.message = fmt.Sprintf("Found %d MIDI output(s)", len(m.portNames))
	case "escape", "q", "o":
		m.selectingPort = false
	case "ctrl+c":
		m.eng.Stop()
		m.echo.Close()
		return m, tea.Quit
	}
	return m, nil
}
