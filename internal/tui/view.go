package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ethanKlein/trippy-sequencer/internal/engine"
)

func (m *Model) View() string {
	if m.selectingPort {
		return m.viewPortSelection()
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("TRIPPY SEQUENCER") + "\n\n")

	p := m.eng.Params()
	b.WriteString(fmt.Sprintf("BPM: %d   Distortion: %.0f   Pitch: %+d st", p.TempoBPM, p.DistortionAmount, p.PitchSemitones))
	if name := m.echo.Connected(); name != "" {
		b.WriteString(fmt.Sprintf("   MIDI: %s", name))
	}
	b.WriteString(fmt.Sprintf("   Samples: %d/%d\n\n", m.bank.Loaded(), engine.NumSlots))

	b.WriteString(renderClockBar(m.eng.Playing(), m.eng.Step()) + "\n\n")
	b.WriteString(m.renderGrid())
	b.WriteString("\n" + m.renderVisualizer())

	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(errorStyle.Render(m.message) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("↑↓←→/hjkl: move • space: toggle • p: play/stop • c: clear row • 1-4: arcade pads"))
	b.WriteString("\n" + helpStyle.Render("+/-: tempo • d/f: distortion • a/s: pitch • 5-9: hit shape • o: MIDI out • q: quit"))

	return b.String()
}

func (m *Model) renderGrid() string {
	var b strings.Builder

	// Header row; 3 chars per step to match the cells below.
	b.WriteString("Row    ")
	hexDigits := "0123456789ABCDEF"
	for i := 0; i < engine.NumSteps; i++ {
		b.WriteString(fmt.Sprintf(" %c ", hexDigits[i]))
	}
	b.WriteString("\n")

	playing := m.eng.Playing()
	current := m.eng.Step()

	for row := 0; row < engine.NumRows; row++ {
		label := fmt.Sprintf("%-7s", rowNames[row])
		if row == m.cursorY {
			b.WriteString(selectedStyle.Render(label))
		} else {
			b.WriteString(labelStyle.Render(label))
		}

		for step := 0; step < engine.NumSteps; step++ {
			var cell string
			if m.eng.Cell(row, step) {
				cell = " ● "
			} else {
				cell = " · "
			}

			cellStyle := lipgloss.NewStyle().Width(3)
			if row == m.cursorY && step == m.cursorX {
				cellStyle = cellStyle.Background(lipgloss.Color("#B300FF"))
			}
			if playing && step == current {
				cellStyle = cellStyle.Foreground(lipgloss.Color("#00FF00")).Bold(true)
			}
			if m.eng.Cell(row, step) {
				cellStyle = cellStyle.Foreground(lipgloss.Color("#FFD700"))
			} else {
				cellStyle = cellStyle.Foreground(lipgloss.Color("#666666"))
			}

			b.WriteString(cellStyle.Render(cell))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// renderClockBar paints the sixteen steps as a cyan-to-magenta sweep
// with the playhead marked.
func renderClockBar(isPlaying bool, currentStep int) string {
	colors := []string{
		"#00FFFF", "#00E5FF", "#00CCFF", "#00B2FF",
		"#0099FF", "#0080FF", "#0066FF", "#1A4DFF",
		"#3333FF", "#4D1AFF", "#6600FF", "#8000FF",
		"#9900FF", "#B300FF", "#CC00FF", "#FF00FF",
	}

	bar := strings.Builder{}
	bar.WriteString("Clock  ")

	for i := 0; i < engine.NumSteps; i++ {
		var cell string
		var cellStyle lipgloss.Style

		if isPlaying && i == currentStep {
			cell = " ▶ "
			cellStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color(colors[i])).
				Bold(true)
		} else if isPlaying && i < currentStep {
			cell = " █ "
			cellStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(colors[i]))
		} else {
			cell = " · "
			cellStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#444444"))
		}

		bar.WriteString(cellStyle.Render(cell))
	}

	status := " Stopped"
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	if isPlaying {
		status = " Playing"
		statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	}
	bar.WriteString(statusStyle.Render(status))

	return bar.String()
}

// spinnerGlyphs approximate rotation; the shape's accumulated angle
// picks a frame.
var spinnerGlyphs = []string{"◐", "◓", "◑", "◒"}

// renderVisualizer draws one line per shape: a rotation glyph and a
// bar whose length follows the spring-smoothed scale, in the shape's
// current color.
func (m *Model) renderVisualizer() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Shapes") + "\n")

	shapes := m.mapper.Shapes()
	const maxBar = 32

	for i, s := range shapes {
		glyphIdx := int(math.Mod(math.Abs(s.RotationX)*8, float64(len(spinnerGlyphs))))
		glyph := spinnerGlyphs[glyphIdx]

		// Spring position tracks BaseScale+amplitude, roughly 0..3.
		width := int(m.springs[i].pos / 3 * maxBar)
		if width < 1 {
			width = 1
		} else if width > maxBar {
			width = maxBar
		}

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color.Hex()))
		b.WriteString(fmt.Sprintf("%d %-12s %s %s\n",
			i+5,
			s.Kind.String(),
			style.Render(glyph),
			style.Render(strings.Repeat("█", width)),
		))
	}

	return b.String()
}

func (m *Model) viewPortSelection() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Select MIDI Output") + "\n\n")

	if len(m.portNames) == 0 {
		b.WriteString("No MIDI output ports found.\n\n")
		b.WriteString("Make sure your MIDI interface is connected.\n")
	} else {
		connected := m.echo.Connected()
		for i, name := range m.portNames {
			cursor := "  "
			if i == m.portCursor {
				cursor = "> "
			}

			suffix := ""
			if name == connected {
				suffix = " (connected)"
			}

			line := fmt.Sprintf("%s%s%s\n", cursor, name, suffix)
			if i == m.portCursor {
				b.WriteString(selectedStyle.Render(line))
			} else {
				b.WriteString(line)
			}
		}
	}

	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(errorStyle.Render(m.message) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("↑/k: up • ↓/j: down • enter: select • x: disconnect • r: refresh • q/esc: cancel"))

	return b.String()
}
