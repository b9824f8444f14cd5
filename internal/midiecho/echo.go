// Package midiecho mirrors triggers to an external MIDI output, so
// the sequencer can drive hardware alongside its own audio. It is an
// optional sink: with no port connected every call is a no-op.
package midiecho

import (
	"fmt"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/ethanKlein/trippy-sequencer/internal/engine"
)

// drumChannel is MIDI channel 10, the GM percussion channel.
const drumChannel = 9

// slotNotes maps bank slots to GM-ish drum notes: the six rows first,
// then the four arcade slots.
var slotNotes = [engine.NumSlots]uint8{
	36, // kick
	38, // snare
	42, // closed hat
	46, // open hat
	39, // clap
	45, // tom
	48, 50, 51, 53, // arcade one-shots
}

// Echo holds the currently connected output port, if any.
type Echo struct {
	mu    sync.Mutex
	outs  []drivers.Out
	names []string
	port  drivers.Out
	send  func(midi.Message) error
}

func New() *Echo {
	e := &Echo{}
	e.Refresh()
	return e
}

// Refresh rescans the available output ports. If the connected port
// disappeared, it is dropped.
func (e *Echo) Refresh() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.outs = nil
	e.names = nil
	for _, out := range midi.GetOutPorts() {
		e.outs = append(e.outs, out)
		e.names = append(e.names, out.String())
	}

	if e.port != nil {
		found := false
		for _, out := range e.outs {
			if out.String() == e.port.String() {
				found = true
				break
			}
		}
		if !found {
			e.disconnectLocked()
		}
	}
}

// Names lists the available output port names, in scan order.
func (e *Echo) Names() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.names...)
}

// Connect opens the port at the given index from the last Refresh.
func (e *Echo) Connect(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.outs) {
		return fmt.Errorf("invalid port index %d", index)
	}
	e.disconnectLocked()

	out := e.outs[index]
	send, err := midi.SendTo(out)
	if err != nil {
		return fmt.Errorf("failed to open port %s: %w", out.String(), err)
	}
	e.port = out
	e.send = send
	return nil
}

// Connected returns the connected port's name, or "" if none.
func (e *Echo) Connected() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.port == nil {
		return ""
	}
	return e.port.String()
}

// Disconnect sends all-notes-off and closes the port.
func (e *Echo) Disconnect() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.disconnectLocked()
}

func (e *Echo) disconnectLocked() {
	if e.port == nil {
		return
	}
	if e.send != nil {
		_ = e.send(midi.ControlChange(drumChannel, 123, 0))
	}
	_ = e.port.Close()
	e.port = nil
	e.send = nil
}

// Trigger implements engine.Sink: one NoteOn/NoteOff pair per trigger,
// transposed by the current pitch offset. Drum modules gate on the
// NoteOn, so the immediate off is harmless.
func (e *Echo) Trigger(slot int, p engine.Params) {
	e.mu.Lock()
	send := e.send
	e.mu.Unlock()
	if send == nil || slot < 0 || slot >= engine.NumSlots {
		return
	}

	note := int(slotNotes[slot]) + p.PitchSemitones
	if note < 0 || note > 127 {
		return
	}
	_ = send(midi.NoteOn(drumChannel, uint8(note), 100))
	_ = send(midi.NoteOff(drumChannel, uint8(note)))
}

// AllNotesOff silences anything still gated on the connected port.
func (e *Echo) AllNotesOff() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.send != nil {
		_ = e.send(midi.ControlChange(drumChannel, 123, 0))
	}
}

// Close disconnects the port.
func (e *Echo) Close() {
	e.Disconnect()
}
