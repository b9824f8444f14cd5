// Package engine owns the sequencer state: the pattern grid, the
// globally current playback parameters, and the step clock. Triggers
// are fanned out to registered sinks (the audio device, optionally a
// MIDI echo); the engine itself never touches the audio hardware.
package engine

import "sync"

const (
	NumRows   = 6  // pattern rows, one sample slot each
	NumSteps  = 16 // sixteenth notes in one bar
	NumArcade = 4  // one-shot slots bound to keys 1-4
)

// NumSlots is the total sample slot count: rows first, then arcade.
const NumSlots = NumRows + NumArcade

// ArcadeSlot maps an arcade button index (0..3) to its bank slot.
func ArcadeSlot(button int) int {
	return NumRows + button
}

// Params are the globally current playback parameters. They are read
// at trigger time, never snapshotted per note: changing a knob mid-note
// affects only notes triggered afterwards.
//
// Ranges are enforced by the UI layer (tempo 60-200, distortion 0-100,
// pitch -12..12); the engine does not clamp.
type Params struct {
	TempoBPM         int
	DistortionAmount float64
	PitchSemitones   int
}

// DefaultParams is the state a fresh engine starts with.
var DefaultParams = Params{
	TempoBPM:         120,
	DistortionAmount: 20,
	PitchSemitones:   0,
}

// A Sink receives trigger events. Implementations must not block: they
// are called from the clock goroutine between ticks.
type Sink interface {
	Trigger(slot int, p Params)
}

// Engine is the single owner of Pattern, Params, and scheduler state.
// All mutation goes through its methods under one mutex, so the clock
// goroutine, the UI and in-flight trigger chains never race.
type Engine struct {
	mu      sync.Mutex
	pattern [NumRows][NumSteps]bool
	params  Params
	playing bool
	step    int // -1 while stopped
	clock   Clock
	sinks   []Sink
}

// New returns a stopped engine with default parameters.
func New(sinks ...Sink) *Engine {
	return &Engine{
		params: DefaultParams,
		step:   -1,
		sinks:  sinks,
	}
}

// AddSink registers another trigger receiver.
func (e *Engine) AddSink(s Sink) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sinks = append(e.sinks, s)
}

// ToggleCell flips one pattern cell.
func (e *Engine) ToggleCell(row, step int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pattern[row][step] = !e.pattern[row][step]
}

// Cell reports whether a pattern cell is active.
func (e *Engine) Cell(row, step int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pattern[row][step]
}

// ClearRow switches every step of one row off.
func (e *Engine) ClearRow(row int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for s := 0; s < NumSteps; s++ {
		e.pattern[row][s] = false
	}
}

// Params returns the current playback parameters.
func (e *Engine) Params() Params {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.params
}

// SetTempo changes the tempo. While playing, the periodic callback is
// torn down and rescheduled at the new interval; the current step is
// kept until the next tick.
func (e *Engine) SetTempo(bpm int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.params.TempoBPM = bpm
	if e.playing {
		e.clock.Schedule(StepInterval(bpm), e.tick)
	}
}

// SetDistortion changes the distortion amount for future triggers.
func (e *Engine) SetDistortion(amount float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.params.DistortionAmount = amount
}

// SetPitch changes the pitch offset for future triggers.
func (e *Engine) SetPitch(semitones int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.params.PitchSemitones = semitones
}

// Start begins playback from the top of the bar. The first tick lands
// on step 0 one interval after Start.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.playing {
		return
	}
	e.playing = true
	e.step = -1
	e.clock.Schedule(StepInterval(e.params.TempoBPM), e.tick)
}

// Stop cancels future ticks and resets the step to the stopped
// sentinel. Chains already started keep playing to completion.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.playing {
		return
	}
	e.playing = false
	e.step = -1
	e.clock.Cancel()
}

// Playing reports whether the clock is running.
func (e *Engine) Playing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playing
}

// Step returns the current step, or -1 while stopped.
func (e *Engine) Step() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.step
}

// TriggerSlot fires one sample slot immediately with the current
// parameters. Used by the arcade keys; works whether or not the
// sequencer is playing.
func (e *Engine) TriggerSlot(slot int) {
	e.mu.Lock()
	p := e.params
	sinks := e.sinks
	e.mu.Unlock()
	for _, s := range sinks {
		s.Trigger(slot, p)
	}
}

// tick advances the step and fires every row active at it. Rows fire
// in ascending order, so a fixed grid snapshot always produces the
// same trigger sequence.
func (e *Engine) tick() {
	e.mu.Lock()
	if !e.playing {
		e.mu.Unlock()
		return
	}
	e.step = (e.step + 1) % NumSteps
	step := e.step
	p := e.params
	sinks := e.sinks
	var fired []int
	for r := 0; r < NumRows; r++ {
		if e.pattern[r][step] {
			fired = append(fired, r)
		}
	}
	e.mu.Unlock()

	// Sinks run outside the engine lock; they take their own.
	for _, r := range fired {
		for _, s := range sinks {
			s.Trigger(r, p)
		}
	}
}
