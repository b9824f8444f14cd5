// Package audio renders triggers into sound: per-trigger effects
// chains, the shared analyser tap, and the oto output device they all
// mix into.
package audio

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/ethanKlein/trippy-sequencer/internal/engine"
)

const (
	SampleRate   = 44100
	channelCount = 2 // stereo
	bitDepth     = 2 // 16-bit
)

// Device owns the output sink. Every triggered chain is appended to
// its active list; the oto player pulls mixed samples through
// mixerReader on its own goroutine. Stopping the sequencer does not
// cut chains off; they run to the end of their buffers.
type Device struct {
	mu       sync.Mutex
	otoCtx   *oto.Context
	player   *oto.Player
	bank     *Bank
	analyser *Analyser
	chains   []*Chain
	volume   float64
}

// NewDevice initializes the audio subsystem and starts the output
// stream. Failure here is fatal to startup; there is no degraded mode
// without a device.
func NewDevice(bank *Bank) (*Device, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: channelCount,
		Format:       oto.FormatSignedInt16LE,
	}

	otoCtx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audio device: %w", err)
	}
	<-readyChan

	d := &Device{
		otoCtx:   otoCtx,
		bank:     bank,
		analyser: NewAnalyser(),
		volume:   0.5,
	}

	d.player = otoCtx.NewPlayer(&mixerReader{device: d})
	d.player.Play()

	return d, nil
}

// Analyser returns the shared analysis tap.
func (d *Device) Analyser() *Analyser {
	return d.analyser
}

// Trigger implements engine.Sink: build a fresh chain for the slot's
// buffer and hand it to the mixer. An empty slot is a silent no-op —
// samples load asynchronously and may simply not be there yet.
func (d *Device) Trigger(slot int, p engine.Params) {
	buf := d.bank.Slot(slot)
	if buf == nil {
		return
	}
	ch := BuildChain(buf, p.PitchSemitones, p.DistortionAmount)
	d.mu.Lock()
	d.chains = append(d.chains, ch)
	d.mu.Unlock()
}

// SetVolume sets the master volume (0.0 - 1.0).
func (d *Device) SetVolume(vol float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if vol < 0 {
		vol = 0
	} else if vol > 1 {
		vol = 1
	}
	d.volume = vol
}

// Close drops all active chains.
//
// As of oto v3.4, player.Close() is deprecated and no longer needed;
// the player is cleaned up when garbage collected.
func (d *Device) Close() error {
	d.mu.Lock()
	d.chains = nil
	d.mu.Unlock()
	return nil
}

// mixerReader implements io.Reader for continuous audio generation,
// summing every active chain and feeding the analyser tap.
type mixerReader struct {
	device *Device
}

func (r *mixerReader) Read(buf []byte) (int, error) {
	d := r.device
	d.mu.Lock()
	defer d.mu.Unlock()

	// Drop chains that finished during the previous block.
	live := d.chains[:0]
	for _, c := range d.chains {
		if !c.done {
			live = append(live, c)
		}
	}
	d.chains = live

	numSamples := len(buf) / (channelCount * bitDepth)
	for i := 0; i < numSamples; i++ {
		var sample float64
		for _, c := range d.chains {
			sample += c.next()
		}

		d.analyser.write(sample)

		sample *= d.volume
		if sample > 1.0 {
			sample = 1.0
		} else if sample < -1.0 {
			sample = -1.0
		}

		sampleInt := int16(sample * 32767)
		idx := i * channelCount * bitDepth
		buf[idx] = byte(sampleInt)
		buf[idx+1] = byte(sampleInt >> 8)
		buf[idx+2] = byte(sampleInt)
		buf[idx+3] = byte(sampleInt >> 8)
	}

	return len(buf), nil
}
