package audio

import (
	"testing"

	"github.com/ethanKlein/trippy-sequencer/internal/engine"
)

// newTestDevice builds a Device without opening the audio hardware;
// the mixer and trigger paths never touch the oto context.
func newTestDevice(bank *Bank) *Device {
	return &Device{
		bank:     bank,
		analyser: NewAnalyser(),
		volume:   0.5,
	}
}

func TestTriggerEmptySlotIsNoOp(t *testing.T) {
	d := newTestDevice(NewBank())

	d.Trigger(0, engine.DefaultParams)
	d.Trigger(engine.ArcadeSlot(1), engine.DefaultParams)
	d.Trigger(-3, engine.DefaultParams)

	if len(d.chains) != 0 {
		t.Errorf("empty-slot triggers created %d chains, want 0", len(d.chains))
	}
}

func TestTriggerLoadedSlotAddsChain(t *testing.T) {
	bank := NewBank()
	bank.SetSlot(0, &Buffer{Data: make([]float64, 256)})
	d := newTestDevice(bank)

	d.Trigger(0, engine.DefaultParams)
	d.Trigger(0, engine.DefaultParams) // concurrent triggers get their own chains

	if len(d.chains) != 2 {
		t.Fatalf("two triggers created %d chains, want 2", len(d.chains))
	}
	if d.chains[0] == d.chains[1] {
		t.Error("triggers shared a chain; each must be independent")
	}
}

func TestMixerDropsFinishedChains(t *testing.T) {
	bank := NewBank()
	bank.SetSlot(0, &Buffer{Data: make([]float64, 8)})
	d := newTestDevice(bank)
	d.Trigger(0, engine.DefaultParams)

	r := &mixerReader{device: d}
	buf := make([]byte, 1024) // 256 stereo frames, far past the source

	n, err := r.Read(buf)
	if err != nil || n != len(buf) {
		t.Fatalf("Read = (%d, %v), want (%d, nil)", n, err, len(buf))
	}

	// The chain finished inside the block; the next block drops it.
	if _, err := r.Read(buf); err != nil {
		t.Fatalf("second Read: %v", err)
	}
	if len(d.chains) != 0 {
		t.Errorf("finished chain still active after a full block, want 0")
	}
}

func TestMixerFeedsAnalyser(t *testing.T) {
	bank := NewBank()
	data := make([]float64, 512)
	for i := range data {
		data[i] = 0.8
	}
	bank.SetSlot(0, &Buffer{Data: data})
	d := newTestDevice(bank)
	d.Trigger(0, engine.Params{TempoBPM: 120, DistortionAmount: 60})

	r := &mixerReader{device: d}
	if _, err := r.Read(make([]byte, 512)); err != nil {
		t.Fatalf("Read: %v", err)
	}

	flat := true
	for _, b := range d.analyser.WaveformData() {
		if b != 128 {
			flat = false
			break
		}
	}
	if flat {
		t.Error("analyser saw nothing while a chain was playing")
	}
}
