package audio

import (
	"math"
	"sync"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

const (
	// FFTSize is the analyser transform size; BinCount snapshots are
	// half that.
	FFTSize  = 128
	BinCount = FFTSize / 2

	// dB range mapped onto the 0-255 byte scale.
	minDecibels = -100.0
	maxDecibels = -30.0
)

// Analyser is the single shared tap downstream of every chain. The
// mixer writes the final mix into a small ring; snapshots are
// pull-based, computed fresh on each call, and nothing is buffered
// beyond the ring itself.
type Analyser struct {
	mu   sync.Mutex
	ring [FFTSize]float64
	pos  int
}

func NewAnalyser() *Analyser {
	return &Analyser{}
}

// write appends one mixed sample. Called per frame from the mixer
// goroutine.
func (a *Analyser) write(sample float64) {
	a.mu.Lock()
	a.ring[a.pos] = sample
	a.pos = (a.pos + 1) % FFTSize
	a.mu.Unlock()
}

// snapshot copies the ring in time order, oldest first.
func (a *Analyser) snapshot() []float64 {
	buf := make([]float64, FFTSize)
	a.mu.Lock()
	for i := 0; i < FFTSize; i++ {
		buf[i] = a.ring[(a.pos+i)%FFTSize]
	}
	a.mu.Unlock()
	return buf
}

// FrequencyData returns a fresh 64-byte magnitude-per-bin snapshot.
// The ring is Hann-windowed and transformed; bin magnitudes are mapped
// from the [-100,-30] dB range onto 0..255.
func (a *Analyser) FrequencyData() []byte {
	buf := a.snapshot()
	window.Apply(buf, window.Hann)
	spectrum := fft.FFTReal(buf)

	out := make([]byte, BinCount)
	for i := 0; i < BinCount; i++ {
		mag := cmplxAbs(spectrum[i]) * 2 / FFTSize
		db := 20 * math.Log10(mag)
		v := (db - minDecibels) / (maxDecibels - minDecibels) * 255
		out[i] = clampByte(v)
	}
	return out
}

// WaveformData returns a fresh 64-byte time-domain snapshot of the
// most recent samples, centered on 128 (silence).
func (a *Analyser) WaveformData() []byte {
	buf := a.snapshot()
	out := make([]byte, BinCount)
	tail := buf[FFTSize-BinCount:]
	for i, s := range tail {
		out[i] = clampByte(128 * (1 + s))
	}
	return out
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

func clampByte(v float64) byte {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v)
}
