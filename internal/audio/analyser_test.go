package audio

import (
	"math"
	"testing"
)

func TestSnapshotLengths(t *testing.T) {
	a := NewAnalyser()
	if got := len(a.FrequencyData()); got != BinCount {
		t.Errorf("FrequencyData length = %d, want %d", got, BinCount)
	}
	if got := len(a.WaveformData()); got != BinCount {
		t.Errorf("WaveformData length = %d, want %d", got, BinCount)
	}
}

func TestSilenceSnapshots(t *testing.T) {
	a := NewAnalyser()

	for _, b := range a.FrequencyData() {
		if b != 0 {
			t.Fatalf("silent frequency bin = %d, want 0", b)
		}
	}
	for _, b := range a.WaveformData() {
		if b != 128 {
			t.Fatalf("silent waveform sample = %d, want 128", b)
		}
	}
}

func TestWaveformTracksInput(t *testing.T) {
	a := NewAnalyser()
	for i := 0; i < FFTSize; i++ {
		a.write(0.5)
	}
	for _, b := range a.WaveformData() {
		if b != 192 {
			t.Fatalf("waveform sample = %d, want 192 for 0.5 input", b)
		}
	}

	for i := 0; i < FFTSize; i++ {
		a.write(-2) // clipped to the byte floor
	}
	for _, b := range a.WaveformData() {
		if b != 0 {
			t.Fatalf("waveform sample = %d, want 0 for hard negative input", b)
		}
	}
}

func TestFrequencyPeakAtToneBin(t *testing.T) {
	a := NewAnalyser()

	// Feed a full-scale tone sitting exactly on bin 8 of the 128-point
	// transform at the device rate.
	bin := 8
	freq := float64(bin) * SampleRate / FFTSize
	for i := 0; i < FFTSize; i++ {
		a.write(math.Sin(2 * math.Pi * freq * float64(i) / SampleRate))
	}

	data := a.FrequencyData()
	peak := 0
	for i, v := range data {
		if v > data[peak] {
			peak = i
		}
	}
	if peak != bin {
		t.Errorf("peak at bin %d, want %d", peak, bin)
	}
	if data[bin] == 0 {
		t.Error("tone bin magnitude is zero")
	}
}

func TestSnapshotsAreFreshCopies(t *testing.T) {
	a := NewAnalyser()
	first := a.WaveformData()
	first[0] = 7 // mutating a snapshot must not leak into the next one

	for i := 0; i < FFTSize; i++ {
		a.write(0)
	}
	second := a.WaveformData()
	if second[0] != 128 {
		t.Errorf("second snapshot sample = %d, want 128", second[0])
	}
}
