package audio

import (
	"math"
	"testing"
)

func TestPlaybackRate(t *testing.T) {
	tests := []struct {
		semitones int
		want      float64
	}{
		{0, 1.0},
		{12, 2.0},
		{-12, 0.5},
		{7, math.Pow(2, 7.0/12)},
		{-5, math.Pow(2, -5.0/12)},
	}

	for _, tt := range tests {
		if got := PlaybackRate(tt.semitones); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("PlaybackRate(%d) = %v, want %v", tt.semitones, got, tt.want)
		}
	}
}

func TestChainConsumesSourceAtRate(t *testing.T) {
	buf := &Buffer{Data: make([]float64, 100)}

	// At +12 semitones the source advances twice per output sample, so
	// the chain finishes in roughly half the source length.
	c := BuildChain(buf, 12, 0)
	n := 0
	for !c.done && n < 1000 {
		c.next()
		n++
	}
	if n < 45 || n > 55 {
		t.Errorf("chain at 2x rate rendered %d samples for a 100-sample source", n)
	}

	c = BuildChain(buf, 0, 0)
	n = 0
	for !c.done && n < 1000 {
		c.next()
		n++
	}
	if n < 95 || n > 105 {
		t.Errorf("chain at 1x rate rendered %d samples for a 100-sample source", n)
	}
}

func TestChainShapesThroughCurve(t *testing.T) {
	// A constant full-scale source must come out as the curve's last
	// entry, whatever the amount.
	data := make([]float64, 64)
	for i := range data {
		data[i] = 1.0
	}
	c := BuildChain(&Buffer{Data: data}, 0, 40)
	curve := DistortionCurve(40)

	got := c.next()
	want := curve[len(curve)-1]
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("shaped full-scale sample = %v, want curve end %v", got, want)
	}
}

func TestChainSilentSourceStaysNearSilent(t *testing.T) {
	// Zero input lands between the two table entries bracketing x=0,
	// both a hair from zero, so the output is quantization-level quiet.
	c := BuildChain(&Buffer{Data: make([]float64, 64)}, 0, 75)
	for i := 0; i < 64; i++ {
		if got := c.next(); math.Abs(got) > 0.01 {
			t.Fatalf("sample %d = %v, want ~0", i, got)
		}
	}
}

func TestChainDoneStopsOutput(t *testing.T) {
	c := BuildChain(&Buffer{Data: []float64{1, 1}}, 12, 0)
	for i := 0; i < 10; i++ {
		c.next()
	}
	if !c.done {
		t.Fatal("chain never finished")
	}
	if got := c.next(); got != 0 {
		t.Errorf("finished chain emitted %v, want 0", got)
	}
}
