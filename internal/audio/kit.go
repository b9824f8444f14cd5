package audio

import (
	"math"
	"math/rand"

	"github.com/ethanKlein/trippy-sequencer/internal/engine"
)

// The built-in kit: synthesized drum voices so the sequencer makes
// sound without any sample files. Rows get the classic six, arcade
// slots get four one-shot stabs.
//
// Noise voices use a fixed seed so the kit sounds the same on every
// run.

// LoadDefaultKit fills every bank slot with a synthesized voice.
func LoadDefaultKit(b *Bank) {
	rng := rand.New(rand.NewSource(909))

	b.SetSlot(0, &Buffer{Data: synthKick()})
	b.SetSlot(1, &Buffer{Data: synthSnare(rng)})
	b.SetSlot(2, &Buffer{Data: synthHat(rng, 0.05)})
	b.SetSlot(3, &Buffer{Data: synthHat(rng, 0.3)})
	b.SetSlot(4, &Buffer{Data: synthClap(rng)})
	b.SetSlot(5, &Buffer{Data: synthTom()})

	b.SetSlot(engine.ArcadeSlot(0), &Buffer{Data: synthZap()})
	b.SetSlot(engine.ArcadeSlot(1), &Buffer{Data: synthStab()})
	b.SetSlot(engine.ArcadeSlot(2), &Buffer{Data: synthCowbell()})
	b.SetSlot(engine.ArcadeSlot(3), &Buffer{Data: synthLaser()})
}

func frames(seconds float64) int {
	return int(seconds * SampleRate)
}

// synthKick sweeps a sine from 120Hz down to 40Hz under an exponential
// decay.
func synthKick() []float64 {
	n := frames(0.35)
	out := make([]float64, n)
	phase := 0.0
	for i := range out {
		t := float64(i) / float64(n)
		freq := 120 - 80*t
		phase += freq / SampleRate
		out[i] = math.Sin(2*math.Pi*phase) * math.Exp(-6*t)
	}
	return out
}

// synthSnare mixes a 180Hz tone with decaying noise.
func synthSnare(rng *rand.Rand) []float64 {
	n := frames(0.25)
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / float64(n)
		tone := math.Sin(2*math.Pi*180*float64(i)/SampleRate) * 0.4
		noise := (rng.Float64()*2 - 1) * 0.6
		out[i] = (tone + noise) * math.Exp(-8*t)
	}
	return out
}

// synthHat is first-differenced noise (a crude high-pass) with a
// short or long decay for closed/open variants.
func synthHat(rng *rand.Rand, length float64) []float64 {
	n := frames(length)
	out := make([]float64, n)
	prev := 0.0
	for i := range out {
		t := float64(i) / float64(n)
		white := rng.Float64()*2 - 1
		out[i] = (white - prev) * 0.5 * math.Exp(-5*t)
		prev = white
	}
	return out
}

// synthClap is three noise bursts a few milliseconds apart.
func synthClap(rng *rand.Rand) []float64 {
	n := frames(0.3)
	out := make([]float64, n)
	burstGap := frames(0.012)
	for burst := 0; burst < 3; burst++ {
		start := burst * burstGap
		for i := start; i < n; i++ {
			t := float64(i-start) / float64(n)
			out[i] += (rng.Float64()*2 - 1) * 0.4 * math.Exp(-12*t)
		}
	}
	return out
}

func synthTom() []float64 {
	n := frames(0.3)
	out := make([]float64, n)
	phase := 0.0
	for i := range out {
		t := float64(i) / float64(n)
		freq := 160 - 60*t
		phase += freq / SampleRate
		out[i] = math.Sin(2*math.Pi*phase) * math.Exp(-5*t)
	}
	return out
}

// synthZap sweeps downward fast, arcade style.
func synthZap() []float64 {
	n := frames(0.2)
	out := make([]float64, n)
	phase := 0.0
	for i := range out {
		t := float64(i) / float64(n)
		freq := 900 * math.Exp(-4*t)
		phase += freq / SampleRate
		out[i] = math.Sin(2*math.Pi*phase) * math.Exp(-4*t)
	}
	return out
}

// synthStab is a detuned two-oscillator chord hit.
func synthStab() []float64 {
	n := frames(0.25)
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / float64(n)
		a := math.Sin(2 * math.Pi * 220 * float64(i) / SampleRate)
		b := math.Sin(2 * math.Pi * 277.18 * float64(i) / SampleRate)
		out[i] = (a + b) * 0.4 * math.Exp(-6*t)
	}
	return out
}

// synthCowbell is the 808 trick: two square-ish tones at 540 and 800Hz.
func synthCowbell() []float64 {
	n := frames(0.2)
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / float64(n)
		a := square(540 * float64(i) / SampleRate)
		b := square(800 * float64(i) / SampleRate)
		out[i] = (a + b) * 0.25 * math.Exp(-9*t)
	}
	return out
}

func synthLaser() []float64 {
	n := frames(0.3)
	out := make([]float64, n)
	phase := 0.0
	for i := range out {
		t := float64(i) / float64(n)
		freq := 1400 - 1200*t
		phase += freq / SampleRate
		out[i] = math.Sin(2*math.Pi*phase) * math.Exp(-3*t) * 0.8
	}
	return out
}

func square(phase float64) float64 {
	if phase-math.Floor(phase) < 0.5 {
		return 0.8
	}
	return -0.8
}
