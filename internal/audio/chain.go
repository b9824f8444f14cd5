package audio

import "math"

// oversample is the waveshaper oversampling factor: each output sample
// shapes four sub-positions of the source and averages them, which
// tames the aliasing the nonlinearity would otherwise fold back.
const oversample = 4

// A Chain is one single-use trigger path: buffer source, waveshaper,
// then the shared analyser tap and mixer. Each trigger gets its own
// chain; the mixer drops it once the source is exhausted. There is no
// pooling and no reuse.
type Chain struct {
	src   []float64
	pos   float64
	rate  float64
	curve []float64
	done  bool
}

// BuildChain assembles a fresh chain for one trigger. The pitch offset
// becomes a playback-rate multiplier of 2^(semitones/12); the
// distortion amount becomes a freshly generated transfer table.
func BuildChain(buf *Buffer, pitchSemitones int, distortionAmount float64) *Chain {
	return &Chain{
		src:   buf.Data,
		rate:  PlaybackRate(pitchSemitones),
		curve: DistortionCurve(distortionAmount),
	}
}

// PlaybackRate converts a semitone offset to an equal-tempered rate
// multiplier: 0 -> 1.0, +12 -> 2.0, -12 -> 0.5.
func PlaybackRate(semitones int) float64 {
	return math.Pow(2, float64(semitones)/12)
}

// next renders one output sample and advances the source position.
func (c *Chain) next() float64 {
	if c.done {
		return 0
	}
	var sum float64
	for k := 0; k < oversample; k++ {
		sub := c.pos + c.rate*float64(k)/oversample
		sum += c.shape(c.sample(sub))
	}
	c.pos += c.rate
	if c.pos >= float64(len(c.src)-1) {
		c.done = true
	}
	return sum / oversample
}

// sample reads the source at a fractional position with linear
// interpolation.
func (c *Chain) sample(pos float64) float64 {
	if pos < 0 {
		return 0
	}
	i := int(pos)
	if i >= len(c.src)-1 {
		if i == len(c.src)-1 {
			return c.src[i]
		}
		return 0
	}
	frac := pos - float64(i)
	return c.src[i]*(1-frac) + c.src[i+1]*frac
}

// shape passes one sample through the transfer table, interpolating
// between adjacent entries.
func (c *Chain) shape(x float64) float64 {
	if x < -1 {
		x = -1
	} else if x > 1 {
		x = 1
	}
	f := (x + 1) / 2 * float64(len(c.curve)-1)
	i := int(f)
	if i >= len(c.curve)-1 {
		return c.curve[len(c.curve)-1]
	}
	frac := f - float64(i)
	return c.curve[i]*(1-frac) + c.curve[i+1]*frac
}
