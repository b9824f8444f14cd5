// Package viz maps analyser snapshots onto per-shape transform and
// color parameters. It owns no rendering; the TUI reads the shape
// states and draws them however it likes.
package viz

import (
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// NumShapes is how many visual elements the mapper drives.
const NumShapes = 5

// Kind identifies one of the five visual elements.
type Kind int

const (
	Cube Kind = iota
	Sphere
	Torus
	Cone
	Icosahedron
)

var kindNames = [NumShapes]string{"cube", "sphere", "torus", "cone", "icosahedron"}

func (k Kind) String() string {
	if k < 0 || int(k) >= NumShapes {
		return "unknown"
	}
	return kindNames[k]
}

// Params is one shape's randomized base bundle. It is regenerated
// wholesale when the shape is hit, and otherwise stays fixed across
// frames.
type Params struct {
	BaseScale      float64
	ScaleAmplitude float64
	RotXIncrement  float64
	RotYIncrement  float64
	Radius         float64
	Hue            float64
	HueFromSignal  bool
}

// Shape is the live state of one visual element: its current bundle
// plus the frame-to-frame transform the mapper updates.
type Shape struct {
	Kind      Kind
	Params    Params
	Scale     float64
	RotationX float64
	RotationY float64
	Level     float64 // last statistic, normalized 0..1
	Color     colorful.Color
}

// Analyser is the feed the mapper polls once per frame.
type Analyser interface {
	FrequencyData() []byte
	WaveformData() []byte
}

// neonHues is the palette shapes draw from when hit, in degrees.
// Each pick gets a small random jitter so repeated hits rarely land
// on the same color.
var neonHues = []float64{320, 275, 195, 130, 55}

const hueJitter = 14.0

// Mapper owns the five shapes and a seeded source of randomness, so a
// fixed seed reproduces the same bundles in tests.
type Mapper struct {
	analyser Analyser
	rng      *rand.Rand
	shapes   [NumShapes]*Shape
}

// NewMapper builds the five shapes with randomized initial bundles.
// A nil analyser is allowed: per-frame updates are no-ops until one
// is attached, leaving the shapes static.
func NewMapper(analyser Analyser, seed int64) *Mapper {
	m := &Mapper{
		analyser: analyser,
		rng:      rand.New(rand.NewSource(seed)),
	}
	for i := range m.shapes {
		m.shapes[i] = &Shape{Kind: Kind(i)}
		m.regenerate(m.shapes[i])
	}
	return m
}

// SetAnalyser attaches the feed once the audio subsystem is up.
func (m *Mapper) SetAnalyser(a Analyser) {
	m.analyser = a
}

// Shapes exposes the live shape states for rendering.
func (m *Mapper) Shapes() [NumShapes]*Shape {
	return m.shapes
}

// Hit regenerates one shape's whole parameter bundle. The other
// shapes are untouched.
func (m *Mapper) Hit(i int) {
	if i < 0 || i >= NumShapes {
		return
	}
	m.regenerate(m.shapes[i])
}

func (m *Mapper) regenerate(s *Shape) {
	hue := neonHues[m.rng.Intn(len(neonHues))] + (m.rng.Float64()*2-1)*hueJitter
	if hue < 0 {
		hue += 360
	}
	s.Params = Params{
		BaseScale:      0.7 + m.rng.Float64()*0.8,
		ScaleAmplitude: 0.5 + m.rng.Float64()*1.5,
		RotXIncrement:  (m.rng.Float64()*2 - 1) * 0.06,
		RotYIncrement:  (m.rng.Float64()*2 - 1) * 0.06,
		Radius:         0.5 + m.rng.Float64()*1.2,
		Hue:            hue,
		HueFromSignal:  s.Kind == Torus || s.Kind == Icosahedron,
	}
	s.Scale = s.Params.BaseScale
	s.Color = colorful.Hsv(s.Params.Hue, 1, 1)
}

// Frame advances every shape one visualization frame: pull a snapshot,
// reduce it to the shape's statistic, and update scale, rotation and
// color. With no analyser attached this is a no-op.
func (m *Mapper) Frame() {
	if m.analyser == nil {
		return
	}
	freq := m.analyser.FrequencyData()
	wave := m.analyser.WaveformData()

	for _, s := range m.shapes {
		stat := statistic(s.Kind, freq, wave)
		level := float64(stat) / 255

		s.Level = level
		s.Scale = s.Params.BaseScale + level*s.Params.ScaleAmplitude
		s.RotationX += s.Params.RotXIncrement
		s.RotationY += s.Params.RotYIncrement

		if s.Params.HueFromSignal {
			s.Color = colorful.Hsv(360*level, 1, 1)
		} else {
			s.Color = colorful.Hsv(s.Params.Hue, 1, 0.6+0.4*level)
		}
	}
}

// statistic reduces a snapshot to one scalar per shape kind: mean,
// max or min across bins, frequency- or time-domain.
func statistic(k Kind, freq, wave []byte) byte {
	switch k {
	case Cube:
		return meanBytes(freq)
	case Sphere:
		return maxBytes(freq)
	case Torus:
		return minBytes(freq)
	case Cone:
		return meanDeviation(wave)
	case Icosahedron:
		return maxDeviation(wave)
	default:
		return 0
	}
}

func meanBytes(data []byte) byte {
	if len(data) == 0 {
		return 0
	}
	var sum int
	for _, v := range data {
		sum += int(v)
	}
	return byte(sum / len(data))
}

func maxBytes(data []byte) byte {
	var max byte
	for _, v := range data {
		if v > max {
			max = v
		}
	}
	return max
}

func minBytes(data []byte) byte {
	if len(data) == 0 {
		return 0
	}
	min := data[0]
	for _, v := range data[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// deviation folds a time-domain byte around the 128 silence line.
func deviation(v byte) byte {
	d := int(v) - 128
	if d < 0 {
		d = -d
	}
	d *= 2
	if d > 255 {
		d = 255
	}
	return byte(d)
}

func meanDeviation(wave []byte) byte {
	if len(wave) == 0 {
		return 0
	}
	var sum int
	for _, v := range wave {
		sum += int(deviation(v))
	}
	return byte(sum / len(wave))
}

func maxDeviation(wave []byte) byte {
	var max byte
	for _, v := range wave {
		if d := deviation(v); d > max {
			max = d
		}
	}
	return max
}
