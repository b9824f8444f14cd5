package audio

import "math"

// CurveLength is the number of entries in a distortion transfer table,
// one per sample of a second at the device rate.
const CurveLength = 44100

// DistortionCurve builds the waveshaper transfer table for the given
// amount (0-100). Index i maps to input amplitude x = i*2/N - 1, and
//
//	curve[i] = ((3+k) * x * 20 * (pi/180)) / (pi + k*|x|)   with k = amount*10
//
// At amount 0 this is still a fixed linear scaling of x, not an
// identity; the formula is reproduced as-is.
//
// The table is rebuilt on every trigger rather than cached per amount,
// so a knob change is always picked up by the very next note.
func DistortionCurve(amount float64) []float64 {
	k := amount * 10
	deg := math.Pi / 180
	curve := make([]float64, CurveLength)
	for i := range curve {
		x := float64(i)*2/CurveLength - 1
		curve[i] = (3 + k) * x * 20 * deg / (math.Pi + k*math.Abs(x))
	}
	return curve
}
