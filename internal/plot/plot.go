// Package plot maps sample buffers onto normalized plot coordinates.
//
// X runs from 0 towards 1 as i/N, so the last sample stops one step short
// of the right edge. Y is the sample divided by the buffer's own peak
// amplitude and scaled by Headroom, so traces stay inside [-0.8, 0.8].
package plot

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/guidoenr/sigviz/internal/signal"
)

const (
	// MinAmplitude floors the scaling factor so near-silent buffers do not blow up.
	MinAmplitude = 0.1
	// Headroom is the fraction of the half-height a full-scale sample reaches.
	Headroom = 0.8
)

// Point is a sample in normalized plot space.
type Point struct {
	X float64
	Y float64
}

// Screen maps p into a rectangle whose left edge is x0 and whose vertical
// centre line is y0; screen y grows downwards.
func (p Point) Screen(x0, y0, width, height float64) (float64, float64) {
	return x0 + p.X*width, y0 - p.Y*(height/2)
}

// Plot is a mapped buffer together with the amplitude it was scaled by.
type Plot struct {
	Points []Point
	MaxAmp float64
}

// Scale maps every sample of buf into normalized coordinates.
func Scale(buf signal.Buffer) Plot {
	return ScaleSamples(buf.Samples())
}

// ScaleSamples is Scale for a plain slice.
func ScaleSamples(samples []float64) Plot {
	maxAmp := MaxAmplitude(samples)
	n := float64(len(samples))
	points := make([]Point, len(samples))
	for i, v := range samples {
		points[i] = Point{
			X: float64(i) / n,
			Y: (v / maxAmp) * Headroom,
		}
	}
	return Plot{Points: points, MaxAmp: maxAmp}
}

// MaxAmplitude returns max(|min|, |max|, MinAmplitude).
func MaxAmplitude(samples []float64) float64 {
	if len(samples) == 0 {
		return MinAmplitude
	}
	lo := floats.Min(samples)
	hi := floats.Max(samples)
	return math.Max(math.Max(math.Abs(lo), math.Abs(hi)), MinAmplitude)
}

// Tick is a labelled mark on the time axis.
type Tick struct {
	// Fraction is the position along the axis in [0, 1].
	Fraction float64
	// Seconds is the time the mark stands for.
	Seconds float64
}

// Ticks spreads count marks evenly across the n/sampleRate second span of
// a buffer, both ends included.
func Ticks(n, sampleRate, count int) []Tick {
	if count <= 0 || sampleRate <= 0 {
		return nil
	}
	if count == 1 {
		return []Tick{{}}
	}
	duration := float64(n) / float64(sampleRate)
	ticks := make([]Tick, count)
	for k := range ticks {
		frac := float64(k) / float64(count-1)
		ticks[k] = Tick{Fraction: frac, Seconds: frac * duration}
	}
	return ticks
}
