// Package filter smooths sample buffers with a moving average or a
// single-pole RC low-pass.
package filter

import (
	"math"

	"github.com/guidoenr/sigviz/internal/params"
	"github.com/guidoenr/sigviz/internal/signal"
)

// Apply runs the filter selected by cfg over raw and returns a new buffer of
// the same length and rate. Unknown filter kinds return an unmodified copy.
func Apply(raw signal.Buffer, cfg params.FilterConfig, sampleRate int) signal.Buffer {
	samples := raw.Samples()
	switch cfg.Kind {
	case params.FilterMovingAverage:
		samples = MovingAverage(samples, cfg.WindowSize)
	case params.FilterLowPass:
		samples = LowPass(samples, float64(cfg.CutoffHz), float64(sampleRate))
	}
	return signal.NewBuffer(samples, raw.SampleRate())
}

// MovingAverage averages each sample with its neighbours in
// [i-window/2, i+window/2). Near the edges the window is truncated rather
// than padded, so fewer samples contribute. A half-width of zero keeps
// sample i itself, making window 1 the identity. window must be >= 1.
func MovingAverage(samples []float64, window int) []float64 {
	n := len(samples)
	out := make([]float64, n)
	half := window / 2
	for i := range out {
		start := max(0, i-half)
		end := min(n, max(i+half, i+1))
		sum := 0.0
		for _, v := range samples[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

// Alpha returns the smoothing factor dt/(RC+dt) of an RC low-pass with the
// given cutoff at the given sample rate.
func Alpha(cutoffHz, sampleRate float64) float64 {
	rc := 1 / (2 * math.Pi * cutoffHz)
	dt := 1 / sampleRate
	return dt / (rc + dt)
}

// LowPass runs a causal single-pole smoother seeded with the first sample.
func LowPass(samples []float64, cutoffHz, sampleRate float64) []float64 {
	out := make([]float64, len(samples))
	if len(samples) == 0 {
		return out
	}
	alpha := Alpha(cutoffHz, sampleRate)
	out[0] = samples[0]
	for i := 1; i < len(samples); i++ {
		out[i] = out[i-1] + alpha*(samples[i]-out[i-1])
	}
	return out
}
