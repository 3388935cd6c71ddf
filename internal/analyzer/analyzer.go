package analyzer

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises the amplitude distribution of a buffer.
type Stats struct {
	Mean     float64
	Variance float64
	RMS      float64
	Peak     float64
}

// Analyze computes Stats for samples. Variance is the unbiased sample
// variance; buffers shorter than two samples report zero.
func Analyze(samples []float64) Stats {
	if len(samples) == 0 {
		return Stats{}
	}
	var st Stats
	if len(samples) > 1 {
		st.Mean, st.Variance = stat.MeanVariance(samples, nil)
	} else {
		st.Mean = samples[0]
	}
	st.RMS = floats.Norm(samples, 2) / math.Sqrt(float64(len(samples)))
	st.Peak = math.Max(math.Abs(floats.Min(samples)), math.Abs(floats.Max(samples)))
	return st
}

// Reduction returns how much of the raw variance the filter removed, in
// [0, 1]. A filter that adds variance reports 0.
func Reduction(raw, filtered Stats) float64 {
	if raw.Variance <= 0 {
		return 0
	}
	return clamp(1-filtered.Variance/raw.Variance, 0, 1)
}

func clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
