package signal

// Buffer is an immutable sequence of samples taken at a fixed rate.
type Buffer struct {
	samples    []float64
	sampleRate int
}

// NewBuffer copies samples into a new Buffer.
func NewBuffer(samples []float64, sampleRate int) Buffer {
	cp := make([]float64, len(samples))
	copy(cp, samples)
	return Buffer{samples: cp, sampleRate: sampleRate}
}

// wrap takes ownership of samples without copying.
func wrap(samples []float64, sampleRate int) Buffer {
	return Buffer{samples: samples, sampleRate: sampleRate}
}

// Len returns the number of samples.
func (b Buffer) Len() int { return len(b.samples) }

// SampleRate returns the sampling rate in Hz.
func (b Buffer) SampleRate() int { return b.sampleRate }

// At returns sample i.
func (b Buffer) At(i int) float64 { return b.samples[i] }

// Time returns the timestamp of sample i in seconds.
func (b Buffer) Time(i int) float64 {
	if b.sampleRate <= 0 {
		return 0
	}
	return float64(i) / float64(b.sampleRate)
}

// Samples returns a copy of the sample data.
func (b Buffer) Samples() []float64 {
	cp := make([]float64, len(b.samples))
	copy(cp, b.samples)
	return cp
}
