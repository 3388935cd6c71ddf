package signal

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/guidoenr/sigviz/internal/params"
)

// Generator renders synthetic waveforms. Noise draws advance its random
// source, so a Generator is not safe for concurrent use.
type Generator struct {
	rng  *rand.Rand
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets a deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a Generator seeded from the clock unless WithSeed is given.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{seed: time.Now().UnixNano()}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	g.rng = rand.New(rand.NewSource(g.seed))
	return g
}

// Seed returns the seed the random source was created with.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Generate produces n samples of the configured waveform at sampleRate Hz.
// Inputs are expected to be in range already; only an unknown waveform or
// non-positive sizes are rejected.
func (g *Generator) Generate(cfg params.SignalConfig, sampleRate, n int) (Buffer, error) {
	if n <= 0 {
		return Buffer{}, fmt.Errorf("%w: samples must be > 0: %d", params.ErrInvalidConfig, n)
	}
	if sampleRate <= 0 {
		return Buffer{}, fmt.Errorf("%w: sample rate must be > 0: %d", params.ErrInvalidConfig, sampleRate)
	}
	if !cfg.Waveform.Known() {
		return Buffer{}, fmt.Errorf("%w: unknown waveform %q", params.ErrInvalidConfig, cfg.Waveform)
	}

	freq := float64(cfg.Frequency)
	fs := float64(sampleRate)
	noisy := cfg.Waveform == params.WaveformNoise || cfg.Waveform == params.WaveformSineNoise

	out := make([]float64, n)
	for i := range out {
		t := float64(i) / fs
		var value float64
		switch cfg.Waveform {
		case params.WaveformSine, params.WaveformSineNoise:
			value = math.Sin(2 * math.Pi * freq * t)
		case params.WaveformSquare:
			if math.Sin(2*math.Pi*freq*t) >= 0 {
				value = 1
			} else {
				value = -1
			}
		case params.WaveformNoise:
			value = 0
		}
		if noisy {
			value += g.rng.NormFloat64() * cfg.NoiseLevel
		}
		out[i] = value
	}
	return wrap(out, sampleRate), nil
}
