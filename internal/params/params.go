package params

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidConfig reports a parameter outside its allowed range or an unknown waveform.
var ErrInvalidConfig = errors.New("invalid config")

// Waveform selects the base signal shape.
type Waveform string

// FilterKind selects the smoothing filter. Unknown kinds pass samples through unchanged.
type FilterKind string

const (
	WaveformSine      Waveform = "sine"
	WaveformSquare    Waveform = "square"
	WaveformNoise     Waveform = "noise"
	WaveformSineNoise Waveform = "sine_noise"

	FilterMovingAverage FilterKind = "moving_average"
	FilterLowPass       FilterKind = "low_pass"
)

// Parameter bounds, matching the control ranges.
const (
	MinFrequency  = 1
	MaxFrequency  = 50
	MinWindowSize = 3
	MaxWindowSize = 51
	MinCutoff     = 5
	MaxCutoff     = 100
	MinNoiseLevel = 0.0
	MaxNoiseLevel = 0.5
	NoiseStep     = 0.05

	DefaultSampleRate = 1000
	DefaultSamples    = 200
)

var waveformNames = []Waveform{WaveformSine, WaveformSquare, WaveformNoise, WaveformSineNoise}

var filterNames = []FilterKind{FilterMovingAverage, FilterLowPass}

// Waveforms returns the supported waveforms in control order.
func Waveforms() []Waveform {
	out := make([]Waveform, len(waveformNames))
	copy(out, waveformNames)
	return out
}

// FilterKinds returns the supported filter kinds in control order.
func FilterKinds() []FilterKind {
	out := make([]FilterKind, len(filterNames))
	copy(out, filterNames)
	return out
}

// Known reports whether w is one of the supported waveforms.
func (w Waveform) Known() bool {
	for _, name := range waveformNames {
		if w == name {
			return true
		}
	}
	return false
}

// Known reports whether k is one of the supported filter kinds.
func (k FilterKind) Known() bool {
	for _, name := range filterNames {
		if k == name {
			return true
		}
	}
	return false
}

// SignalConfig describes the synthetic signal.
type SignalConfig struct {
	Waveform   Waveform
	Frequency  int
	NoiseLevel float64
}

// FilterConfig describes the filter stage.
type FilterConfig struct {
	Kind       FilterKind
	WindowSize int
	CutoffHz   int
}

// Config is the full pipeline configuration. It is passed by value and
// replaced wholesale on every change.
type Config struct {
	Signal     SignalConfig
	Filter     FilterConfig
	SampleRate int
	Samples    int
}

// Defaults returns the reset state of the controls.
func Defaults() Config {
	return Config{
		Signal: SignalConfig{
			Waveform:   WaveformSine,
			Frequency:  5,
			NoiseLevel: 0.1,
		},
		Filter: FilterConfig{
			Kind:       FilterMovingAverage,
			WindowSize: 20,
			CutoffHz:   30,
		},
		SampleRate: DefaultSampleRate,
		Samples:    DefaultSamples,
	}
}

// Clamp returns a copy with every numeric parameter forced into range and the
// noise level snapped to its step. Enumerations are left untouched.
func (c Config) Clamp() Config {
	c.Signal.Frequency = clampInt(c.Signal.Frequency, MinFrequency, MaxFrequency)
	c.Signal.NoiseLevel = SnapNoise(c.Signal.NoiseLevel)
	c.Filter.WindowSize = clampInt(c.Filter.WindowSize, MinWindowSize, MaxWindowSize)
	c.Filter.CutoffHz = clampInt(c.Filter.CutoffHz, MinCutoff, MaxCutoff)
	if c.SampleRate <= 0 {
		c.SampleRate = DefaultSampleRate
	}
	if c.Samples <= 0 {
		c.Samples = DefaultSamples
	}
	return c
}

// Validate rejects out-of-range values and unknown waveforms.
func (c Config) Validate() error {
	if !c.Signal.Waveform.Known() {
		return fmt.Errorf("%w: unknown waveform %q", ErrInvalidConfig, c.Signal.Waveform)
	}
	if c.Signal.Frequency < MinFrequency || c.Signal.Frequency > MaxFrequency {
		return fmt.Errorf("%w: frequency %d outside [%d, %d]", ErrInvalidConfig, c.Signal.Frequency, MinFrequency, MaxFrequency)
	}
	if math.IsNaN(c.Signal.NoiseLevel) || c.Signal.NoiseLevel < MinNoiseLevel || c.Signal.NoiseLevel > MaxNoiseLevel {
		return fmt.Errorf("%w: noise level %g outside [%g, %g]", ErrInvalidConfig, c.Signal.NoiseLevel, MinNoiseLevel, MaxNoiseLevel)
	}
	if c.Filter.WindowSize < MinWindowSize || c.Filter.WindowSize > MaxWindowSize {
		return fmt.Errorf("%w: window size %d outside [%d, %d]", ErrInvalidConfig, c.Filter.WindowSize, MinWindowSize, MaxWindowSize)
	}
	if c.Filter.CutoffHz < MinCutoff || c.Filter.CutoffHz > MaxCutoff {
		return fmt.Errorf("%w: cutoff %d Hz outside [%d, %d]", ErrInvalidConfig, c.Filter.CutoffHz, MinCutoff, MaxCutoff)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be > 0: %d", ErrInvalidConfig, c.SampleRate)
	}
	if c.Samples <= 0 {
		return fmt.Errorf("%w: samples must be > 0: %d", ErrInvalidConfig, c.Samples)
	}
	return nil
}

// ParseWaveform resolves a waveform name, accepting a few aliases.
func ParseWaveform(name string) (Waveform, error) {
	switch name {
	case "sine", "sin":
		return WaveformSine, nil
	case "square", "sq":
		return WaveformSquare, nil
	case "noise":
		return WaveformNoise, nil
	case "sine_noise", "sine+noise", "noisy":
		return WaveformSineNoise, nil
	default:
		return "", fmt.Errorf("%w: unknown waveform %q", ErrInvalidConfig, name)
	}
}

// CutoffEstimate approximates the effective cutoff of a moving-average
// filter as fs / window.
func CutoffEstimate(sampleRate, windowSize int) float64 {
	if windowSize <= 0 {
		return 0
	}
	return float64(sampleRate) / float64(windowSize)
}

// Describe renders the info panel lines for c.
func Describe(c Config) []string {
	lines := []string{
		"Signal: " + string(c.Signal.Waveform),
		"Filter: " + string(c.Filter.Kind),
		"Freq: " + strconv.Itoa(c.Signal.Frequency) + " Hz",
	}
	if c.Filter.Kind == FilterMovingAverage {
		lines = append(lines,
			"Window: "+strconv.Itoa(c.Filter.WindowSize),
			fmt.Sprintf("Cutoff: ~%.1f Hz", CutoffEstimate(c.SampleRate, c.Filter.WindowSize)),
		)
	} else {
		lines = append(lines, "Cutoff: "+strconv.Itoa(c.Filter.CutoffHz)+" Hz")
	}
	lines = append(lines, "Noise: "+strconv.FormatFloat(c.Signal.NoiseLevel, 'f', -1, 64))
	return lines
}

// SnapNoise clamps v to the noise range and rounds it to the nearest step.
func SnapNoise(v float64) float64 {
	if math.IsNaN(v) {
		return MinNoiseLevel
	}
	v = clamp(v, MinNoiseLevel, MaxNoiseLevel)
	steps := math.Round(v / NoiseStep)
	// two decimals keeps 0.15 from printing as 0.15000000000000002
	return math.Round(steps*NoiseStep*100) / 100
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

func clampInt(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
