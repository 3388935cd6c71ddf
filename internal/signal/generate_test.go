package signal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidoenr/sigviz/internal/params"
)

func TestSineIsDeterministic(t *testing.T) {
	for _, freq := range []int{1, 5, 17, 50} {
		cfg := params.SignalConfig{Waveform: params.WaveformSine, Frequency: freq}
		a, err := NewGenerator(WithSeed(1)).Generate(cfg, 1000, 200)
		require.NoError(t, err)
		b, err := NewGenerator(WithSeed(2)).Generate(cfg, 1000, 200)
		require.NoError(t, err)

		require.Equal(t, 200, a.Len())
		assert.Equal(t, a.Samples(), b.Samples())
		for i := 0; i < a.Len(); i++ {
			want := math.Sin(2 * math.Pi * float64(freq) * float64(i) / 1000)
			assert.InDelta(t, want, a.At(i), 1e-12, "freq=%d index=%d", freq, i)
		}
	}
}

func TestSineIgnoresNoiseLevel(t *testing.T) {
	cfg := params.SignalConfig{Waveform: params.WaveformSine, Frequency: 5, NoiseLevel: 0.5}
	buf, err := NewGenerator().Generate(cfg, 1000, 200)
	require.NoError(t, err)
	for i := 0; i < buf.Len(); i++ {
		assert.InDelta(t, math.Sin(2*math.Pi*5*float64(i)/1000), buf.At(i), 1e-12)
	}
}

func TestSquareIsBipolar(t *testing.T) {
	cfg := params.SignalConfig{Waveform: params.WaveformSquare, Frequency: 7}
	buf, err := NewGenerator().Generate(cfg, 1000, 200)
	require.NoError(t, err)
	freq := 7.0
	for i := 0; i < buf.Len(); i++ {
		v := buf.At(i)
		require.True(t, v == 1 || v == -1, "index %d: %v", i, v)
		want := -1.0
		if math.Sin(2*math.Pi*freq*buf.Time(i)) >= 0 {
			want = 1
		}
		assert.Equal(t, want, v, "index %d", i)
	}
}

func TestNoiseIsSeeded(t *testing.T) {
	cfg := params.SignalConfig{Waveform: params.WaveformNoise, Frequency: 5, NoiseLevel: 0.1}

	a, err := NewGenerator(WithSeed(42)).Generate(cfg, 1000, 200)
	require.NoError(t, err)
	b, err := NewGenerator(WithSeed(42)).Generate(cfg, 1000, 200)
	require.NoError(t, err)
	assert.Equal(t, a.Samples(), b.Samples())

	c, err := NewGenerator(WithSeed(43)).Generate(cfg, 1000, 200)
	require.NoError(t, err)
	assert.NotEqual(t, a.Samples(), c.Samples())
}

func TestNoiseAdvancesRandomSource(t *testing.T) {
	cfg := params.SignalConfig{Waveform: params.WaveformNoise, NoiseLevel: 0.2}
	g := NewGenerator(WithSeed(7))
	first, err := g.Generate(cfg, 1000, 200)
	require.NoError(t, err)
	second, err := g.Generate(cfg, 1000, 200)
	require.NoError(t, err)
	assert.NotEqual(t, first.Samples(), second.Samples())
}

func TestPureNoiseIsZeroMean(t *testing.T) {
	cfg := params.SignalConfig{Waveform: params.WaveformNoise, NoiseLevel: 0.1}
	buf, err := NewGenerator(WithSeed(3)).Generate(cfg, 1000, 20000)
	require.NoError(t, err)

	sum, sumSq := 0.0, 0.0
	for _, v := range buf.Samples() {
		sum += v
		sumSq += v * v
	}
	n := float64(buf.Len())
	mean := sum / n
	std := math.Sqrt(sumSq/n - mean*mean)
	assert.InDelta(t, 0, mean, 0.01)
	assert.InDelta(t, 0.1, std, 0.01)
}

func TestZeroNoiseLevelIsSilent(t *testing.T) {
	cfg := params.SignalConfig{Waveform: params.WaveformNoise, NoiseLevel: 0}
	buf, err := NewGenerator().Generate(cfg, 1000, 200)
	require.NoError(t, err)
	for _, v := range buf.Samples() {
		assert.Zero(t, v)
	}
}

func TestSineNoiseAddsNoiseAroundCarrier(t *testing.T) {
	cfg := params.SignalConfig{Waveform: params.WaveformSineNoise, Frequency: 5, NoiseLevel: 0.05}
	buf, err := NewGenerator(WithSeed(9)).Generate(cfg, 1000, 200)
	require.NoError(t, err)

	differs := false
	for i := 0; i < buf.Len(); i++ {
		carrier := math.Sin(2 * math.Pi * 5 * buf.Time(i))
		assert.InDelta(t, carrier, buf.At(i), 0.5)
		if buf.At(i) != carrier {
			differs = true
		}
	}
	assert.True(t, differs)
}

func TestGenerateRejectsUnknownWaveform(t *testing.T) {
	_, err := NewGenerator().Generate(params.SignalConfig{Waveform: "triangle", Frequency: 5}, 1000, 200)
	require.ErrorIs(t, err, params.ErrInvalidConfig)

	_, err = NewGenerator().Generate(params.SignalConfig{Waveform: params.WaveformSine}, 0, 200)
	require.ErrorIs(t, err, params.ErrInvalidConfig)

	_, err = NewGenerator().Generate(params.SignalConfig{Waveform: params.WaveformSine}, 1000, 0)
	require.ErrorIs(t, err, params.ErrInvalidConfig)
}

func TestBufferIsImmutable(t *testing.T) {
	src := []float64{1, 2, 3}
	buf := NewBuffer(src, 1000)
	src[0] = 99
	out := buf.Samples()
	out[1] = 99

	assert.Equal(t, []float64{1, 2, 3}, buf.Samples())
	assert.Equal(t, 1000, buf.SampleRate())
	assert.InDelta(t, 0.002, buf.Time(2), 1e-15)
}
