package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidoenr/sigviz/internal/params"
	"github.com/guidoenr/sigviz/internal/signal"
)

func TestComputeDefaults(t *testing.T) {
	res, err := Compute(signal.NewGenerator(signal.WithSeed(1)), params.Defaults())
	require.NoError(t, err)

	assert.Equal(t, 200, res.Raw.Len())
	assert.Equal(t, res.Raw.Len(), res.Filtered.Len())
	assert.Len(t, res.RawPlot.Points, 200)
	assert.Len(t, res.FilteredPlot.Points, 200)
	assert.Len(t, res.Ticks, TickCount)
	assert.Contains(t, res.Info, "Cutoff: ~50.0 Hz")

	assert.InDelta(t, res.Raw.At(100), res.Filtered.At(100), 0.1)
	assert.Less(t, res.FilteredStats.Variance, res.RawStats.Variance)
	for i := 0; i < res.Raw.Len(); i++ {
		assert.Equal(t, res.Raw.Time(i), res.Filtered.Time(i))
	}
}

func TestComputeScalesBuffersIndependently(t *testing.T) {
	cfg := params.Defaults()
	cfg.Signal.Waveform = params.WaveformSineNoise
	cfg.Signal.NoiseLevel = 0.5

	res, err := Compute(signal.NewGenerator(signal.WithSeed(5)), cfg)
	require.NoError(t, err)
	assert.Equal(t, res.RawStats.Peak, res.RawPlot.MaxAmp)
	assert.Equal(t, res.FilteredStats.Peak, res.FilteredPlot.MaxAmp)
	assert.Less(t, res.FilteredPlot.MaxAmp, res.RawPlot.MaxAmp)
}

func TestComputeRejectsInvalidConfig(t *testing.T) {
	cfg := params.Defaults()
	cfg.Signal.Waveform = "triangle"
	res, err := Compute(signal.NewGenerator(), cfg)
	require.ErrorIs(t, err, params.ErrInvalidConfig)
	assert.Zero(t, res.Raw.Len())
}

func TestComputeUnknownFilterPassesThrough(t *testing.T) {
	cfg := params.Defaults()
	cfg.Filter.Kind = "bypass"
	res, err := Compute(signal.NewGenerator(), cfg)
	require.NoError(t, err)
	assert.Equal(t, res.Raw.Samples(), res.Filtered.Samples())
}
