package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/eiannone/keyboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidoenr/sigviz/internal/params"
)

func newTestApp(t *testing.T, out *bytes.Buffer) *App {
	t.Helper()
	seed := int64(1)
	a, err := New(Config{
		Seed:          &seed,
		Width:         100,
		Height:        30,
		ShowStatusBar: true,
		Glyphs:        "ascii",
		Out:           out,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestNewDefaultsParams(t *testing.T) {
	a := newTestApp(t, &bytes.Buffer{})
	assert.Equal(t, params.Defaults(), a.Controller().Config())
}

func TestNewRejectsUnknownWaveform(t *testing.T) {
	cfg := params.Defaults()
	cfg.Signal.Waveform = "saw"
	_, err := New(Config{Params: cfg, Out: &bytes.Buffer{}})
	require.ErrorIs(t, err, params.ErrInvalidConfig)
}

func TestHandleStepsControls(t *testing.T) {
	a := newTestApp(t, &bytes.Buffer{})

	for _, evt := range []inputEvent{
		inputEventSquare,
		inputEventLowPass,
		inputEventFreqUp,
		inputEventFreqUp,
		inputEventWindowDown,
		inputEventCutoffUp,
		inputEventNoiseUp,
	} {
		a.handle(evt)
	}

	cfg := a.Controller().Config()
	assert.Equal(t, params.WaveformSquare, cfg.Signal.Waveform)
	assert.Equal(t, params.FilterLowPass, cfg.Filter.Kind)
	assert.Equal(t, 7, cfg.Signal.Frequency)
	assert.Equal(t, 19, cfg.Filter.WindowSize)
	assert.Equal(t, 31, cfg.Filter.CutoffHz)
	assert.Equal(t, 0.15, cfg.Signal.NoiseLevel)

	a.handle(inputEventReset)
	assert.Equal(t, params.Defaults(), a.Controller().Config())
}

func TestHandleClampsAtBounds(t *testing.T) {
	a := newTestApp(t, &bytes.Buffer{})
	for i := 0; i < 10; i++ {
		a.handle(inputEventFreqDown)
		a.handle(inputEventNoiseUp)
	}
	cfg := a.Controller().Config()
	assert.Equal(t, params.MinFrequency, cfg.Signal.Frequency)
	assert.Equal(t, params.MaxNoiseLevel, cfg.Signal.NoiseLevel)
}

func TestDrawWritesFrameAndStatus(t *testing.T) {
	var out bytes.Buffer
	a := newTestApp(t, &out)
	require.NoError(t, a.draw())

	text := out.String()
	assert.True(t, strings.HasPrefix(text, "\x1b[H"))
	assert.Contains(t, text, "Original Signal")
	assert.Contains(t, text, "SINE -> MOVING_AVERAGE")
	// 29 plot rows plus the status bar
	assert.Equal(t, 30, strings.Count(text, "\n"))
}

func TestKeyEvent(t *testing.T) {
	cases := []struct {
		char rune
		key  keyboard.Key
		want inputEvent
	}{
		{'q', 0, inputEventQuit},
		{0, keyboard.KeyEsc, inputEventQuit},
		{0, keyboard.KeyCtrlC, inputEventQuit},
		{'r', 0, inputEventReset},
		{'3', 0, inputEventNoise},
		{'l', 0, inputEventLowPass},
		{'W', 0, inputEventWindowUp},
		{'n', 0, inputEventNoiseDown},
		{0, keyboard.KeyArrowUp, inputEventFreqUp},
	}
	for _, tc := range cases {
		got, ok := keyEvent(tc.char, tc.key)
		require.True(t, ok, "char=%q key=%v", tc.char, tc.key)
		assert.Equal(t, tc.want, got, "char=%q key=%v", tc.char, tc.key)
	}
	_, ok := keyEvent('z', 0)
	assert.False(t, ok)
}

func TestStatusBar(t *testing.T) {
	assert.Equal(t, "abc  ", statusBar("abc", 5))
	assert.Equal(t, "ab", statusBar("abc", 2))
	assert.Equal(t, "abc", statusBar("abc", 0))
}
