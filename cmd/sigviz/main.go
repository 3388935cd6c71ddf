package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/guidoenr/sigviz/internal/app"
	"github.com/guidoenr/sigviz/internal/logging"
	"github.com/guidoenr/sigviz/internal/params"
	"github.com/guidoenr/sigviz/internal/render"
)

func main() {
	defaults := params.Defaults()
	var (
		waveform   = flag.String("waveform", string(defaults.Signal.Waveform), "Signal type (sine|square|noise|sine_noise)")
		filterKind = flag.String("filter", string(defaults.Filter.Kind), "Filter type (moving_average|low_pass)")
		freq       = flag.Int("freq", defaults.Signal.Frequency, "Signal frequency in Hz (1-50)")
		window     = flag.Int("window", defaults.Filter.WindowSize, "Moving-average window size (3-51)")
		cutoff     = flag.Int("cutoff", defaults.Filter.CutoffHz, "Low-pass cutoff frequency in Hz (5-100)")
		noise      = flag.Float64("noise", defaults.Signal.NoiseLevel, "Noise standard deviation (0-0.5)")
		rate       = flag.Int("rate", defaults.SampleRate, "Sampling rate in Hz")
		samples    = flag.Int("samples", defaults.Samples, "Samples per buffer")
		seed       = flag.Int64("seed", 0, "Noise seed (0 picks one from the clock)")
		width      = flag.Int("width", 0, "Frame width (terminal columns, or pixels with -backend sdl)")
		height     = flag.Int("height", 0, "Frame height (terminal rows, or pixels with -backend sdl)")
		glyphs     = flag.String("glyphs", "dots", "Trace glyphs ("+strings.Join(render.GlyphNames(), "|")+")")
		theme      = flag.String("theme", "classic", "Color theme ("+strings.Join(render.ThemeNames(), "|")+")")
		backend    = flag.String("backend", "ascii", "Output backend ("+strings.Join(render.BackendNames(), "|")+")")
		showStatus = flag.Bool("status", true, "Display status bar")
		noColor    = flag.Bool("no-color", false, "Disable ANSI color output")
		debug      = flag.Bool("debug", false, "Enable verbose logging")
	)

	flag.Parse()

	logger := logging.New(*debug, os.Stderr)
	defer func() { _ = logger.Sync() }()

	wf, err := params.ParseWaveform(*waveform)
	if err != nil {
		logger.Fatal("invalid flag", zap.String("flag", "waveform"), zap.Error(err))
	}
	kind := params.FilterKind(strings.ToLower(*filterKind))
	if !kind.Known() {
		logger.Warn("unknown filter, samples pass through unfiltered", zap.String("filter", *filterKind))
	}
	if *backend == "sdl" && !render.SupportsSDL() {
		logger.Fatal("sdl backend requested but binary was built without -tags sdl")
	}

	cfg := params.Config{
		Signal: params.SignalConfig{
			Waveform:   wf,
			Frequency:  *freq,
			NoiseLevel: *noise,
		},
		Filter: params.FilterConfig{
			Kind:       kind,
			WindowSize: *window,
			CutoffHz:   *cutoff,
		},
		SampleRate: *rate,
		Samples:    *samples,
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	if *backend != "sdl" {
		if fd := int(os.Stdout.Fd()); fd >= 0 {
			if w, h, err := term.GetSize(fd); err == nil {
				if *width <= 0 && w > 0 {
					*width = w
				}
				if *height <= 0 && h > 0 {
					*height = h
				}
			}
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	appConfig := app.Config{
		Params:        cfg,
		Width:         *width,
		Height:        *height,
		ShowStatusBar: *showStatus,
		Glyphs:        *glyphs,
		Theme:         *theme,
		Backend:       *backend,
		UseANSI:       !*noColor,
		Log:           logger,
		Out:           os.Stdout,
	}
	if *seed != 0 {
		appConfig.Seed = seed
	}

	a, err := app.New(appConfig)
	if err != nil {
		logger.Fatal("failed to create app", zap.Error(err))
	}
	defer func() {
		if err := a.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "cleanup error: %v\n", err)
		}
	}()

	if err := a.Run(ctx); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nExiting...")
			return
		}
		logger.Error("runtime error", zap.Error(err))
	}
}
