// Package pipeline runs generate, filter and plot mapping as one step.
package pipeline

import (
	"fmt"

	"github.com/guidoenr/sigviz/internal/analyzer"
	"github.com/guidoenr/sigviz/internal/filter"
	"github.com/guidoenr/sigviz/internal/params"
	"github.com/guidoenr/sigviz/internal/plot"
	"github.com/guidoenr/sigviz/internal/signal"
)

// TickCount is the number of labelled marks on each time axis.
const TickCount = 5

// Result is everything the view needs to paint one frame.
type Result struct {
	Config        params.Config
	Raw           signal.Buffer
	Filtered      signal.Buffer
	RawPlot       plot.Plot
	FilteredPlot  plot.Plot
	Ticks         []plot.Tick
	RawStats      analyzer.Stats
	FilteredStats analyzer.Stats
	Info          []string
}

// Compute validates cfg and recomputes both buffers from scratch. On error
// the zero Result is returned.
func Compute(gen *signal.Generator, cfg params.Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	raw, err := gen.Generate(cfg.Signal, cfg.SampleRate, cfg.Samples)
	if err != nil {
		return Result{}, fmt.Errorf("generate: %w", err)
	}
	filtered := filter.Apply(raw, cfg.Filter, cfg.SampleRate)
	if filtered.Len() != raw.Len() {
		return Result{}, fmt.Errorf("filter changed length: %d != %d", filtered.Len(), raw.Len())
	}

	rawSamples := raw.Samples()
	filteredSamples := filtered.Samples()
	return Result{
		Config:        cfg,
		Raw:           raw,
		Filtered:      filtered,
		RawPlot:       plot.ScaleSamples(rawSamples),
		FilteredPlot:  plot.ScaleSamples(filteredSamples),
		Ticks:         plot.Ticks(cfg.Samples, cfg.SampleRate, TickCount),
		RawStats:      analyzer.Analyze(rawSamples),
		FilteredStats: analyzer.Analyze(filteredSamples),
		Info:          params.Describe(cfg),
	}, nil
}
