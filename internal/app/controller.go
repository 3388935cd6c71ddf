package app

import (
	"go.uber.org/zap"

	"github.com/guidoenr/sigviz/internal/params"
	"github.com/guidoenr/sigviz/internal/pipeline"
	"github.com/guidoenr/sigviz/internal/signal"
)

// Controller owns the current configuration and the frame computed from it.
// Every change builds a new Config, recomputes synchronously and swaps both
// together; a failed recompute keeps the previous state. It must be used
// from a single goroutine.
type Controller struct {
	cfg    params.Config
	result pipeline.Result
	gen    *signal.Generator
	log    *zap.Logger
}

// NewController computes the initial frame for cfg.
func NewController(cfg params.Config, gen *signal.Generator, log *zap.Logger) (*Controller, error) {
	if gen == nil {
		gen = signal.NewGenerator()
	}
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{gen: gen, log: log}
	if err := c.Apply(cfg); err != nil {
		return nil, err
	}
	return c, nil
}

// Config returns the current configuration.
func (c *Controller) Config() params.Config { return c.cfg }

// Result returns the most recently computed frame.
func (c *Controller) Result() pipeline.Result { return c.result }

// Apply clamps next into range and makes it current if it computes.
func (c *Controller) Apply(next params.Config) error {
	next = next.Clamp()
	res, err := pipeline.Compute(c.gen, next)
	if err != nil {
		c.log.Warn("recompute failed, keeping previous frame", zap.Error(err))
		return err
	}
	c.cfg = next
	c.result = res
	c.log.Debug("recomputed",
		zap.String("waveform", string(next.Signal.Waveform)),
		zap.String("filter", string(next.Filter.Kind)),
		zap.Int("freq", next.Signal.Frequency),
		zap.Int("window", next.Filter.WindowSize),
		zap.Int("cutoff", next.Filter.CutoffHz),
		zap.Float64("noise", next.Signal.NoiseLevel),
	)
	return nil
}

// SetWaveform switches the signal shape.
func (c *Controller) SetWaveform(w params.Waveform) error {
	next := c.cfg
	next.Signal.Waveform = w
	return c.Apply(next)
}

// SetFilter switches the filter kind.
func (c *Controller) SetFilter(k params.FilterKind) error {
	next := c.cfg
	next.Filter.Kind = k
	return c.Apply(next)
}

// SetFrequency sets the carrier frequency in Hz.
func (c *Controller) SetFrequency(hz int) error {
	next := c.cfg
	next.Signal.Frequency = hz
	return c.Apply(next)
}

// SetWindowSize sets the moving-average window.
func (c *Controller) SetWindowSize(n int) error {
	next := c.cfg
	next.Filter.WindowSize = n
	return c.Apply(next)
}

// SetCutoff sets the low-pass cutoff in Hz.
func (c *Controller) SetCutoff(hz int) error {
	next := c.cfg
	next.Filter.CutoffHz = hz
	return c.Apply(next)
}

// SetNoiseLevel sets the Gaussian noise standard deviation.
func (c *Controller) SetNoiseLevel(v float64) error {
	next := c.cfg
	next.Signal.NoiseLevel = v
	return c.Apply(next)
}

// Reset restores the default controls, keeping the sample rate and length.
func (c *Controller) Reset() error {
	next := params.Defaults()
	next.SampleRate = c.cfg.SampleRate
	next.Samples = c.cfg.Samples
	return c.Apply(next)
}
