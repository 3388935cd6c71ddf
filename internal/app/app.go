package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/eiannone/keyboard"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/guidoenr/sigviz/internal/params"
	"github.com/guidoenr/sigviz/internal/render"
	"github.com/guidoenr/sigviz/internal/signal"
)

// Config configures the application runtime.
type Config struct {
	Params        params.Config
	Seed          *int64
	Width         int
	Height        int
	ShowStatusBar bool
	Glyphs        string
	Theme         string
	Backend       string
	UseANSI       bool
	Log           *zap.Logger
	Out           io.Writer
}

type inputEvent int

const (
	inputEventQuit inputEvent = iota
	inputEventReset
	inputEventSine
	inputEventSquare
	inputEventNoise
	inputEventSineNoise
	inputEventMovingAverage
	inputEventLowPass
	inputEventFreqDown
	inputEventFreqUp
	inputEventWindowDown
	inputEventWindowUp
	inputEventCutoffDown
	inputEventCutoffUp
	inputEventNoiseDown
	inputEventNoiseUp
)

// App ties together the controller, keyboard input and rendering.
type App struct {
	cfg          Config
	controller   *Controller
	renderer     *render.Renderer
	log          *zap.Logger
	out          io.Writer
	width        int
	height       int
	renderHeight int
	inputEvents  chan inputEvent
}

// New constructs the application using the provided configuration.
func New(cfg Config) (*App, error) {
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Params == (params.Config{}) {
		cfg.Params = params.Defaults()
	}

	windowed := strings.EqualFold(cfg.Backend, "sdl")
	if cfg.Width <= 0 {
		cfg.Width = 80
		if windowed {
			cfg.Width = 900
		}
	}
	if cfg.Height <= 0 {
		cfg.Height = 24
		if windowed {
			cfg.Height = 650
		}
	}
	renderHeight := cfg.Height
	if cfg.ShowStatusBar && !windowed && renderHeight > 1 {
		renderHeight--
	}

	renderer, err := render.New(cfg.Width, renderHeight, cfg.Glyphs, cfg.Theme, cfg.Backend, cfg.UseANSI)
	if err != nil {
		return nil, err
	}

	var opts []signal.Option
	if cfg.Seed != nil {
		opts = append(opts, signal.WithSeed(*cfg.Seed))
	}
	gen := signal.NewGenerator(opts...)
	controller, err := NewController(cfg.Params, gen, cfg.Log)
	if err != nil {
		_ = renderer.Close()
		return nil, fmt.Errorf("initial config: %w", err)
	}
	cfg.Log.Info("generator ready", zap.Int64("seed", gen.Seed()))

	return &App{
		cfg:          cfg,
		controller:   controller,
		renderer:     renderer,
		log:          cfg.Log,
		out:          cfg.Out,
		width:        cfg.Width,
		height:       cfg.Height,
		renderHeight: renderHeight,
	}, nil
}

// Controller exposes the configuration state driving the display.
func (a *App) Controller() *Controller { return a.controller }

// Run draws the initial frame and then redraws on every input event until
// the context is cancelled or the user quits.
func (a *App) Run(ctx context.Context) error {
	windowed := a.renderer.Windowed()
	if !windowed {
		a.enterAltScreen()
		a.clearScreen()
		a.hideCursor()
		defer func() {
			a.showCursor()
			a.exitAltScreen()
		}()
	}

	inputCtx, cancelInput := context.WithCancel(ctx)
	defer cancelInput()
	a.startInputListener(inputCtx)
	a.ensureDimensions()

	if err := a.draw(); err != nil {
		return quitOrErr(err)
	}

	// resize polling, and event pumping for the window backend
	ticker := time.NewTicker(250 * time.Millisecond)
	if windowed {
		ticker.Reset(50 * time.Millisecond)
	}
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.moveCursorHome()
			return ctx.Err()
		case evt, ok := <-a.inputEvents:
			if !ok {
				a.inputEvents = nil
				continue
			}
			if evt == inputEventQuit {
				a.moveCursorHome()
				return nil
			}
			a.handle(evt)
			if err := a.draw(); err != nil {
				return quitOrErr(err)
			}
		case <-ticker.C:
			if a.ensureDimensions() || windowed {
				if err := a.draw(); err != nil {
					return quitOrErr(err)
				}
			}
		}
	}
}

// quitOrErr treats a closed window as a normal exit.
func quitOrErr(err error) error {
	if errors.Is(err, render.ErrRendererQuit) {
		return nil
	}
	return err
}

// Close releases held resources.
func (a *App) Close() error {
	return a.renderer.Close()
}

// handle applies one input event to the controller. Errors leave the
// previous frame in place; the controller already logged them.
func (a *App) handle(evt inputEvent) {
	c := a.controller
	cfg := c.Config()
	var err error
	switch evt {
	case inputEventReset:
		err = c.Reset()
	case inputEventSine:
		err = c.SetWaveform(params.WaveformSine)
	case inputEventSquare:
		err = c.SetWaveform(params.WaveformSquare)
	case inputEventNoise:
		err = c.SetWaveform(params.WaveformNoise)
	case inputEventSineNoise:
		err = c.SetWaveform(params.WaveformSineNoise)
	case inputEventMovingAverage:
		err = c.SetFilter(params.FilterMovingAverage)
	case inputEventLowPass:
		err = c.SetFilter(params.FilterLowPass)
	case inputEventFreqDown:
		err = c.SetFrequency(cfg.Signal.Frequency - 1)
	case inputEventFreqUp:
		err = c.SetFrequency(cfg.Signal.Frequency + 1)
	case inputEventWindowDown:
		err = c.SetWindowSize(cfg.Filter.WindowSize - 1)
	case inputEventWindowUp:
		err = c.SetWindowSize(cfg.Filter.WindowSize + 1)
	case inputEventCutoffDown:
		err = c.SetCutoff(cfg.Filter.CutoffHz - 1)
	case inputEventCutoffUp:
		err = c.SetCutoff(cfg.Filter.CutoffHz + 1)
	case inputEventNoiseDown:
		err = c.SetNoiseLevel(cfg.Signal.NoiseLevel - params.NoiseStep)
	case inputEventNoiseUp:
		err = c.SetNoiseLevel(cfg.Signal.NoiseLevel + params.NoiseStep)
	}
	if err != nil {
		a.log.Debug("input rejected", zap.Int("event", int(evt)), zap.Error(err))
	}
}

func (a *App) draw() error {
	frame := a.renderer.Render(a.controller.Result())
	if frame.Present != nil {
		if err := frame.Present(frame.Status); err != nil {
			return fmt.Errorf("present frame: %w", err)
		}
		return nil
	}

	a.moveCursorHome()
	var b strings.Builder
	for _, line := range frame.Lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if a.cfg.ShowStatusBar {
		b.WriteString(statusBar(frame.Status, a.width))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(a.out, b.String())
	return err
}

// ensureDimensions follows the terminal size and reports whether it changed.
func (a *App) ensureDimensions() bool {
	if a.renderer.Windowed() {
		return false
	}
	f, ok := a.out.(*os.File)
	if !ok {
		return false
	}
	fd := int(f.Fd())
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return false
	}

	renderHeight := h
	if a.cfg.ShowStatusBar && renderHeight > 1 {
		renderHeight--
	}

	if w == a.width && h == a.height && renderHeight == a.renderHeight {
		return false
	}

	a.width = w
	a.height = h
	a.renderHeight = renderHeight
	a.renderer.Resize(w, renderHeight)
	a.clearScreen()
	return true
}

func (a *App) startInputListener(ctx context.Context) {
	if err := keyboard.Open(); err != nil {
		a.log.Warn("keyboard input disabled", zap.Error(err))
		a.inputEvents = nil
		return
	}

	events := make(chan inputEvent, 16)
	a.inputEvents = events

	closeOnce := &sync.Once{}
	go func() {
		<-ctx.Done()
		closeOnce.Do(func() {
			_ = keyboard.Close()
		})
	}()

	go func() {
		defer close(events)
		defer closeOnce.Do(func() {
			_ = keyboard.Close()
		})
		for {
			char, key, err := keyboard.GetKey()
			if err != nil {
				return
			}
			select {
			case <-ctx.Done():
				return
			default:
			}
			evt, ok := keyEvent(char, key)
			if !ok {
				continue
			}
			if evt == inputEventQuit {
				events <- inputEventQuit
				return
			}
			select {
			case events <- evt:
			default:
			}
		}
	}()
}

var charEvents = map[rune]inputEvent{
	'q': inputEventQuit,
	'Q': inputEventQuit,
	'r': inputEventReset,
	'R': inputEventReset,
	'1': inputEventSine,
	'2': inputEventSquare,
	'3': inputEventNoise,
	'4': inputEventSineNoise,
	'm': inputEventMovingAverage,
	'M': inputEventMovingAverage,
	'l': inputEventLowPass,
	'L': inputEventLowPass,
	'f': inputEventFreqDown,
	'F': inputEventFreqUp,
	'w': inputEventWindowDown,
	'W': inputEventWindowUp,
	'c': inputEventCutoffDown,
	'C': inputEventCutoffUp,
	'n': inputEventNoiseDown,
	'N': inputEventNoiseUp,
}

func keyEvent(char rune, key keyboard.Key) (inputEvent, bool) {
	switch key {
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return inputEventQuit, true
	case keyboard.KeyArrowUp:
		return inputEventFreqUp, true
	case keyboard.KeyArrowDown:
		return inputEventFreqDown, true
	}
	evt, ok := charEvents[char]
	return evt, ok
}

func statusBar(text string, width int) string {
	if width <= 0 {
		return text
	}
	if len(text) >= width {
		return text[:width]
	}
	padding := width - len(text)
	return text + strings.Repeat(" ", padding)
}

func (a *App) clearScreen() {
	fmt.Fprint(a.out, "\x1b[2J")
	a.moveCursorHome()
}

func (a *App) moveCursorHome() {
	fmt.Fprint(a.out, "\x1b[H")
}

func (a *App) hideCursor() {
	fmt.Fprint(a.out, "\x1b[?25l")
}

func (a *App) showCursor() {
	fmt.Fprint(a.out, "\x1b[?25h")
}

func (a *App) enterAltScreen() {
	fmt.Fprint(a.out, "\x1b[?1049h")
}

func (a *App) exitAltScreen() {
	fmt.Fprint(a.out, "\x1b[?1049l\x1b[0m")
}
