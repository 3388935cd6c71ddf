//go:build sdl

package render

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/guidoenr/sigviz/internal/pipeline"
	"github.com/guidoenr/sigviz/internal/plot"
)

const sdlMargin = 60

type sdlState struct {
	initialized bool
	window      *sdl.Window
	renderer    *sdl.Renderer
	width       int
	height      int
	windowTitle string
}

func (r *Renderer) initSDL(width, height int) error {
	if r.sdl != nil {
		r.mode = backendSDL
		r.useANSI = false
		return nil
	}
	if err := sdl.InitSubSystem(sdl.INIT_VIDEO); err != nil {
		return err
	}
	r.sdl = &sdlState{
		initialized: true,
	}
	r.mode = backendSDL
	r.useANSI = false
	return nil
}

func (r *Renderer) ensureSDLResources() error {
	if r.sdl == nil {
		return fmt.Errorf("SDL backend not initialized")
	}
	state := r.sdl
	if !state.initialized {
		if err := sdl.InitSubSystem(sdl.INIT_VIDEO); err != nil {
			return err
		}
		state.initialized = true
	}
	if state.window == nil {
		window, err := sdl.CreateWindow(
			"sigviz",
			sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
			int32(r.width), int32(r.height),
			sdl.WINDOW_SHOWN,
		)
		if err != nil {
			return err
		}
		state.window = window
	}
	if state.renderer == nil {
		renderer, err := sdl.CreateRenderer(state.window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
		if err != nil {
			return err
		}
		state.renderer = renderer
	}
	if state.width != r.width || state.height != r.height {
		state.window.SetSize(int32(r.width), int32(r.height))
		_ = state.renderer.SetLogicalSize(int32(r.width), int32(r.height))
		state.width = r.width
		state.height = r.height
	}
	return nil
}

func (r *Renderer) renderSDL(res pipeline.Result) Frame {
	if err := r.ensureSDLResources(); err != nil {
		return Frame{
			Status: fmt.Sprintf("SDL init error: %v", err),
			Present: func(string) error {
				return err
			},
		}
	}
	state := r.sdl
	pal := r.theme.palette()

	plotWidth := float64(r.width - 2*sdlMargin)
	plotHeight := float64((r.height - 4*sdlMargin) / 2)
	rawCenter := float64(sdlMargin) + plotHeight/2
	filteredCenter := float64(2*sdlMargin) + plotHeight + plotHeight/2

	status := r.buildStatus(res)

	return Frame{
		Status: status,
		Present: func(status string) error {
			if status != "" && status != state.windowTitle && state.window != nil {
				state.window.SetTitle(status)
				state.windowTitle = status
			}
			if err := state.renderer.SetDrawColor(255, 255, 255, 255); err != nil {
				return err
			}
			if err := state.renderer.Clear(); err != nil {
				return err
			}
			for _, trace := range []struct {
				center float64
				plot   plot.Plot
				color  int
			}{
				{rawCenter, res.RawPlot, pal.raw},
				{filteredCenter, res.FilteredPlot, pal.filtered},
			} {
				if err := drawSDLAxis(state.renderer, trace.center, plotWidth, plotHeight, res.Ticks); err != nil {
					return err
				}
				if err := drawSDLTrace(state.renderer, trace.center, plotWidth, plotHeight, trace.plot, trace.color); err != nil {
					return err
				}
			}
			state.renderer.Present()
			for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
				switch event.(type) {
				case *sdl.QuitEvent:
					return ErrRendererQuit
				}
			}
			return nil
		},
	}
}

func drawSDLAxis(rd *sdl.Renderer, center, width, height float64, ticks []plot.Tick) error {
	if err := rd.SetDrawColor(0, 0, 0, 255); err != nil {
		return err
	}
	x0 := int32(sdlMargin)
	y0 := int32(center)
	if err := rd.DrawLine(x0, y0, x0+int32(width), y0); err != nil {
		return err
	}
	if err := rd.DrawLine(x0, y0-int32(height/2), x0, y0+int32(height/2)); err != nil {
		return err
	}
	for _, tk := range ticks {
		x := x0 + int32(tk.Fraction*width)
		if err := rd.DrawLine(x, y0-5, x, y0+5); err != nil {
			return err
		}
	}
	return nil
}

func drawSDLTrace(rd *sdl.Renderer, center, width, height float64, p plot.Plot, color int) error {
	if len(p.Points) < 2 {
		return nil
	}
	cr, cg, cb := ansiToRGB(color)
	if err := rd.SetDrawColor(cr, cg, cb, 255); err != nil {
		return err
	}
	points := make([]sdl.Point, len(p.Points))
	for i, pt := range p.Points {
		x, y := pt.Screen(sdlMargin, center, width, height)
		points[i] = sdl.Point{X: int32(x), Y: int32(y)}
	}
	return rd.DrawLines(points)
}

func (r *Renderer) resizeSDL() {
	if r.sdl == nil {
		return
	}
	r.sdl.width = 0
	r.sdl.height = 0
}

func (r *Renderer) closeSDL() error {
	if r.sdl == nil {
		return nil
	}
	if r.sdl.renderer != nil {
		r.sdl.renderer.Destroy()
		r.sdl.renderer = nil
	}
	if r.sdl.window != nil {
		r.sdl.window.Destroy()
		r.sdl.window = nil
	}
	if r.sdl.initialized {
		sdl.QuitSubSystem(sdl.INIT_VIDEO)
		r.sdl.initialized = false
	}
	r.sdl = nil
	return nil
}

func (r *Renderer) windowedSDL() bool {
	return r.sdl != nil
}

func SupportsSDL() bool { return true }
