package render

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/guidoenr/sigviz/internal/analyzer"
	"github.com/guidoenr/sigviz/internal/pipeline"
	"github.com/guidoenr/sigviz/internal/plot"
)

type themeName string
type backend int

const (
	themeClassic themeName = "classic"
	themeAmber   themeName = "amber"
	themeMono    themeName = "mono"
)

const (
	backendASCII backend = iota
	backendSDL
)

const (
	title       = "DSP SIGNAL & FILTER VISUALIZER"
	panelWidth  = 24
	labelMargin = 7
	noColor     = -1
)

var themeNames = []string{
	string(themeClassic),
	string(themeAmber),
	string(themeMono),
}

// ErrRendererQuit is returned by Frame.Present when the window was closed.
var ErrRendererQuit = errors.New("renderer closed")

// ThemeNames returns the supported color themes.
func ThemeNames() []string {
	out := make([]string, len(themeNames))
	copy(out, themeNames)
	sort.Strings(out)
	return out
}

// BackendNames returns the supported output backends.
func BackendNames() []string {
	return []string{"ascii", "sdl"}
}

func parseTheme(name string) themeName {
	switch strings.ToLower(name) {
	case "amber", "fire":
		return themeAmber
	case "mono", "monochrome", "bw", "gray":
		return themeMono
	default:
		return themeClassic
	}
}

// palette is the ANSI 256-color index for each element of a frame.
type palette struct {
	raw      int
	filtered int
	axis     int
	text     int
	info     int
	title    int
}

func (t themeName) palette() palette {
	switch t {
	case themeAmber:
		return palette{raw: 214, filtered: 208, axis: 94, text: 223, info: 220, title: 230}
	case themeMono:
		return palette{raw: 252, filtered: 252, axis: 244, text: 252, info: 252, title: 255}
	default:
		// blue raw trace, red filtered trace, green info panel
		return palette{raw: 33, filtered: 196, axis: 245, text: 252, info: 157, title: 255}
	}
}

// Renderer turns pipeline results into frames.
type Renderer struct {
	width         int
	height        int
	glyphs        glyphSet
	glyphName     string
	theme         themeName
	useANSI       bool
	mode          backend
	sdl           *sdlState
	statusBuilder strings.Builder
}

// Frame contains the rendered ASCII lines and status text. Present is set
// by windowed backends and draws the frame itself.
type Frame struct {
	Lines   []string
	Status  string
	Present func(status string) error
}

var (
	resetANSI       = "\x1b[0m"
	precomputedANSI [256]string
)

func init() {
	for i := range precomputedANSI {
		precomputedANSI[i] = "\x1b[38;5;" + strconv.Itoa(i) + "m"
	}
}

// New creates a Renderer. For the sdl backend width and height are pixels,
// otherwise terminal cells.
func New(width, height int, glyphs, theme, backendName string, useANSI bool) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid dimensions: width=%d height=%d", width, height)
	}

	r := &Renderer{
		width:   width,
		height:  height,
		useANSI: useANSI,
	}
	r.Configure(glyphs, theme)

	switch strings.ToLower(backendName) {
	case "", "ascii", "term", "terminal":
		r.mode = backendASCII
	case "sdl", "window":
		if err := r.initSDL(width, height); err != nil {
			return nil, fmt.Errorf("sdl backend: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown backend %q", backendName)
	}
	return r, nil
}

// Configure updates glyphs and theme.
func (r *Renderer) Configure(glyphs, theme string) {
	r.glyphs = lookupGlyphs(glyphs)
	r.glyphName = glyphName(glyphs)
	r.theme = parseTheme(theme)
}

// Resize updates the frame dimensions.
func (r *Renderer) Resize(width, height int) {
	changed := false
	if width > 0 && r.width != width {
		r.width = width
		changed = true
	}
	if height > 0 && r.height != height {
		r.height = height
		changed = true
	}
	if changed && r.mode == backendSDL {
		r.resizeSDL()
	}
}

func (r *Renderer) GlyphName() string { return r.glyphName }
func (r *Renderer) ThemeName() string { return string(r.theme) }

// Windowed reports whether frames are presented in a native window.
func (r *Renderer) Windowed() bool { return r.mode == backendSDL && r.windowedSDL() }

// Close releases backend resources.
func (r *Renderer) Close() error {
	if r.mode == backendSDL {
		return r.closeSDL()
	}
	return nil
}

// Render paints the raw and filtered traces of res.
func (r *Renderer) Render(res pipeline.Result) Frame {
	if r.width <= 0 || r.height <= 0 {
		return Frame{}
	}
	if r.mode == backendSDL {
		return r.renderSDL(res)
	}

	pal := r.theme.palette()
	g := newGrid(r.width, r.height)
	g.text(max(0, (r.width-len(title))/2), 0, title, pal.title)

	plotWidth := r.width
	if r.width >= panelWidth*2 {
		plotWidth = r.width - panelWidth
		r.drawPanel(g, plotWidth+1, res, pal)
	}

	section := (r.height - 1) / 2
	filterLabel := fmt.Sprintf("Filtered Signal (%s)", res.Config.Filter.Kind)
	r.drawTrace(g, 1, section, plotWidth, "Original Signal", res.RawPlot, res.Ticks, pal.raw, pal)
	r.drawTrace(g, 1+section, section, plotWidth, filterLabel, res.FilteredPlot, res.Ticks, pal.filtered, pal)

	return Frame{
		Lines:  g.lines(r.useANSI),
		Status: r.buildStatus(res),
	}
}

// drawTrace lays out one plot in rows [top, top+rows): a title row, the
// plot area and a row of tick labels.
func (r *Renderer) drawTrace(g *grid, top, rows, width int, label string, p plot.Plot, ticks []plot.Tick, color int, pal palette) {
	areaRows := rows - 2
	cols := width - labelMargin - 1
	if areaRows < 1 || cols < 2 {
		return
	}
	g.text(1, top, label, color)
	g.text(1+utf8.RuneCountInString(label)+1, top, "(max "+formatFloat(p.MaxAmp, 2)+")", pal.text)

	areaTop := top + 1
	half := float64(areaRows-1) / 2
	center := areaTop + int(math.Round(half))
	x0 := float64(labelMargin)

	for row := areaTop; row < areaTop+areaRows; row++ {
		g.set(labelMargin-1, row, r.glyphs.axisV, pal.axis)
	}
	for col := labelMargin; col < labelMargin+cols; col++ {
		g.set(col, center, r.glyphs.axisH, pal.axis)
	}
	g.set(labelMargin-1, center, r.glyphs.cross, pal.axis)

	// the top row stands for +1 in normalized space
	peak := p.MaxAmp / plot.Headroom
	g.text(0, areaTop, padLeft(formatFloat(peak, 2), labelMargin-1), pal.text)
	g.text(0, center, padLeft("0", labelMargin-1), pal.text)
	if areaRows > 1 {
		g.text(0, areaTop+areaRows-1, padLeft(formatFloat(-peak, 2), labelMargin-1), pal.text)
	}

	tickRow := areaTop + areaRows
	for _, tk := range ticks {
		col := labelMargin + min(cols-1, int(tk.Fraction*float64(cols)))
		g.set(col, center, r.glyphs.cross, pal.axis)
		lbl := strconv.FormatFloat(tk.Seconds, 'f', 2, 64)
		g.text(max(0, min(col-len(lbl)/2, labelMargin+cols-len(lbl))), tickRow, lbl, pal.text)
	}

	prevCol, prevRow := -1, -1
	for _, pt := range p.Points {
		sx, sy := pt.Screen(x0, float64(areaTop)+half, float64(cols), 2*half)
		col := min(labelMargin+cols-1, int(sx))
		row := clampInt(int(math.Round(sy)), areaTop, areaTop+areaRows-1)
		if prevRow >= 0 && (col == prevCol || col == prevCol+1) {
			lo, hi := prevRow, row
			if lo > hi {
				lo, hi = hi, lo
			}
			for y := lo + 1; y < hi; y++ {
				g.set(col, y, r.glyphs.fill, color)
			}
		}
		g.set(col, row, r.glyphs.point, color)
		prevCol, prevRow = col, row
	}
}

var keyHelp = []string{
	"1-4  signal type",
	"m/l  filter type",
	"f/F  frequency -/+",
	"w/W  window -/+",
	"c/C  cutoff -/+",
	"n/N  noise -/+",
	"r    reset all",
	"q    quit",
}

func (r *Renderer) drawPanel(g *grid, x int, res pipeline.Result, pal palette) {
	limit := r.width - x
	y := 2
	g.text(x, y, truncate("DSP CONTROLS", limit), pal.title)
	y += 2
	for _, line := range res.Info {
		g.text(x, y, truncate(line, limit), pal.info)
		y++
	}
	y++
	for _, line := range keyHelp {
		if y >= r.height {
			return
		}
		g.text(x, y, truncate(line, limit), pal.text)
		y++
	}
}

func (r *Renderer) buildStatus(res pipeline.Result) string {
	builder := &r.statusBuilder
	builder.Reset()
	builder.Grow(128)
	builder.WriteString(strings.ToUpper(string(res.Config.Signal.Waveform)))
	builder.WriteString(" -> ")
	builder.WriteString(strings.ToUpper(string(res.Config.Filter.Kind)))
	builder.WriteString(" | raw rms ")
	appendFloat(builder, res.RawStats.RMS, 2)
	builder.WriteString(" peak ")
	appendFloat(builder, res.RawStats.Peak, 2)
	builder.WriteString(" | filt rms ")
	appendFloat(builder, res.FilteredStats.RMS, 2)
	builder.WriteString(" peak ")
	appendFloat(builder, res.FilteredStats.Peak, 2)
	builder.WriteString(" | smooth ")
	appendFloat(builder, analyzer.Reduction(res.RawStats, res.FilteredStats)*100, 0)
	builder.WriteString("% | theme=")
	builder.WriteString(string(r.theme))
	builder.WriteString(" glyphs=")
	builder.WriteString(r.glyphName)
	return builder.String()
}

type cell struct {
	ch    rune
	color int
}

type grid struct {
	width  int
	height int
	cells  []cell
}

func newGrid(width, height int) *grid {
	g := &grid{width: width, height: height, cells: make([]cell, width*height)}
	for i := range g.cells {
		g.cells[i] = cell{ch: ' ', color: noColor}
	}
	return g
}

func (g *grid) set(x, y int, ch rune, color int) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return
	}
	g.cells[y*g.width+x] = cell{ch: ch, color: color}
}

func (g *grid) text(x, y int, s string, color int) {
	for _, ch := range s {
		g.set(x, y, ch, color)
		x++
	}
}

func (g *grid) lines(useANSI bool) []string {
	out := make([]string, g.height)
	for y := 0; y < g.height; y++ {
		var builder strings.Builder
		builder.Grow(g.width * 8)
		lastColor := noColor
		for _, c := range g.cells[y*g.width : (y+1)*g.width] {
			if useANSI && c.color != lastColor {
				if c.color == noColor {
					builder.WriteString(resetANSI)
				} else {
					builder.WriteString(colorCode(c.color))
				}
				lastColor = c.color
			}
			builder.WriteRune(c.ch)
		}
		if useANSI {
			builder.WriteString(resetANSI)
		}
		out[y] = builder.String()
	}
	return out
}

func colorCode(index int) string {
	if index < 0 {
		index = 0
	} else if index >= len(precomputedANSI) {
		index = len(precomputedANSI) - 1
	}
	return precomputedANSI[index]
}

// ansiToRGB approximates an xterm 256-color index as 8-bit RGB.
func ansiToRGB(index int) (uint8, uint8, uint8) {
	switch {
	case index >= 232 && index <= 255:
		v := uint8(8 + (index-232)*10)
		return v, v, v
	case index >= 16 && index <= 231:
		i := index - 16
		level := func(n int) uint8 {
			if n == 0 {
				return 0
			}
			return uint8(55 + n*40)
		}
		return level(i / 36), level((i / 6) % 6), level(i % 6)
	default:
		return 255, 255, 255
	}
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	return string([]rune(s)[:width])
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func formatFloat(v float64, precision int) string {
	return strconv.FormatFloat(v, 'f', precision, 64)
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func appendFloat(builder *strings.Builder, value float64, precision int) {
	var buf [32]byte
	b := strconv.AppendFloat(buf[:0], value, 'f', precision, 64)
	builder.Write(b)
}
