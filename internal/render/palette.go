package render

import "strings"

// glyphSet holds the characters used to draw traces and axes.
type glyphSet struct {
	point rune
	fill  rune
	axisH rune
	axisV rune
	cross rune
}

var (
	dotsGlyphs   = glyphSet{point: '•', fill: '·', axisH: '─', axisV: '│', cross: '┼'}
	blocksGlyphs = glyphSet{point: '█', fill: '▒', axisH: '─', axisV: '│', cross: '┼'}
	asciiGlyphs  = glyphSet{point: '*', fill: '.', axisH: '-', axisV: '|', cross: '+'}
)

// lookupGlyphs returns the glyph set for name, falling back to dots.
func lookupGlyphs(name string) glyphSet {
	switch strings.ToLower(name) {
	case "blocks", "box":
		return blocksGlyphs
	case "ascii", "plain":
		return asciiGlyphs
	default:
		return dotsGlyphs
	}
}

// GlyphNames returns all glyph set identifiers.
func GlyphNames() []string {
	return []string{"dots", "blocks", "ascii"}
}

func glyphName(name string) string {
	switch strings.ToLower(name) {
	case "blocks", "box":
		return "blocks"
	case "ascii", "plain":
		return "ascii"
	default:
		return "dots"
	}
}
