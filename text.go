package aevum

import (
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// TextAlign controls horizontal text alignment within a TextBlock.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // align text to the left edge (default)
	TextAlignCenter                  // center text horizontally
	TextAlignRight                   // align text to the right edge
)

// Glyph metrics of the built-in 7x13 face. Every glyph has the same advance,
// so layout never needs the GPU.
const (
	glyphAdvance = 7
	glyphHeight  = 13
)

// defaultFace is the monospace face all text renders with.
var defaultFace = text.NewGoXFace(basicfont.Face7x13)

// TextBlock holds text content, formatting, and cached layout state.
type TextBlock struct {
	Content string
	Align   TextAlign
	// WrapWidth is the widest a line may get, in local units with Size
	// applied. Lines break at word boundaries. 0 disables wrapping.
	WrapWidth float64
	// Size is an integer-ish glyph scale; 1 is 7x13 pixels per glyph.
	Size  float64
	Color Color

	lines     []string
	measuredW float64
	measuredH float64
	laidOut   bool
}

// NewTextBlock returns a left-aligned white block at size 1.
func NewTextBlock(content string) *TextBlock {
	return &TextBlock{Content: content, Size: 1, Color: ColorWhite}
}

// SetContent replaces the text and invalidates the layout.
func (tb *TextBlock) SetContent(s string) {
	if tb.Content == s {
		return
	}
	tb.Content = s
	tb.laidOut = false
}

// Measure lays out the block and returns its scaled width and height.
func (tb *TextBlock) Measure() (w, h float64) {
	tb.layout()
	return tb.measuredW, tb.measuredH
}

// Lines returns the laid-out lines.
func (tb *TextBlock) Lines() []string {
	tb.layout()
	return tb.lines
}

func (tb *TextBlock) scale() float64 {
	if tb.Size <= 0 {
		return 1
	}
	return tb.Size
}

func (tb *TextBlock) layout() {
	if tb.laidOut {
		return
	}
	tb.laidOut = true
	tb.lines = tb.lines[:0]

	maxCols := 0
	if tb.WrapWidth > 0 {
		maxCols = max(1, int(tb.WrapWidth/(glyphAdvance*tb.scale())))
	}
	for _, para := range strings.Split(tb.Content, "\n") {
		tb.lines = append(tb.lines, wrapWords(para, maxCols)...)
	}

	widest := 0
	for _, l := range tb.lines {
		widest = max(widest, utf8.RuneCountInString(l))
	}
	sc := tb.scale()
	tb.measuredW = float64(widest) * glyphAdvance * sc
	tb.measuredH = float64(len(tb.lines)) * glyphHeight * sc
}

// wrapWords greedily packs words into lines of at most maxCols runes. Words
// longer than a line get a line of their own. maxCols <= 0 disables wrapping.
func wrapWords(para string, maxCols int) []string {
	if maxCols <= 0 || utf8.RuneCountInString(para) <= maxCols {
		return []string{para}
	}
	var out []string
	var cur strings.Builder
	curLen := 0
	for _, word := range strings.Fields(para) {
		wl := utf8.RuneCountInString(word)
		if curLen > 0 && curLen+1+wl > maxCols {
			out = append(out, cur.String())
			cur.Reset()
			curLen = 0
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(word)
		curLen += wl
	}
	if curLen > 0 || len(out) == 0 {
		out = append(out, cur.String())
	}
	return out
}

// lineOffset returns the horizontal offset of line within the block.
func (tb *TextBlock) lineOffset(line string) float64 {
	lw := float64(utf8.RuneCountInString(line)) * glyphAdvance * tb.scale()
	switch tb.Align {
	case TextAlignCenter:
		return (tb.measuredW - lw) / 2
	case TextAlignRight:
		return tb.measuredW - lw
	}
	return 0
}

// drawText renders the block with the given world-to-screen transform and
// effective alpha.
func drawText(dst *ebiten.Image, tb *TextBlock, m [6]float64, alpha float64) {
	tb.layout()
	sc := tb.scale()
	a := tb.Color.A * alpha
	for i, line := range tb.lines {
		op := &text.DrawOptions{}
		op.GeoM.Scale(sc, sc)
		op.GeoM.Translate(tb.lineOffset(line), float64(i)*glyphHeight*sc)
		op.GeoM.Concat(geoM(m))
		op.ColorScale.Scale(float32(tb.Color.R*a), float32(tb.Color.G*a), float32(tb.Color.B*a), float32(a))
		text.Draw(dst, line, defaultFace, op)
	}
}
