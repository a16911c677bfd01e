package sharecard

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type textCall struct {
	font     Font
	text     string
	x, y     float64
	align    Align
	baseline Baseline
	color    string
	alpha    float64
}

// recordingSurface records draw calls instead of rasterizing.
type recordingSurface struct {
	Measurer

	width, height int
	scale         float64
	color         string
	alpha         float64
	lineWidth     float64
	texts         []string
	calls         []textCall
	rects         [][4]float64
	fills         int
	fillAlphas    []float64
	moves         [][2]float64
	strokes       int
	failStroke    bool
}

func newRecordingSurface(m Measurer) *recordingSurface {
	return &recordingSurface{Measurer: m}
}

func (s *recordingSurface) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return errors.New("invalid size")
	}
	s.width, s.height = w, h
	return nil
}

func (s *recordingSurface) SetScale(scale float64)         { s.scale = scale }
func (s *recordingSurface) SetColor(hex string, a float64) { s.color, s.alpha = hex, a }
func (s *recordingSurface) SetLineWidth(w float64)         { s.lineWidth = w }
func (s *recordingSurface) LineTo(_, _ float64)            {}
func (s *recordingSurface) QuadraticTo(_, _, _, _ float64) {}
func (s *recordingSurface) ClosePath()                     {}
func (s *recordingSurface) EncodePNG(io.Writer) error      { return nil }

func (s *recordingSurface) MoveTo(x, y float64) {
	s.moves = append(s.moves, [2]float64{x, y})
}

func (s *recordingSurface) Fill() error {
	s.fills++
	s.fillAlphas = append(s.fillAlphas, s.alpha)
	return nil
}

func (s *recordingSurface) Stroke() error {
	if s.failStroke {
		return errors.New("stroke failed")
	}
	s.strokes++
	return nil
}

func (s *recordingSurface) FillRect(x, y, w, h float64) error {
	s.rects = append(s.rects, [4]float64{x, y, w, h})
	return nil
}

func (s *recordingSurface) FillText(font Font, str string, x, y float64, align Align, baseline Baseline, _ float64) {
	s.texts = append(s.texts, str)
	s.calls = append(s.calls, textCall{
		font: font, text: str, x: x, y: y, align: align, baseline: baseline,
		color: s.color, alpha: s.alpha,
	})
}

func (s *recordingSurface) callsFor(font Font) []textCall {
	var out []textCall
	for _, c := range s.calls {
		if c.font == font {
			out = append(out, c)
		}
	}
	return out
}

func TestDrawCard_QuoteOnly(t *testing.T) {
	s := newRecordingSurface(fixedMeasurer{perRune: 10})

	bottom, err := DrawCard(s, Options{
		QuoteText:  "There is nothing like Him.",
		PointLabel: "Nothing Is Like Him",
		LabelQuote: "POINT",
	})
	require.NoError(t, err)

	assert.Equal(t, 900, s.width)
	assert.Equal(t, int(ComputeLayout([]string{"x"}, nil).Height), s.height)
	assert.InDelta(t, 1.0, s.scale, 0)

	title := s.callsFor(FontTitle)
	require.Len(t, title, 1)
	assert.Equal(t, "Nothing Is Like Him", title[0].text)
	assert.InDelta(t, 450.0, title[0].x, 0)
	assert.InDelta(t, 32.0, title[0].y, 0)
	assert.Equal(t, AlignCenter, title[0].align)
	assert.Equal(t, PaletteLight.Text, title[0].color)

	mark := s.callsFor(FontQuoteMark)
	require.Len(t, mark, 1)
	assert.Equal(t, `"`, mark[0].text)
	assert.InDelta(t, 34.0, mark[0].x, 0)
	assert.InDelta(t, QuoteMarkOpacity, mark[0].alpha, 0)

	labels := s.callsFor(FontLabel)
	require.Len(t, labels, 1)
	assert.Equal(t, "POINT", labels[0].text)
	assert.InDelta(t, 48.0, labels[0].x, 0)
	assert.InDelta(t, 78.0+8, labels[0].y, 0)
	assert.Equal(t, BaselineMiddle, labels[0].baseline)

	quote := s.callsFor(FontQuote)
	require.Len(t, quote, 1)
	assert.InDelta(t, 68.0, quote[0].x, 0)
	assert.InDelta(t, 110.0, quote[0].y, 0)

	assert.Empty(t, s.callsFor(FontExplanation))
	assert.InDelta(t, 110+27.52+32, bottom, 1e-9)

	// accent bar and quote label tab
	require.Len(t, s.rects, 2)
	assert.Equal(t, [4]float64{0, 0, 5, s.rects[0][3]}, s.rects[0])
	assert.Equal(t, [4]float64{37, 78, 3, 16}, s.rects[1])

	// four shadow layers + card; border + two brackets
	assert.Equal(t, ShadowSteps+1, s.fills)
	assert.Equal(t, 3, s.strokes)
}

func TestDrawCard_ShadowIsLayered(t *testing.T) {
	s := newRecordingSurface(fixedMeasurer{perRune: 10})

	_, err := DrawCard(s, Options{QuoteText: "Quote", PointLabel: "T", LabelQuote: "POINT"})
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(s.fillAlphas), ShadowSteps+1)

	var total float64
	for _, a := range s.fillAlphas[:ShadowSteps] {
		assert.InDelta(t, 0.015, a, 1e-12)
		total += a
	}
	assert.InDelta(t, ShadowAlpha, total, 1e-12)
	assert.InDelta(t, 1.0, s.fillAlphas[ShadowSteps], 0, "card body is opaque")

	// widest layer first, each grown by up to half the blur radius
	assert.Equal(t, [2]float64{AccentWidth - 4, ShadowOffsetY - 4}, s.moves[0])
	assert.Equal(t, [2]float64{AccentWidth - 1, ShadowOffsetY - 1}, s.moves[ShadowSteps-1])
	assert.Equal(t, [2]float64{AccentWidth, 0}, s.moves[ShadowSteps])
}

func TestDrawCard_WithExplanation(t *testing.T) {
	s := newRecordingSurface(fixedMeasurer{perRune: 10})

	bottom, err := DrawCard(s, Options{
		QuoteText:          "Quote",
		IncludeExplanation: true,
		ExplanationText:    "First<br>second\n\nthird",
		PointLabel:         "T",
		LabelQuote:         "POINT",
		LabelExplanation:   "EXPLANATION",
		Dark:               true,
	})
	require.NoError(t, err)

	expl := s.callsFor(FontExplanation)
	require.Len(t, expl, 2)
	assert.Equal(t, "First second", expl[0].text)
	assert.Equal(t, "third", expl[1].text)
	assert.Equal(t, PaletteDark.Text, expl[0].color)

	// quote line at 110, then +27.52, +20 gap → label at 157.52
	labels := s.callsFor(FontLabel)
	require.Len(t, labels, 2)
	assert.Equal(t, "EXPLANATION", labels[1].text)
	assert.InDelta(t, 157.52+8, labels[1].y, 1e-9)

	assert.InDelta(t, 157.52+32, expl[0].y, 1e-9)
	assert.InDelta(t, 157.52+32+2*27.52+32, bottom, 1e-9)
}

func TestDrawCard_Scale(t *testing.T) {
	s := newRecordingSurface(fixedMeasurer{perRune: 10})

	_, err := DrawCard(s, Options{QuoteText: strings.Repeat("word ", 40), Scale: 2})
	require.NoError(t, err)

	layout := Plan(fixedMeasurer{perRune: 10}, strings.Repeat("word ", 40), "", false)
	w, h := layout.PixelSize(2)
	assert.Equal(t, w, s.width)
	assert.Equal(t, h, s.height)
	assert.InDelta(t, 2.0, s.scale, 0)
}

func TestDrawCard_PropagatesSurfaceErrors(t *testing.T) {
	s := newRecordingSurface(fixedMeasurer{perRune: 10})
	s.failStroke = true

	_, err := DrawCard(s, Options{QuoteText: "q"})
	assert.ErrorContains(t, err, "stroking border")
}
