package sharecard

import (
	"fmt"
	"io"
)

// Align is the horizontal anchor of a text run.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Baseline is the vertical anchor of a text run.
type Baseline int

const (
	BaselineTop Baseline = iota
	BaselineMiddle
)

// Surface is the raster target DrawCard paints on. Coordinates passed to it
// are logical; the surface applies the scale set with SetScale.
type Surface interface {
	Measurer

	// Resize reallocates the backing buffer to width×height device pixels.
	Resize(width, height int) error
	SetScale(scale float64)

	SetColor(hex string, alpha float64)
	SetLineWidth(width float64)

	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	ClosePath()
	Fill() error
	Stroke() error
	FillRect(x, y, w, h float64) error

	// FillText draws s anchored at (x, y). Text wider than maxWidth is
	// condensed to fit when maxWidth > 0.
	FillText(font Font, s string, x, y float64, align Align, baseline Baseline, maxWidth float64)

	EncodePNG(w io.Writer) error
}

// Options are the inputs of a single card draw.
type Options struct {
	QuoteText          string
	IncludeExplanation bool
	ExplanationText    string
	PointLabel         string
	LabelQuote         string
	LabelExplanation   string
	Dark               bool
	// Scale multiplies the raster size; zero means 1.
	Scale float64
}

// DrawCard lays out the card, resizes the surface to fit and paints it. It
// returns the vertical cursor after the last line plus padding, in logical
// pixels. The surface keeps the drawn pixels and its new dimensions.
func DrawCard(s Surface, opts Options) (float64, error) {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	layout := Plan(s, opts.QuoteText, opts.ExplanationText, opts.IncludeExplanation)
	palette := PaletteFor(opts.Dark)

	pxW, pxH := layout.PixelSize(scale)
	if err := s.Resize(pxW, pxH); err != nil {
		return 0, fmt.Errorf("resizing surface: %w", err)
	}
	s.SetScale(scale)

	w, h := layout.Width, layout.Height

	if err := paintBackground(s, palette, w, h); err != nil {
		return 0, err
	}
	if err := paintDecorations(s, w, h); err != nil {
		return 0, err
	}

	s.SetColor(palette.Text, 1)
	s.FillText(FontTitle, opts.PointLabel, w/2, Padding, AlignCenter, BaselineTop, MaxLineWidth)

	y := Padding + TitleHeight() + TitleBottomGap

	if err := paintLabel(s, opts.LabelQuote, y); err != nil {
		return 0, err
	}
	y += LabelHeight + LabelGap + ContentOffsetAfterLabel

	s.SetColor(palette.Text, 1)
	for _, line := range layout.QuoteLines {
		s.FillText(FontQuote, line, Padding+QuoteIndent, y, AlignLeft, BaselineTop, QuoteMaxWidth)
		y += quoteLineHeight()
	}

	if len(layout.ExplanationLines) > 0 {
		y += SectionGap
		if err := paintLabel(s, opts.LabelExplanation, y); err != nil {
			return 0, err
		}
		y += LabelHeight + LabelGap + ContentOffsetAfterLabel

		s.SetColor(palette.Text, 1)
		for _, line := range layout.ExplanationLines {
			s.FillText(FontExplanation, line, Padding+QuoteIndent, y, AlignLeft, BaselineTop, QuoteMaxWidth)
			y += explanationLineHeight()
		}
	}

	return y + Padding, nil
}

// cardPath traces the card outline: square on the accent side, rounded on
// the right.
func cardPath(s Surface, w, h float64) {
	outline(s, AccentWidth, 0, w, h, Radius)
}

// outline traces a rectangle from (x0, y0) to (x1, y1) whose right corners
// are rounded by r.
func outline(s Surface, x0, y0, x1, y1, r float64) {
	s.MoveTo(x0, y0)
	s.LineTo(x1-r, y0)
	s.QuadraticTo(x1, y0, x1, y0+r)
	s.LineTo(x1, y1-r)
	s.QuadraticTo(x1, y1, x1-r, y1)
	s.LineTo(x0, y1)
	s.ClosePath()
}

// paintShadow approximates a ShadowBlur gaussian shadow with ShadowSteps
// translucent layers, each grown by an equal share of half the blur
// radius. Where all layers overlap the alpha adds up to about ShadowAlpha,
// and it falls off towards the outer edge.
func paintShadow(s Surface, w, h float64) error {
	s.SetColor("#000000", ShadowAlpha/ShadowSteps)

	for i := ShadowSteps; i >= 1; i-- {
		spread := ShadowBlur / 2 * float64(i) / ShadowSteps
		outline(s, AccentWidth-spread, ShadowOffsetY-spread, w+spread, h+ShadowOffsetY+spread, Radius+spread)
		if err := s.Fill(); err != nil {
			return fmt.Errorf("filling shadow: %w", err)
		}
	}

	return nil
}

func paintBackground(s Surface, palette Palette, w, h float64) error {
	if err := paintShadow(s, w, h); err != nil {
		return err
	}

	s.SetColor(palette.Card, 1)
	cardPath(s, w, h)
	if err := s.Fill(); err != nil {
		return fmt.Errorf("filling card: %w", err)
	}

	s.SetColor(ColorAccent, 1)
	if err := s.FillRect(0, 0, AccentWidth, h); err != nil {
		return fmt.Errorf("filling accent bar: %w", err)
	}

	s.SetColor(palette.Border, 1)
	s.SetLineWidth(BorderWidth)
	cardPath(s, w, h)
	if err := s.Stroke(); err != nil {
		return fmt.Errorf("stroking border: %w", err)
	}

	return nil
}

func paintDecorations(s Surface, w, h float64) error {
	s.SetColor(ColorAccent, QuoteMarkOpacity)
	s.FillText(FontQuoteMark, `"`, Padding+QuoteMarkOffset, Padding+QuoteMarkOffset, AlignLeft, BaselineTop, 0)

	s.SetColor(ColorAccent, BracketOpacity)
	s.SetLineWidth(BracketLineWidth)

	s.MoveTo(w-BracketInset-BracketSize, BracketInset)
	s.LineTo(w-BracketInset, BracketInset)
	s.LineTo(w-BracketInset, BracketInset+BracketSize)
	if err := s.Stroke(); err != nil {
		return fmt.Errorf("stroking top bracket: %w", err)
	}

	s.MoveTo(BracketInsetBottomLeft, h-BracketInset-BracketSize)
	s.LineTo(BracketInsetBottomLeft, h-BracketInset)
	s.LineTo(BracketInsetBottomLeft+BracketSize, h-BracketInset)
	if err := s.Stroke(); err != nil {
		return fmt.Errorf("stroking bottom bracket: %w", err)
	}

	return nil
}

// paintLabel draws a section label: an accent tab followed by bold text
// vertically centred on the tab.
func paintLabel(s Surface, label string, y float64) error {
	contentLeft := float64(Padding + AccentWidth)
	textLeft := contentLeft + LabelLeftBorderWidth + LabelPaddingLeft

	s.SetColor(ColorAccent, 1)
	if err := s.FillRect(contentLeft, y, LabelLeftBorderWidth, LabelHeight); err != nil {
		return fmt.Errorf("filling label tab: %w", err)
	}

	s.FillText(FontLabel, label, textLeft, y+LabelHeight/2.0, AlignLeft, BaselineMiddle, MaxLineWidth-AccentWidth)

	return nil
}
