package sharecard

import (
	"math"
	"regexp"
	"strings"
)

// Font identifies one of the card's text styles.
type Font int

const (
	FontTitle Font = iota
	FontLabel
	FontQuote
	FontExplanation
	FontQuoteMark
)

// Size returns the logical font size for f.
func (f Font) Size() float64 {
	switch f {
	case FontTitle:
		return FontSizeTitle
	case FontLabel:
		return FontSizeLabel
	case FontExplanation:
		return FontSizeExplanation
	case FontQuoteMark:
		return FontSizeQuoteMark
	default:
		return FontSizeQuote
	}
}

// Measurer reports the advance width of s in logical pixels.
type Measurer interface {
	MeasureString(font Font, s string) float64
}

var (
	paragraphBreak = regexp.MustCompile(`\n+`)
	lineBreakTag   = regexp.MustCompile(`(?i)\s*<br\s*/?>\s*`)
)

// NormalizeLineBreaks replaces HTML-style <br> tags, and the whitespace
// around them, with a single space.
func NormalizeLineBreaks(s string) string {
	return lineBreakTag.ReplaceAllString(s, " ")
}

// Wrap splits text into paragraphs on newline runs and greedily packs each
// paragraph's words into lines no wider than maxWidth. A word that alone
// exceeds maxWidth is placed on its own line unsplit.
func Wrap(m Measurer, text string, maxWidth float64, font Font) []string {
	var lines []string

	for _, paragraph := range paragraphBreak.Split(text, -1) {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}

		current := ""
		for _, word := range strings.Fields(paragraph) {
			next := word
			if current != "" {
				next = current + " " + word
			}

			if m.MeasureString(font, next) <= maxWidth {
				current = next
				continue
			}

			if current != "" {
				lines = append(lines, current)
			}
			current = word
		}

		if current != "" {
			lines = append(lines, current)
		}
	}

	return lines
}

// Layout is the vertical plan of a card at logical size.
type Layout struct {
	Width            float64
	Height           float64
	QuoteLines       []string
	ExplanationLines []string
}

// PixelSize returns the raster dimensions at scale. Fractional sizes are
// truncated.
func (l Layout) PixelSize(scale float64) (int, int) {
	return int(l.Width * scale), int(l.Height * scale)
}

// TitleHeight is the height reserved for the single title line.
func TitleHeight() float64 {
	return FontSizeTitle * TitleLineHeight
}

func quoteLineHeight() float64 {
	return FontSizeQuote * LineHeightQuote
}

func explanationLineHeight() float64 {
	return FontSizeExplanation * LineHeightExplanation
}

// ComputeLayout sums the fixed vertical blocks for the given line counts and
// clamps the result to MaxHeight. The width is always CanvasWidth.
func ComputeLayout(quoteLines, explanationLines []string) Layout {
	quoteLabelBlock := float64(LabelHeight + LabelGap)

	titleBlock := Padding + TitleHeight() + TitleBottomGap
	quoteBlock := quoteLabelBlock + ContentOffsetAfterLabel +
		float64(len(quoteLines))*quoteLineHeight()

	var explanationBlock float64
	if len(explanationLines) > 0 {
		explanationLabelBlock := float64(LabelGap + LabelHeight + LabelGap)
		explanationBlock = explanationLabelBlock + ContentOffsetAfterLabel +
			float64(len(explanationLines))*explanationLineHeight()
	}

	return Layout{
		Width:            CanvasWidth,
		Height:           math.Min(titleBlock+quoteBlock+explanationBlock+Padding, MaxHeight),
		QuoteLines:       quoteLines,
		ExplanationLines: explanationLines,
	}
}

// Plan normalizes and wraps the card text and computes its layout.
// Explanation lines are produced only when includeExplanation is set and
// the explanation is not blank.
func Plan(m Measurer, quoteText, explanationText string, includeExplanation bool) Layout {
	quote := NormalizeLineBreaks(quoteText)
	explanation := strings.TrimSpace(NormalizeLineBreaks(explanationText))

	quoteLines := Wrap(m, quote, QuoteMaxWidth, FontQuote)

	var explanationLines []string
	if includeExplanation && explanation != "" {
		explanationLines = Wrap(m, explanation, QuoteMaxWidth, FontExplanation)
	}

	return ComputeLayout(quoteLines, explanationLines)
}
