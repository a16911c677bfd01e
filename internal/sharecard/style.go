// Package sharecard lays out and rasterizes the shareable image of a point.
//
// Layout is computed at logical (unscaled) size so that the preview (scale 1)
// and the export (scale 2) wrap to the same lines; the scale factor is
// applied once to the drawing surface.
package sharecard

// Card geometry and typography, in logical pixels.
const (
	CanvasWidth = 900
	MaxHeight   = 1800
	Padding     = 32
	Radius      = 6
	AccentWidth = 5
	BorderWidth = 1

	FontSizeTitle       = 20
	FontSizeQuote       = 16
	FontSizeExplanation = 16
	FontSizeLabel       = 13
	FontSizeQuoteMark   = 36

	TitleLineHeight       = 1.3
	LineHeightQuote       = 1.72
	LineHeightExplanation = 1.72
	TitleBottomGap        = 20

	LabelHeight             = 16
	LabelGap                = 8
	LabelLeftBorderWidth    = 3
	LabelPaddingLeft        = 8
	ContentOffsetAfterLabel = 8
	SectionGap              = 20

	QuoteIndent      = 36
	QuoteMarkOffset  = 2
	QuoteMarkOpacity = 0.4

	BracketSize            = 16
	BracketInset           = 8
	BracketInsetBottomLeft = 24
	BracketLineWidth       = 2
	BracketOpacity         = 0.22

	ShadowAlpha   = 0.06
	ShadowOffsetY = 2
	ShadowBlur    = 8
	// ShadowSteps is the number of widening layers that approximate the blur.
	ShadowSteps = 4

	ExportScale   = 2
	PreviewHeight = 200
)

// MaxLineWidth is the width available between the side paddings.
const MaxLineWidth = CanvasWidth - Padding*2

// QuoteMaxWidth is the wrap width for quote and explanation lines.
const QuoteMaxWidth = MaxLineWidth - QuoteIndent

// ColorAccent is shared by both themes.
const ColorAccent = "#2d8b6f"

// Palette is the theme-dependent set of colors.
type Palette struct {
	Card     string
	Text     string
	TextSoft string
	Border   string
}

var (
	// PaletteDark is used for the dark theme.
	PaletteDark = Palette{Card: "#2c2c2e", Text: "#e8e6e3", TextSoft: "#98989a", Border: "#3a3a3c"}
	// PaletteLight is used for the light theme.
	PaletteLight = Palette{Card: "#fdfcfa", Text: "#2c261f", TextSoft: "#5a5348", Border: "#d4cfc4"}
)

// PaletteFor returns the palette for the dark flag.
func PaletteFor(dark bool) Palette {
	if dark {
		return PaletteDark
	}

	return PaletteLight
}
