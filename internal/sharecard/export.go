package sharecard

import (
	"bytes"
	"fmt"

	"github.com/jsamuelsen/alaqidah-service/internal/domain"
)

// Labels are the translated strings painted on the card.
type Labels struct {
	// Point is the word used to build "<Point> <no>" when a title is blank.
	Point       string
	Quote       string
	Explanation string
}

// Request describes one card to rasterize.
type Request struct {
	Detail             *domain.QuoteDetail
	IncludeExplanation bool
	Theme              domain.Theme
	Labels             Labels
	Scale              float64
}

// Image is an encoded card.
type Image struct {
	// No is the point the card was drawn for.
	No       int
	PNG      []byte
	Width    int
	Height   int
	Filename string
	// ContentBottom is DrawCard's final cursor in logical pixels.
	ContentBottom float64
}

// Renderer rasterizes cards with a fixed set of fonts. It is safe for
// concurrent use; every call draws on its own surface.
type Renderer struct {
	fonts *Fonts
}

// NewRenderer creates a renderer using fonts.
func NewRenderer(fonts *Fonts) *Renderer {
	return &Renderer{fonts: fonts}
}

// Render draws req on a fresh surface and encodes it as PNG.
func (r *Renderer) Render(req Request) (*Image, error) {
	if req.Detail == nil {
		return nil, domain.NewInputError("export share card", "quote detail missing")
	}

	surface := NewGGSurface(r.fonts)
	defer surface.Close()

	bottom, err := DrawCard(surface, Options{
		QuoteText:          req.Detail.Text,
		IncludeExplanation: req.IncludeExplanation,
		ExplanationText:    req.Detail.Explanation,
		PointLabel:         req.Detail.PointLabel(req.Labels.Point),
		LabelQuote:         req.Labels.Quote,
		LabelExplanation:   req.Labels.Explanation,
		Dark:               req.Theme == domain.ThemeDark,
		Scale:              req.Scale,
	})
	if err != nil {
		return nil, fmt.Errorf("drawing share card: %w", err)
	}

	var buf bytes.Buffer
	if err := surface.EncodePNG(&buf); err != nil {
		return nil, domain.NewEncodingError("png", err)
	}
	if buf.Len() == 0 {
		return nil, domain.NewEncodingError("png", nil)
	}

	w, h := surface.Size()

	return &Image{
		No:            req.Detail.No,
		PNG:           buf.Bytes(),
		Width:         w,
		Height:        h,
		Filename:      Filename(req.Detail),
		ContentBottom: bottom,
	}, nil
}

// Export renders at ExportScale.
func (r *Renderer) Export(detail *domain.QuoteDetail, includeExplanation bool, theme domain.Theme, labels Labels) (*Image, error) {
	return r.Render(Request{
		Detail:             detail,
		IncludeExplanation: includeExplanation,
		Theme:              theme,
		Labels:             labels,
		Scale:              ExportScale,
	})
}

// Preview renders at scale 1.
func (r *Renderer) Preview(detail *domain.QuoteDetail, includeExplanation bool, theme domain.Theme, labels Labels) (*Image, error) {
	return r.Render(Request{
		Detail:             detail,
		IncludeExplanation: includeExplanation,
		Theme:              theme,
		Labels:             labels,
		Scale:              1,
	})
}

// Layout returns the plan Render would use for detail, without drawing.
func (r *Renderer) Layout(detail domain.QuoteDetail, includeExplanation bool) Layout {
	return Plan(NewGGSurface(r.fonts), detail.Text, detail.Explanation, includeExplanation)
}
