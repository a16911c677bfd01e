package sharecard

import (
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// GGSurface implements Surface on a gogpu/gg software context.
//
// Paths go through the context's transform, but gg draws text in device
// space, so text positions and sizes are scaled here.
type GGSurface struct {
	dc    *gg.Context
	fonts *Fonts
	scale float64
	faces map[faceKey]text.Face
}

type faceKey struct {
	font Font
	size float64
}

// NewGGSurface creates a 1×1 surface; DrawCard resizes it.
func NewGGSurface(fonts *Fonts) *GGSurface {
	return &GGSurface{
		dc:    gg.NewContext(1, 1),
		fonts: fonts,
		scale: 1,
		faces: make(map[faceKey]text.Face),
	}
}

func (s *GGSurface) face(font Font, size float64) text.Face {
	key := faceKey{font: font, size: size}
	if f, ok := s.faces[key]; ok {
		return f
	}

	f := s.fonts.Face(font, size)
	s.faces[key] = f

	return f
}

// MeasureString measures at logical size, independent of the current scale.
func (s *GGSurface) MeasureString(font Font, str string) float64 {
	return s.face(font, font.Size()).Advance(str)
}

func (s *GGSurface) Resize(width, height int) error {
	if err := s.dc.Resize(width, height); err != nil {
		return err
	}
	s.dc.Clear()

	return nil
}

// SetScale replaces the transform with a uniform scale.
func (s *GGSurface) SetScale(scale float64) {
	s.scale = scale
	s.dc.Identity()
	if scale != 1 {
		s.dc.Scale(scale, scale)
	}
}

func (s *GGSurface) SetColor(hex string, alpha float64) {
	c := gg.Hex(hex)
	s.dc.SetRGBA(c.R, c.G, c.B, alpha)
}

func (s *GGSurface) SetLineWidth(width float64) {
	s.dc.SetLineWidth(width * s.scale)
}

func (s *GGSurface) MoveTo(x, y float64)              { s.dc.MoveTo(x, y) }
func (s *GGSurface) LineTo(x, y float64)              { s.dc.LineTo(x, y) }
func (s *GGSurface) QuadraticTo(cx, cy, x, y float64) { s.dc.QuadraticTo(cx, cy, x, y) }
func (s *GGSurface) ClosePath()                       { s.dc.ClosePath() }
func (s *GGSurface) Fill() error                      { return s.dc.Fill() }
func (s *GGSurface) Stroke() error                    { return s.dc.Stroke() }

func (s *GGSurface) FillRect(x, y, w, h float64) error {
	s.dc.DrawRectangle(x, y, w, h)
	return s.dc.Fill()
}

func (s *GGSurface) FillText(font Font, str string, x, y float64, align Align, baseline Baseline, maxWidth float64) {
	size := font.Size()
	width := s.MeasureString(font, str)
	if maxWidth > 0 && width > maxWidth {
		size *= maxWidth / width
		width = maxWidth
	}

	face := s.face(font, size*s.scale)
	metrics := face.Metrics()

	if align == AlignCenter {
		x -= width / 2
	}

	dx, dy := s.dc.TransformPoint(x, y)
	switch baseline {
	case BaselineMiddle:
		dy += (metrics.Ascent - metrics.Descent) / 2
	default:
		dy += metrics.Ascent
	}

	s.dc.SetFont(face)
	s.dc.DrawString(str, dx, dy)
}

func (s *GGSurface) EncodePNG(w io.Writer) error {
	return s.dc.EncodePNG(w)
}

// Size returns the device dimensions of the backing buffer.
func (s *GGSurface) Size() (int, int) {
	return s.dc.Width(), s.dc.Height()
}

// Close releases the context's path and state.
func (s *GGSurface) Close() error {
	return s.dc.Close()
}
