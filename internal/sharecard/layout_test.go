package sharecard

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedMeasurer gives every rune the same advance.
type fixedMeasurer struct {
	perRune float64
}

func (m fixedMeasurer) MeasureString(_ Font, s string) float64 {
	return float64(utf8.RuneCountInString(s)) * m.perRune
}

func TestWrap(t *testing.T) {
	m := fixedMeasurer{perRune: 10}

	tests := []struct {
		name     string
		text     string
		maxWidth float64
		want     []string
	}{
		{
			name:     "fits on one line",
			text:     "hello world",
			maxWidth: 200,
			want:     []string{"hello world"},
		},
		{
			name:     "greedy packing",
			text:     "aa bb cc dd",
			maxWidth: 50,
			want:     []string{"aa bb", "cc dd"},
		},
		{
			name:     "exact width fits",
			text:     "abcde fghij",
			maxWidth: 50,
			want:     []string{"abcde", "fghij"},
		},
		{
			name:     "overlong word is placed alone",
			text:     "a supercalifragilistic b",
			maxWidth: 50,
			want:     []string{"a", "supercalifragilistic", "b"},
		},
		{
			name:     "newline runs split paragraphs",
			text:     "first para\n\n\nsecond",
			maxWidth: 500,
			want:     []string{"first para", "second"},
		},
		{
			name:     "whitespace runs collapse",
			text:     "  spaced \t  out   ",
			maxWidth: 500,
			want:     []string{"spaced out"},
		},
		{
			name:     "blank text",
			text:     "   \n  ",
			maxWidth: 500,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(m, tt.text, tt.maxWidth, FontQuote))
		})
	}
}

func TestWrap_NeverExceedsWidthUnlessSingleWord(t *testing.T) {
	m := fixedMeasurer{perRune: 7.5}
	text := strings.Repeat("lorem ipsum dolor sit amet consectetur adipiscing elit ", 20) +
		strings.Repeat("x", 150)

	for _, maxWidth := range []float64{40, 100, 333, QuoteMaxWidth} {
		for _, line := range Wrap(m, text, maxWidth, FontQuote) {
			if m.MeasureString(FontQuote, line) > maxWidth {
				assert.NotContains(t, line, " ", "only a single word may exceed the width")
			}
		}
	}
}

func TestNormalizeLineBreaks(t *testing.T) {
	tests := map[string]string{
		"a<br>b":        "a b",
		"a <br/> b":     "a b",
		"a  <BR />\n b": "a b",
		"a<br><br>b":    "a  b",
		"no breaks":     "no breaks",
		"a\n\nb":        "a\n\nb",
		"<br>lead":      " lead",
	}

	for in, want := range tests {
		assert.Equal(t, want, NormalizeLineBreaks(in), in)
	}
}

func TestComputeLayout(t *testing.T) {
	lines := func(n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = "line"
		}
		return out
	}

	t.Run("quote only", func(t *testing.T) {
		l := ComputeLayout(lines(3), nil)

		// 32+26+20 title, 16+8+8 label, 3×27.52 lines, 32 padding
		assert.InDelta(t, 224.56, l.Height, 1e-9)
		assert.InDelta(t, float64(CanvasWidth), l.Width, 0)
	})

	t.Run("with explanation", func(t *testing.T) {
		l := ComputeLayout(lines(3), lines(2))

		assert.InDelta(t, 224.56+8+16+8+8+2*27.52, l.Height, 1e-9)
	})

	t.Run("empty quote", func(t *testing.T) {
		l := ComputeLayout(nil, nil)
		assert.InDelta(t, 32+26+20+16+8+8+32, l.Height, 1e-9)
	})

	t.Run("clamped to max height", func(t *testing.T) {
		l := ComputeLayout(lines(200), lines(50))
		assert.InDelta(t, float64(MaxHeight), l.Height, 0)
	})
}

func TestLayout_PixelSize(t *testing.T) {
	l := ComputeLayout([]string{"a", "b", "c"}, nil)

	w, h := l.PixelSize(1)
	assert.Equal(t, 900, w)
	assert.Equal(t, 224, h)

	w, h = l.PixelSize(2)
	assert.Equal(t, 1800, w)
	assert.Equal(t, 449, h)
}

func TestPlan(t *testing.T) {
	m := fixedMeasurer{perRune: 10}

	t.Run("explanation excluded when not requested", func(t *testing.T) {
		l := Plan(m, "quote", "some explanation", false)
		assert.Equal(t, []string{"quote"}, l.QuoteLines)
		assert.Empty(t, l.ExplanationLines)
	})

	t.Run("blank explanation is ignored", func(t *testing.T) {
		l := Plan(m, "quote", "  <br/>  ", true)
		assert.Empty(t, l.ExplanationLines)
	})

	t.Run("line break tags become spaces in both fields", func(t *testing.T) {
		l := Plan(m, "one<br>two", "three<br />four", true)
		assert.Equal(t, []string{"one two"}, l.QuoteLines)
		assert.Equal(t, []string{"three four"}, l.ExplanationLines)
	})

	t.Run("explanation newlines still split paragraphs", func(t *testing.T) {
		l := Plan(m, "q", "para one\n\npara two", true)
		assert.Equal(t, []string{"para one", "para two"}, l.ExplanationLines)
	})
}

func TestPlan_ScaleInvariance(t *testing.T) {
	m := fixedMeasurer{perRune: 8.3}
	text := strings.Repeat("word ", 120)

	preview := Plan(m, text, text, true)
	require.NotEmpty(t, preview.QuoteLines)

	s1 := newRecordingSurface(m)
	_, err := DrawCard(s1, Options{QuoteText: text, ExplanationText: text, IncludeExplanation: true, Scale: 1})
	require.NoError(t, err)

	s2 := newRecordingSurface(m)
	_, err = DrawCard(s2, Options{QuoteText: text, ExplanationText: text, IncludeExplanation: true, Scale: 2})
	require.NoError(t, err)

	assert.Equal(t, s1.texts, s2.texts, "same lines at every scale")
	assert.Equal(t, s1.width*2, s2.width)
}
