package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteDetail_PointLabel(t *testing.T) {
	assert.Equal(t, "Tawhid", QuoteDetail{No: 3, Title: "Tawhid"}.PointLabel("Point"))
	assert.Equal(t, "Point 3", QuoteDetail{No: 3}.PointLabel("Point"))
	assert.Equal(t, "Poin 12", QuoteDetail{No: 12}.PointLabel("Poin"))
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in   string
		want Theme
	}{
		{"dark", ThemeDark},
		{" DARK ", ThemeDark},
		{"light", ThemeLight},
		{"", ThemeLight},
		{"sepia", ThemeLight},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTheme(tt.in))
		})
	}
}

func TestTheme_Toggle(t *testing.T) {
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
	assert.Equal(t, ThemeDark, ThemeLight.Toggle())
	assert.True(t, ThemeDark.IsValid())
	assert.False(t, Theme("blue").IsValid())
}
