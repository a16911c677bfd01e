package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/alaqidah-service/internal/content"
	"github.com/jsamuelsen/alaqidah-service/internal/domain"
	"github.com/jsamuelsen/alaqidah-service/internal/sharecard"
)

func TestFontCoverage_ReportsUncoveredLocales(t *testing.T) {
	fonts, err := sharecard.LoadFonts("")
	require.NoError(t, err)

	ix := content.Build([]domain.LocaleData{
		{Locale: "en", Entries: []domain.QuoteEntry{
			{No: 1, Title: "Oneness", Text: "Allah is One", Explanation: "Çà et là"},
		}},
		{Locale: "ar", Entries: []domain.QuoteEntry{
			{No: 1, Title: "توحيد", Text: "الله واحد"},
		}},
	})

	got := FontCoverage(ix, fonts)

	require.Len(t, got, 1)
	assert.Equal(t, "ar", got[0].Locale)
	assert.Contains(t, got[0].Missing, 'ت')
	assert.Contains(t, got[0].Missing, 'ل')
	assert.NotContains(t, got[0].Missing, ' ')

	seen := make(map[rune]bool)
	for _, r := range got[0].Missing {
		assert.False(t, seen[r], "rune %q reported twice", r)
		seen[r] = true
	}
}

func TestFontCoverage_EmbeddedContent(t *testing.T) {
	fonts, err := sharecard.LoadFonts("")
	require.NoError(t, err)

	sets, err := content.LoadEmbedded()
	require.NoError(t, err)

	locales := make([]string, 0)
	for _, c := range FontCoverage(content.Build(sets), fonts) {
		locales = append(locales, c.Locale)
	}

	assert.Equal(t, []string{"ar"}, locales)
}
