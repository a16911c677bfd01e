package app

import (
	"slices"

	"github.com/jsamuelsen/alaqidah-service/internal/content"
	"github.com/jsamuelsen/alaqidah-service/internal/sharecard"
)

// LocaleCoverage lists the runes of a locale's content that no card font
// can draw.
type LocaleCoverage struct {
	Locale  string
	Missing []rune
}

// FontCoverage checks every locale of ix against fonts and returns the
// locales with undrawable runes, in index locale order.
func FontCoverage(ix *content.Index, fonts *sharecard.Fonts) []LocaleCoverage {
	var out []LocaleCoverage

	for _, locale := range ix.Locales() {
		var missing []rune
		add := func(style sharecard.Font, s string) {
			for _, r := range fonts.Missing(style, s) {
				if !slices.Contains(missing, r) {
					missing = append(missing, r)
				}
			}
		}

		for _, d := range ix.View(locale) {
			add(sharecard.FontTitle, d.Title)
			add(sharecard.FontQuote, d.Text)
			add(sharecard.FontExplanation, d.Explanation)
		}

		if len(missing) > 0 {
			out = append(out, LocaleCoverage{Locale: locale, Missing: missing})
		}
	}

	return out
}
