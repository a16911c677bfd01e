package domain

import (
	"strconv"
	"strings"
)

// DefaultLocale is the locale whose text is shown when the active locale has none.
const DefaultLocale = "en"

// CategoryAll is the pseudo-category that disables category filtering.
const CategoryAll = "all"

// QuoteEntry is one numbered point as it appears in a single locale's data file.
type QuoteEntry struct {
	No          int    `json:"no"`
	Title       string `json:"title"`
	Text        string `json:"text"`
	Explanation string `json:"explanation"`
	Category    string `json:"category"`
}

// QuoteRecord is a point merged across locales. TextByLocale only has keys
// for locales that carry an entry for No.
type QuoteRecord struct {
	No           int
	TextByLocale map[string]string
}

// QuoteDetail is the locale-specific view of a point. Absent data yields
// empty strings, never an error.
type QuoteDetail struct {
	No          int
	Title       string
	Text        string
	Explanation string
	Category    string
}

// PointLabel returns the title, or "<fallback> <no>" when the title is blank.
func (d QuoteDetail) PointLabel(fallback string) string {
	if d.Title != "" {
		return d.Title
	}

	return fallback + " " + strconv.Itoa(d.No)
}

// LocaleData is the raw input for one locale.
type LocaleData struct {
	Locale  string
	Entries []QuoteEntry
}

// Theme selects the share-card palette.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme returns the theme for s, falling back to ThemeLight.
func ParseTheme(s string) Theme {
	if Theme(strings.ToLower(strings.TrimSpace(s))) == ThemeDark {
		return ThemeDark
	}

	return ThemeLight
}

// IsValid reports whether t is one of the known themes.
func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}

	return ThemeDark
}
