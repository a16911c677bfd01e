// Package content builds the in-memory quote index from per-locale data sets.
//
// The index is constructed once and is read-only afterwards, so it can be
// shared across goroutines without locking. Lookups for an unknown locale or
// point number return empty values rather than errors.
package content

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jsamuelsen/alaqidah-service/internal/domain"
)

// localeTables holds the four per-locale lookup tables.
type localeTables struct {
	title       map[int]string
	text        map[int]string
	explanation map[int]string
	category    map[int]string
}

// Index is the merged, immutable view over all locale data sets.
type Index struct {
	defaultLocale string
	locales       []string
	tables        map[string]*localeTables
	records       []domain.QuoteRecord
	categories    map[string][]string
}

// Option configures Build.
type Option func(*Index)

// WithDefaultLocale overrides the locale used for text fallback.
func WithDefaultLocale(locale string) Option {
	return func(ix *Index) {
		if locale != "" {
			ix.defaultLocale = locale
		}
	}
}

// Build merges the locale data sets into an Index. A duplicate point number
// within one locale overwrites the earlier entry.
func Build(sets []domain.LocaleData, opts ...Option) *Index {
	ix := &Index{
		defaultLocale: domain.DefaultLocale,
		tables:        make(map[string]*localeTables, len(sets)),
		categories:    make(map[string][]string, len(sets)),
	}
	for _, opt := range opts {
		opt(ix)
	}

	seen := make(map[int]struct{})

	for _, set := range sets {
		tbl, ok := ix.tables[set.Locale]
		if !ok {
			tbl = &localeTables{
				title:       make(map[int]string, len(set.Entries)),
				text:        make(map[int]string, len(set.Entries)),
				explanation: make(map[int]string, len(set.Entries)),
				category:    make(map[int]string),
			}
			ix.tables[set.Locale] = tbl
			ix.locales = append(ix.locales, set.Locale)
		}

		for _, e := range set.Entries {
			tbl.title[e.No] = e.Title
			tbl.text[e.No] = e.Text
			tbl.explanation[e.No] = e.Explanation
			if e.Category != "" {
				tbl.category[e.No] = e.Category
			}
			seen[e.No] = struct{}{}
		}
	}

	numbers := make([]int, 0, len(seen))
	for no := range seen {
		numbers = append(numbers, no)
	}
	slices.Sort(numbers)

	ix.records = make([]domain.QuoteRecord, 0, len(numbers))
	for _, no := range numbers {
		rec := domain.QuoteRecord{No: no, TextByLocale: make(map[string]string)}
		for _, locale := range ix.locales {
			if text, ok := ix.tables[locale].text[no]; ok {
				rec.TextByLocale[locale] = text
			}
		}
		ix.records = append(ix.records, rec)
	}

	for _, locale := range ix.locales {
		ix.categories[locale] = sortedCategories(locale, ix.tables[locale].category)
	}

	return ix
}

// sortedCategories returns the unique category labels in the locale's
// collation order.
func sortedCategories(locale string, byNo map[int]string) []string {
	unique := make(map[string]struct{}, len(byNo))
	labels := make([]string, 0, len(byNo))
	for _, c := range byNo {
		if _, dup := unique[c]; dup {
			continue
		}
		unique[c] = struct{}{}
		labels = append(labels, c)
	}

	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Und
	}
	collate.New(tag).SortStrings(labels)

	return labels
}

// DefaultLocale returns the fallback locale for text resolution.
func (ix *Index) DefaultLocale() string {
	return ix.defaultLocale
}

// Locales returns the locale codes in input order.
func (ix *Index) Locales() []string {
	return slices.Clone(ix.locales)
}

// HasLocale reports whether data was supplied for locale.
func (ix *Index) HasLocale(locale string) bool {
	_, ok := ix.tables[locale]
	return ok
}

// Records returns the merged records in ascending point order.
func (ix *Index) Records() []domain.QuoteRecord {
	return slices.Clone(ix.records)
}

// Len returns the number of distinct points across all locales.
func (ix *Index) Len() int {
	return len(ix.records)
}

// Detail returns the locale's fields for a point. Missing data yields empty
// strings.
func (ix *Index) Detail(no int, locale string) domain.QuoteDetail {
	d := domain.QuoteDetail{No: no}

	tbl, ok := ix.tables[locale]
	if !ok {
		return d
	}

	d.Title = tbl.title[no]
	d.Text = tbl.text[no]
	d.Explanation = tbl.explanation[no]
	d.Category = tbl.category[no]

	return d
}

// CategoryFor returns the point's category in locale, or "".
func (ix *Index) CategoryFor(no int, locale string) string {
	tbl, ok := ix.tables[locale]
	if !ok {
		return ""
	}

	return tbl.category[no]
}

// CategoryList returns the locale's sorted, unique, non-empty categories.
func (ix *Index) CategoryList(locale string) []string {
	list, ok := ix.categories[locale]
	if !ok {
		return []string{}
	}

	return slices.Clone(list)
}

// TextFor resolves a point's display text: the locale's own text, else the
// default locale's, else "".
func (ix *Index) TextFor(no int, locale string) string {
	if tbl, ok := ix.tables[locale]; ok {
		if text, ok := tbl.text[no]; ok {
			return text
		}
	}

	if tbl, ok := ix.tables[ix.defaultLocale]; ok {
		return tbl.text[no]
	}

	return ""
}
