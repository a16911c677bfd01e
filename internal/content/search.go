package content

import (
	"slices"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/jsamuelsen/alaqidah-service/internal/domain"
)

// Query selects quotes from a locale view.
type Query struct {
	Locale   string
	Text     string
	Category string
	// Fuzzy ranks quotes by fuzzy similarity of title and text instead of
	// plain substring matching.
	Fuzzy bool
}

// CategoryCount is the number of quotes with content in one category.
type CategoryCount struct {
	Category string
	Count    int
}

// Result is the outcome of a Search.
type Result struct {
	Locale string
	// Query is the normalized (trimmed, lower-cased) search text.
	Query string
	// Category is the effective filter; unknown categories fall back to "all".
	Category string
	Quotes   []domain.QuoteDetail
	// Total counts every quote with displayable text in the locale.
	Total int
	// Categories starts with the "all" bucket followed by the locale's
	// categories in collation order.
	Categories []CategoryCount
}

// View returns the quotes that have displayable text in locale, in point
// order. Text falls back to the default locale; other fields come from the
// locale itself.
func (ix *Index) View(locale string) []domain.QuoteDetail {
	view := make([]domain.QuoteDetail, 0, len(ix.records))
	for _, rec := range ix.records {
		text := ix.TextFor(rec.No, locale)
		if text == "" {
			continue
		}

		d := ix.Detail(rec.No, locale)
		d.Text = text
		view = append(view, d)
	}

	return view
}

// Search filters the locale view by text and category and reports per
// category counts for the unfiltered view.
func (ix *Index) Search(q Query) Result {
	view := ix.View(q.Locale)
	categories := ix.CategoryList(q.Locale)

	res := Result{
		Locale:   q.Locale,
		Query:    strings.ToLower(strings.TrimSpace(q.Text)),
		Category: domain.CategoryAll,
		Total:    len(view),
	}

	if q.Category != "" && slices.Contains(categories, q.Category) {
		res.Category = q.Category
	}

	counts := make(map[string]int, len(categories))
	for _, d := range view {
		if d.Category != "" {
			counts[d.Category]++
		}
	}

	res.Categories = make([]CategoryCount, 0, len(categories)+1)
	res.Categories = append(res.Categories, CategoryCount{Category: domain.CategoryAll, Count: len(view)})
	for _, c := range categories {
		res.Categories = append(res.Categories, CategoryCount{Category: c, Count: counts[c]})
	}

	var matched []domain.QuoteDetail
	switch {
	case res.Query == "":
		matched = view
	case q.Fuzzy:
		matched = fuzzyMatch(view, res.Query)
	default:
		matched = make([]domain.QuoteDetail, 0, len(view))
		for _, d := range view {
			if matchesQuery(d, res.Query) {
				matched = append(matched, d)
			}
		}
	}

	if res.Category == domain.CategoryAll {
		res.Quotes = matched
		return res
	}

	res.Quotes = make([]domain.QuoteDetail, 0, len(matched))
	for _, d := range matched {
		if d.Category == res.Category {
			res.Quotes = append(res.Quotes, d)
		}
	}

	return res
}

// matchesQuery reports whether the lower-cased query occurs in the quote text
// or in its decimal number.
func matchesQuery(d domain.QuoteDetail, query string) bool {
	return strings.Contains(strings.ToLower(d.Text), query) ||
		strings.Contains(strconv.Itoa(d.No), query)
}

// quoteSource adapts a view for fuzzy.FindFrom.
type quoteSource []domain.QuoteDetail

func (s quoteSource) String(i int) string {
	return s[i].Title + " " + s[i].Text
}

func (s quoteSource) Len() int {
	return len(s)
}

// fuzzyMatch ranks the view by fuzzy score. Number matches that the fuzzy
// pass missed are appended in point order.
func fuzzyMatch(view []domain.QuoteDetail, query string) []domain.QuoteDetail {
	matches := fuzzy.FindFrom(query, quoteSource(view))

	out := make([]domain.QuoteDetail, 0, len(matches))
	taken := make(map[int]struct{}, len(matches))
	for _, m := range matches {
		out = append(out, view[m.Index])
		taken[m.Index] = struct{}{}
	}

	for i, d := range view {
		if _, ok := taken[i]; ok {
			continue
		}
		if strings.Contains(strconv.Itoa(d.No), query) {
			out = append(out, d)
		}
	}

	return out
}
