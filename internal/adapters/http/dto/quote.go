package dto

import (
	"github.com/jsamuelsen/alaqidah-service/internal/app"
	"github.com/jsamuelsen/alaqidah-service/internal/content"
	"github.com/jsamuelsen/alaqidah-service/internal/domain"
)

// QuoteListRequest is the query of GET /quotes.
type QuoteListRequest struct {
	Locale   string `form:"locale"   validate:"omitempty,locale"`
	Q        string `form:"q"        validate:"max=200"`
	Category string `form:"category" validate:"max=100"`
	Fuzzy    bool   `form:"fuzzy"`
	PageRequest
}

// QuoteRequest is the query of GET /quotes/:no and GET /categories.
type QuoteRequest struct {
	Locale string `form:"locale" validate:"omitempty,locale"`
}

// CardRequest is the query of the card image endpoints.
type CardRequest struct {
	Locale      string `form:"locale"      validate:"omitempty,locale"`
	Explanation bool   `form:"explanation"`
	Theme       string `form:"theme"       validate:"omitempty,theme"`
}

// QuoteResponse is one point in the requested locale.
type QuoteResponse struct {
	No          int    `json:"no"`
	Label       string `json:"label"`
	Title       string `json:"title"`
	Text        string `json:"text"`
	Explanation string `json:"explanation,omitempty"`
	Category    string `json:"category,omitempty"`
}

// CategoryResponse is a category with the number of quotes that have
// content in it.
type CategoryResponse struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// QuoteListResponse is the body of GET /quotes.
type QuoteListResponse struct {
	Locale     string             `json:"locale"`
	Query      string             `json:"query"`
	Category   string             `json:"category"`
	Total      int                `json:"total"`
	Matches    int                `json:"matches"`
	Quotes     []QuoteResponse    `json:"quotes"`
	Categories []CategoryResponse `json:"categories"`
	NextCursor string             `json:"nextCursor,omitempty"`
	HasMore    bool               `json:"hasMore"`
}

// CategoryListResponse is the body of GET /categories.
type CategoryListResponse struct {
	Locale     string             `json:"locale"`
	Categories []CategoryResponse `json:"categories"`
}

// NewQuoteResponse converts a detail. pointWord builds the label of an
// untitled point.
func NewQuoteResponse(d domain.QuoteDetail, pointWord string) QuoteResponse {
	return QuoteResponse{
		No:          d.No,
		Label:       d.PointLabel(pointWord),
		Title:       d.Title,
		Text:        d.Text,
		Explanation: d.Explanation,
		Category:    d.Category,
	}
}

// NewCategoryResponses converts category counts.
func NewCategoryResponses(counts []content.CategoryCount) []CategoryResponse {
	out := make([]CategoryResponse, len(counts))
	for i, c := range counts {
		out[i] = CategoryResponse{Category: c.Category, Count: c.Count}
	}

	return out
}

// NewQuoteListResponse converts a search result restricted to page.
func NewQuoteListResponse(res content.Result, page Page[domain.QuoteDetail], pointWord string) QuoteListResponse {
	quotes := make([]QuoteResponse, len(page.Items))
	for i, d := range page.Items {
		quotes[i] = NewQuoteResponse(d, pointWord)
	}

	return QuoteListResponse{
		Locale:     res.Locale,
		Query:      res.Query,
		Category:   res.Category,
		Total:      res.Total,
		Matches:    len(res.Quotes),
		Quotes:     quotes,
		Categories: NewCategoryResponses(res.Categories),
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	}
}

// LocaleResponse describes a supported UI language.
type LocaleResponse struct {
	Code            string `json:"code"`
	Label           string `json:"label"`
	Name            string `json:"name"`
	RTL             bool   `json:"rtl"`
	HasContent      bool   `json:"hasContent"`
	HasTranslations bool   `json:"hasTranslations"`
}

// LocaleListResponse is the body of GET /locales.
type LocaleListResponse struct {
	// Negotiated is the locale chosen for this request.
	Negotiated string           `json:"negotiated"`
	Default    string           `json:"default"`
	Locales    []LocaleResponse `json:"locales"`
}

// NewLocaleListResponse converts the locale list.
func NewLocaleListResponse(negotiated string, locales []app.LocaleInfo) LocaleListResponse {
	out := make([]LocaleResponse, len(locales))
	for i, l := range locales {
		out[i] = LocaleResponse{
			Code:            l.Code,
			Label:           l.Label,
			Name:            l.Name,
			RTL:             l.RTL,
			HasContent:      l.HasContent,
			HasTranslations: l.HasTranslations,
		}
	}

	return LocaleListResponse{
		Negotiated: negotiated,
		Default:    domain.DefaultLocale,
		Locales:    out,
	}
}

// TranslationsResponse is the body of GET /locales/:locale/translations.
type TranslationsResponse struct {
	Locale  string            `json:"locale"`
	RTL     bool              `json:"rtl"`
	Strings map[string]string `json:"strings"`
}

// PreferencesRequest is the body of PUT /preferences. Omitted fields keep
// their current value.
type PreferencesRequest struct {
	Lang  *string `json:"lang"  validate:"omitempty,locale"`
	Theme *string `json:"theme" validate:"omitempty,theme"`
}

// PreferencesResponse is the resolved preference state.
type PreferencesResponse struct {
	Lang  string `json:"lang"`
	Theme string `json:"theme"`
}

// CachePurgeResponse is the body of DELETE /admin/cache.
type CachePurgeResponse struct {
	Purged int `json:"purged"`
}

// ReloadResponse is the body of POST /admin/reload.
type ReloadResponse struct {
	Quotes  int      `json:"quotes"`
	Locales []string `json:"locales"`
}
