package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/alaqidah-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/alaqidah-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/alaqidah-service/internal/app"
	"github.com/jsamuelsen/alaqidah-service/internal/content"
	"github.com/jsamuelsen/alaqidah-service/internal/i18n"
)

// QuoteHandler serves the quote, category and locale endpoints.
type QuoteHandler struct {
	quotes *app.QuoteService
}

// NewQuoteHandler creates a quote handler.
func NewQuoteHandler(quotes *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

// List handles GET /quotes. It filters the negotiated locale's quotes by
// q and category and reports the category counts of the whole locale.
func (h *QuoteHandler) List(c *gin.Context) {
	var req dto.QuoteListRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	locale := middleware.GetLocale(c)
	res := h.quotes.Search(c.Request.Context(), content.Query{
		Locale:   locale,
		Text:     req.Q,
		Category: req.Category,
		Fuzzy:    req.Fuzzy,
	})

	page, err := dto.Paginate(res.Quotes, req.PageRequest)
	if err != nil {
		dto.RespondWithErrorCode(c, dto.ErrorCodeBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteListResponse(res, page, h.quotes.Labels(locale).Point))
}

// Get handles GET /quotes/:no. A point without text in the locale or its
// fallback is a 404.
func (h *QuoteHandler) Get(c *gin.Context) {
	no, ok := pointNumber(c)
	if !ok {
		return
	}

	var req dto.QuoteRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	locale := middleware.GetLocale(c)

	detail, err := h.quotes.Get(c.Request.Context(), locale, no)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(*detail, h.quotes.Labels(locale).Point))
}

// Categories handles GET /categories.
func (h *QuoteHandler) Categories(c *gin.Context) {
	var req dto.QuoteRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	locale := middleware.GetLocale(c)

	c.JSON(http.StatusOK, dto.CategoryListResponse{
		Locale:     locale,
		Categories: dto.NewCategoryResponses(h.quotes.Categories(c.Request.Context(), locale)),
	})
}

// Locales handles GET /locales.
func (h *QuoteHandler) Locales(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewLocaleListResponse(middleware.GetLocale(c), h.quotes.Locales()))
}

// Translations handles GET /locales/:locale/translations.
func (h *QuoteHandler) Translations(c *gin.Context) {
	strs, err := h.quotes.Translations(c.Param("locale"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	lang, _ := i18n.Lookup(i18n.LangOrDefault(c.Param("locale")))

	c.JSON(http.StatusOK, dto.TranslationsResponse{
		Locale:  lang.Code,
		RTL:     lang.RTL,
		Strings: strs,
	})
}

// RegisterRoutes mounts the quote endpoints on rg.
func (h *QuoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/quotes", h.List)
	rg.GET("/quotes/:no", h.Get)
	rg.GET("/categories", h.Categories)
	rg.GET("/locales", h.Locales)
	rg.GET("/locales/:locale/translations", h.Translations)
}

// pointNumber parses the :no path parameter, writing a 400 when it is not a
// positive integer.
func pointNumber(c *gin.Context) (int, bool) {
	no, err := strconv.Atoi(c.Param("no"))
	if err != nil || no < 1 {
		dto.RespondWithValidationErrors(c, map[string]string{"no": "must be a positive point number"})
		return 0, false
	}

	return no, true
}
