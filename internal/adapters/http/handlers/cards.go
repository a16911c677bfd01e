package handlers

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/alaqidah-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/alaqidah-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/alaqidah-service/internal/app"
	"github.com/jsamuelsen/alaqidah-service/internal/domain"
	"github.com/jsamuelsen/alaqidah-service/internal/sharecard"
)

// CardHandler serves rendered share cards.
type CardHandler struct {
	share *app.ShareService
}

// NewCardHandler creates a card handler.
func NewCardHandler(share *app.ShareService) *CardHandler {
	return &CardHandler{share: share}
}

// Card handles GET /quotes/:no/card.png: the export-scale PNG offered as
// a download.
func (h *CardHandler) Card(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	img, err := h.share.Export(c.Request.Context(), req)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	writeImage(c, img, "attachment")
}

// Preview handles GET /quotes/:no/preview.png: the same card at scale 1,
// shown inline.
func (h *CardHandler) Preview(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}

	img, err := h.share.Preview(c.Request.Context(), req)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	writeImage(c, img, "inline")
}

// bind builds the share request. Without a theme parameter the theme
// preference cookie applies.
func (h *CardHandler) bind(c *gin.Context) (app.ShareRequest, bool) {
	no, ok := pointNumber(c)
	if !ok {
		return app.ShareRequest{}, false
	}

	var q dto.CardRequest
	if err := dto.BindQueryAndValidate(c, &q); err != nil {
		dto.RespondWithBindError(c, err)
		return app.ShareRequest{}, false
	}

	theme := domain.Theme(q.Theme)
	if q.Theme == "" {
		theme = app.NewPreferences(newCookieStore(c, false)).Theme()
	}

	return app.ShareRequest{
		Locale:             middleware.GetLocale(c),
		No:                 no,
		IncludeExplanation: q.Explanation,
		Theme:              theme,
	}, true
}

// RegisterRoutes mounts the card endpoints on rg.
func (h *CardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/quotes/:no/card.png", h.Card)
	rg.GET("/quotes/:no/preview.png", h.Preview)
}

func writeImage(c *gin.Context, img *sharecard.Image, disposition string) {
	c.Header("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": img.Filename}))
	c.Header("X-Card-Width", strconv.Itoa(img.Width))
	c.Header("X-Card-Height", strconv.Itoa(img.Height))
	c.Data(http.StatusOK, "image/png", img.PNG)
}
