package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/alaqidah-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/alaqidah-service/internal/app"
	"github.com/jsamuelsen/alaqidah-service/internal/platform/logging"
)

// AdminHandler serves the operator endpoints. The router guards them with
// authentication and the admin role.
type AdminHandler struct {
	quotes *app.QuoteService
	share  *app.ShareService
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(quotes *app.QuoteService, share *app.ShareService) *AdminHandler {
	return &AdminHandler{quotes: quotes, share: share}
}

// PurgeCache handles DELETE /admin/cache.
func (h *AdminHandler) PurgeCache(c *gin.Context) {
	n, err := h.share.PurgeCache(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CachePurgeResponse{Purged: n})
}

// Reload handles POST /admin/reload: the content is loaded again and
// swapped in, then the card cache is purged so no card shows old text.
func (h *AdminHandler) Reload(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.quotes.Reload(ctx); err != nil {
		dto.HandleError(c, err)
		return
	}

	if _, err := h.share.PurgeCache(ctx); err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "purging card cache after reload failed", slog.Any("error", err))
	}

	c.JSON(http.StatusOK, dto.ReloadResponse{Quotes: h.quotes.Index().Len(), Locales: h.quotes.Index().Locales()})
}

// RegisterRoutes mounts the admin endpoints on rg.
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.DELETE("/cache", h.PurgeCache)
	rg.POST("/reload", h.Reload)
}
