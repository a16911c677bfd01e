package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/alaqidah-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/alaqidah-service/internal/app"
)

// PreferenceCookieMaxAge is how long preference cookies live.
const PreferenceCookieMaxAge = 365 * 24 * time.Hour

// cookieStore is a ports.PreferenceStore over the request and response
// cookies of one request. Writes are visible to later reads of the same
// request.
type cookieStore struct {
	c       *gin.Context
	secure  bool
	written map[string]*string
}

func newCookieStore(c *gin.Context, secure bool) *cookieStore {
	return &cookieStore{c: c, secure: secure, written: map[string]*string{}}
}

func (s *cookieStore) Get(key string) (string, bool) {
	if v, ok := s.written[key]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}

	v, err := s.c.Cookie(key)
	if err != nil || v == "" {
		return "", false
	}

	return v, true
}

func (s *cookieStore) Set(key, value string) {
	s.written[key] = &value
	s.setCookie(key, value, int(PreferenceCookieMaxAge/time.Second))
}

func (s *cookieStore) Remove(key string) {
	s.written[key] = nil
	s.setCookie(key, "", -1)
}

func (s *cookieStore) setCookie(key, value string, maxAge int) {
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(key, value, maxAge, "/", "", s.secure, false)
}

// PreferencesHandler reads and writes the language and theme cookies.
type PreferencesHandler struct {
	secureCookies bool
}

// NewPreferencesHandler creates a preferences handler. secureCookies marks
// the cookies Secure; enable it behind TLS.
func NewPreferencesHandler(secureCookies bool) *PreferencesHandler {
	return &PreferencesHandler{secureCookies: secureCookies}
}

func (h *PreferencesHandler) preferences(c *gin.Context) *app.Preferences {
	return app.NewPreferences(newCookieStore(c, h.secureCookies))
}

// Get handles GET /preferences.
func (h *PreferencesHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, snapshotResponse(h.preferences(c).Snapshot()))
}

// Put handles PUT /preferences. Omitted fields are left unchanged.
func (h *PreferencesHandler) Put(c *gin.Context) {
	var req dto.PreferencesRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithBindError(c, err)
		return
	}

	prefs := h.preferences(c)

	if req.Lang != nil {
		if err := prefs.SetLang(*req.Lang); err != nil {
			dto.HandleError(c, err)
			return
		}
	}
	if req.Theme != nil {
		if err := prefs.SetTheme(*req.Theme); err != nil {
			dto.HandleError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, snapshotResponse(prefs.Snapshot()))
}

// ToggleTheme handles POST /preferences/theme/toggle.
func (h *PreferencesHandler) ToggleTheme(c *gin.Context) {
	prefs := h.preferences(c)
	prefs.ToggleTheme()

	c.JSON(http.StatusOK, snapshotResponse(prefs.Snapshot()))
}

// Delete handles DELETE /preferences by expiring both cookies.
func (h *PreferencesHandler) Delete(c *gin.Context) {
	h.preferences(c).Reset()
	c.Status(http.StatusNoContent)
}

// RegisterRoutes mounts the preference endpoints on rg.
func (h *PreferencesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/preferences", h.Get)
	rg.PUT("/preferences", h.Put)
	rg.DELETE("/preferences", h.Delete)
	rg.POST("/preferences/theme/toggle", h.ToggleTheme)
}

func snapshotResponse(s app.Snapshot) dto.PreferencesResponse {
	return dto.PreferencesResponse{Lang: s.Lang, Theme: string(s.Theme)}
}
