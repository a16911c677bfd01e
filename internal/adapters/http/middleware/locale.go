package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/alaqidah-service/internal/app"
	"github.com/jsamuelsen/alaqidah-service/internal/i18n"
	"github.com/jsamuelsen/alaqidah-service/internal/platform/logging"
)

const (
	// QueryLocale is the query parameter that selects the locale.
	QueryLocale = "locale"

	// CookieLang is the preference cookie holding the language.
	CookieLang = app.PrefKeyLang

	// ContextKeyLocale is the gin key of the negotiated locale.
	ContextKeyLocale = "locale"
)

// Locale negotiates the request locale from, in order, the locale query
// parameter, the language preference cookie and Accept-Language. Values
// that are not supported languages are skipped.
func Locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := NegotiateLocale(c)

		c.Set(ContextKeyLocale, locale)
		c.Header("Content-Language", locale)

		ctx := ContextWithLocale(c.Request.Context(), locale)
		ctx = logging.WithLocale(ctx, locale)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// NegotiateLocale picks the locale of c without storing it.
func NegotiateLocale(c *gin.Context) string {
	if code, ok := i18n.ParseLang(c.Query(QueryLocale)); ok {
		return code
	}

	if cookie, err := c.Cookie(CookieLang); err == nil {
		if code, ok := i18n.ParseLang(cookie); ok {
			return code
		}
	}

	return i18n.Match(c.GetHeader("Accept-Language"))
}

// GetLocale returns the locale negotiated for c. Without the Locale
// middleware it negotiates on the spot.
func GetLocale(c *gin.Context) string {
	if locale := c.GetString(ContextKeyLocale); locale != "" {
		return locale
	}

	return NegotiateLocale(c)
}
