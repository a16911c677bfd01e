package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/alaqidah-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/alaqidah-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/alaqidah-service/internal/platform/config"
	"github.com/jsamuelsen/alaqidah-service/internal/platform/telemetry"
)

// DefaultRequestTimeout bounds /api/v1 requests when RouterConfig.Timeout
// is zero.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains the handlers and settings of the router. Nil
// handlers leave their routes unregistered.
type RouterConfig struct {
	// ServiceName names the server spans.
	ServiceName string
	Auth        *config.AuthConfig
	Timeout     time.Duration

	Health      *handlers.HealthHandler
	Quotes      *handlers.QuoteHandler
	Cards       *handlers.CardHandler
	Preferences *handlers.PreferencesHandler
	Admin       *handlers.AdminHandler
}

// SetupRouter installs the middleware chain and routes on engine.
//
// Middleware order:
//  1. Recovery
//  2. Request ID, Correlation ID
//  3. OpenTelemetry spans, then the trace ID header
//  4. Logging (skips /-/)
//
// /api/v1 additionally negotiates the locale and sets the request deadline.
// /api/v1/admin requires an authenticated caller with the admin role and
// is only mounted when auth is enabled.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.ServiceName),
		telemetry.Middleware(),
		middleware.Logging(),
	)

	if cfg.Health != nil {
		cfg.Health.RegisterRoutes(engine)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	api := engine.Group("/api/v1", middleware.Locale(), middleware.Timeout(timeout))

	if cfg.Quotes != nil {
		cfg.Quotes.RegisterRoutes(api)
	}
	if cfg.Cards != nil {
		cfg.Cards.RegisterRoutes(api)
	}
	if cfg.Preferences != nil {
		cfg.Preferences.RegisterRoutes(api)
	}

	if cfg.Admin != nil && cfg.Auth != nil && cfg.Auth.Enabled {
		role := cfg.Auth.AdminRole
		if role == "" {
			role = config.DefaultAdminRole
		}

		admin := api.Group("/admin",
			middleware.RequireAuth(cfg.Auth),
			middleware.RequireRole(cfg.Auth, role),
		)
		cfg.Admin.RegisterRoutes(admin)
	}
}
