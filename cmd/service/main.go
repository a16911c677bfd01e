// Package main is the entry point for the HTTP service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/alaqidah-service/internal/adapters/cache"
	"github.com/jsamuelsen/alaqidah-service/internal/adapters/clients"
	"github.com/jsamuelsen/alaqidah-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen/alaqidah-service/internal/adapters/http"
	"github.com/jsamuelsen/alaqidah-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/alaqidah-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/alaqidah-service/internal/app"
	"github.com/jsamuelsen/alaqidah-service/internal/i18n"
	"github.com/jsamuelsen/alaqidah-service/internal/platform/config"
	"github.com/jsamuelsen/alaqidah-service/internal/platform/logging"
	"github.com/jsamuelsen/alaqidah-service/internal/platform/telemetry"
	"github.com/jsamuelsen/alaqidah-service/internal/ports"
	"github.com/jsamuelsen/alaqidah-service/internal/sharecard"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	collectors, err := telemetry.NewCollectors(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	// 5. Create health registry
	healthRegistry := ports.NewHealthRegistry()

	// 6. Content sources: embedded data, the content dir and, when enabled,
	// remote locale packs behind the resilient client (ACL pattern)
	loaderCfg := app.ContentLoaderConfig{
		Dir:           cfg.Content.Dir,
		DefaultLocale: cfg.Content.DefaultLocale,
		Concurrency:   cfg.Content.Remote.Concurrency,
		Logger:        logger,
	}

	if cfg.Content.Remote.Enabled {
		httpClient, err := clients.New(&clients.Config{
			BaseURL:     cfg.Content.Remote.BaseURL,
			ServiceName: acl.DefaultServiceName,
			Timeout:     cfg.Client.Timeout,
			Retry:       cfg.Client.Retry,
			Circuit:     cfg.Client.CircuitBreaker,
			Transport:   cfg.Client.Transport,
			Logger:      logger,
		}, clients.WithIDSource(middleware.IDsFromContext))
		if err != nil {
			return fmt.Errorf("creating content client: %w", err)
		}

		packs := acl.NewLocalePackAdapter(httpClient, logger)
		if err := healthRegistry.Register(packs); err != nil {
			return fmt.Errorf("registering content server health check: %w", err)
		}

		loaderCfg.Remote = packs
		loaderCfg.RemoteLocales = cfg.Content.Remote.Locales
	}

	loader := app.NewContentLoader(loaderCfg)

	index, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	catalog, err := i18n.Load()
	if err != nil {
		return fmt.Errorf("loading translations: %w", err)
	}

	// 7. Create application services
	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Index:    index,
		Catalog:  catalog,
		Loader:   loader,
		Observer: collectors,
		Logger:   logger,
	})

	if err := healthRegistry.Register(quoteService); err != nil {
		return fmt.Errorf("registering quote index health check: %w", err)
	}

	fonts, err := sharecard.LoadFonts(cfg.ShareCard.FontDir)
	if err != nil {
		return fmt.Errorf("loading card fonts: %w", err)
	}

	for _, c := range app.FontCoverage(index, fonts) {
		logger.Warn("card fonts cannot draw locale content, add a fallback font to share_card.font_dir",
			slog.String("locale", c.Locale),
			slog.String("missing", string(c.Missing[:min(len(c.Missing), 12)])),
			slog.Int("missing_count", len(c.Missing)),
		)
	}

	shareCfg := app.ShareServiceConfig{
		Quotes:   quoteService,
		Renderer: sharecard.NewRenderer(fonts),
		Observer: collectors,
		Logger:   logger,
	}
	if cfg.ShareCard.Cache.Enabled {
		shareCfg.Cache = cache.NewMemory(cfg.ShareCard.Cache.MaxEntries)
		shareCfg.CacheTTL = cfg.ShareCard.Cache.TTL
	}

	shareService := app.NewShareService(shareCfg)

	// 8. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)

	// 9. Create HTTP server
	server := http.New(&cfg.Server, logger)

	// 10. Setup router with all middleware and routes
	http.SetupRouter(server.Engine(), http.RouterConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Auth:        &cfg.Auth,
		Timeout:     http.DefaultRequestTimeout,
		Health:      handlers.NewHealthHandler(healthRegistry, buildInfo, prometheus.DefaultGatherer),
		Quotes:      handlers.NewQuoteHandler(quoteService),
		Cards:       handlers.NewCardHandler(shareService),
		Preferences: handlers.NewPreferencesHandler(cfg.App.Environment == "prod"),
		Admin:       handlers.NewAdminHandler(quoteService, shareService),
	})

	// 11. Start server (non-blocking)
	serverErr := server.Start()

	// 12. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop accepting new requests, drain in-flight
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
