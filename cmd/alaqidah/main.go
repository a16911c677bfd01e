// Package main is the entry point for the alaqidah command line.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jsamuelsen/alaqidah-service/internal/adapters/cli"
	"github.com/jsamuelsen/alaqidah-service/internal/adapters/clients"
	"github.com/jsamuelsen/alaqidah-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen/alaqidah-service/internal/adapters/prefs"
	"github.com/jsamuelsen/alaqidah-service/internal/app"
	"github.com/jsamuelsen/alaqidah-service/internal/i18n"
	"github.com/jsamuelsen/alaqidah-service/internal/platform/config"
	"github.com/jsamuelsen/alaqidah-service/internal/platform/logging"
	"github.com/jsamuelsen/alaqidah-service/internal/sharecard"
)

// Version is injected via ldflags.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Configuration files are optional for the CLI; defaults and APP_
	// variables are enough.
	cfg, err := config.Load(os.Getenv("APP_ENVIRONMENT"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Diagnostics go to stderr and stay quiet unless something is wrong.
	logger := logging.NewWithWriter(&logging.Config{
		Level:   "warn",
		Format:  "pretty",
		Service: "alaqidah",
		Version: Version,
	}, os.Stderr)
	logging.SetDefault(logger)

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
		})
		if err != nil {
			return fmt.Errorf("creating content client: %w", err)
		}

		loaderCfg.Remote = acl.NewLocalePackAdapter(httpClient, logger)
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

	quotes := app.NewQuoteService(app.QuoteServiceConfig{
		Index:   index,
		Catalog: catalog,
		Loader:  loader,
		Logger:  logger,
	})

	store := prefs.NewFileStore(cfg.Preferences.Path, logger)

	root := cli.NewRootCmd(cli.Deps{
		Quotes: quotes,
		Share: app.NewShareService(app.ShareServiceConfig{
			Quotes:   quotes,
			Renderer: sharecard.NewRenderer(fonts),
			Logger:   logger,
		}),
		Prefs:     app.NewPreferences(store),
		PrefsPath: store.Path(),
		Logger:    logger,
	})
	root.Version = Version

	return root.ExecuteContext(ctx)
}
