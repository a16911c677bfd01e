package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/alaqidah-service/internal/content"
	"github.com/jsamuelsen/alaqidah-service/internal/domain"
	"github.com/jsamuelsen/alaqidah-service/internal/ports"
)

// DefaultRemoteConcurrency bounds concurrent locale pack downloads.
const DefaultRemoteConcurrency = 4

// ContentLoaderConfig configures where quote content comes from. Sources are
// layered: embedded data, then Dir, then remote packs. A later source
// replaces a whole locale from an earlier one.
type ContentLoaderConfig struct {
	// Dir is an optional directory of <locale>.json files.
	Dir           string
	DefaultLocale string

	// Remote and RemoteLocales enable downloading locale packs.
	Remote        ports.LocalePackClient
	RemoteLocales []string
	Concurrency   int

	Logger *slog.Logger
}

// ContentLoader assembles a content.Index from the configured sources.
type ContentLoader struct {
	cfg    ContentLoaderConfig
	logger *slog.Logger
}

// NewContentLoader creates a loader.
func NewContentLoader(cfg ContentLoaderConfig) *ContentLoader {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = DefaultRemoteConcurrency
	}
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = domain.DefaultLocale
	}

	return &ContentLoader{
		cfg:    cfg,
		logger: cfg.Logger.With(slog.String("component", "content-loader")),
	}
}

// Load builds a fresh index. Local sources must load; a remote locale that
// fails is logged and skipped so the embedded data still serves.
func (l *ContentLoader) Load(ctx context.Context) (*content.Index, error) {
	sets, err := content.LoadEmbedded()
	if err != nil {
		return nil, fmt.Errorf("loading embedded content: %w", err)
	}

	if l.cfg.Dir != "" {
		local, err := content.LoadDir(l.cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("loading content dir: %w", err)
		}
		sets = content.Merge(sets, local...)
	}

	if l.cfg.Remote != nil && len(l.cfg.RemoteLocales) > 0 {
		sets = content.Merge(sets, l.fetchRemote(ctx)...)
	}

	ix := content.Build(sets, content.WithDefaultLocale(l.cfg.DefaultLocale))

	l.logger.InfoContext(ctx, "content loaded",
		slog.Int("quotes", ix.Len()),
		slog.Any("locales", ix.Locales()),
	)

	return ix, nil
}

func (l *ContentLoader) fetchRemote(ctx context.Context) []domain.LocaleData {
	fns := make([]func(context.Context) (*domain.LocaleData, error), len(l.cfg.RemoteLocales))
	for i, locale := range l.cfg.RemoteLocales {
		fns[i] = func(ctx context.Context) (*domain.LocaleData, error) {
			return l.cfg.Remote.FetchLocale(ctx, locale)
		}
	}

	results := ParallelPartialLimit(ctx, l.cfg.Concurrency, fns...)

	packs := make([]domain.LocaleData, 0, len(results))
	for i, r := range results {
		if r.Err != nil {
			l.logger.WarnContext(ctx, "skipping remote locale pack",
				slog.String("locale", l.cfg.RemoteLocales[i]),
				slog.Any("error", r.Err),
			)
			continue
		}
		if r.Value == nil {
			continue
		}
		packs = append(packs, *r.Value)
	}

	return packs
}
