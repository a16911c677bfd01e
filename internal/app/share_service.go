package app

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"log/slog"
	"time"

	"github.com/jsamuelsen/alaqidah-service/internal/content"
	"github.com/jsamuelsen/alaqidah-service/internal/domain"
	"github.com/jsamuelsen/alaqidah-service/internal/i18n"
	"github.com/jsamuelsen/alaqidah-service/internal/platform/logging"
	"github.com/jsamuelsen/alaqidah-service/internal/ports"
	"github.com/jsamuelsen/alaqidah-service/internal/sharecard"
)

// MaxScale caps the device pixel ratio a caller may ask for.
const MaxScale = 4

// ShareRequest selects one card to render.
type ShareRequest struct {
	Locale             string
	No                 int
	IncludeExplanation bool
	Theme              domain.Theme
	// Scale is the device pixel ratio. Zero means sharecard.ExportScale.
	Scale float64
}

// CacheKey identifies the rendered PNG for r.
func (r ShareRequest) CacheKey() string {
	return fmt.Sprintf("card:%s:%d:%t:%s:%g", r.Locale, r.No, r.IncludeExplanation, r.Theme, r.Scale)
}

// RenderObserver receives render and cache outcomes.
type RenderObserver interface {
	ObserveRender(theme domain.Theme, scale float64, elapsed time.Duration, err error)
	ObserveCache(hit bool)
}

// ShareService renders share cards for quotes.
type ShareService struct {
	quotes   *QuoteService
	renderer ports.CardRenderer
	cache    ports.Cache
	cacheTTL time.Duration
	exec     *Executor
	observer RenderObserver
	logger   *slog.Logger
}

// ShareServiceConfig contains the share service dependencies. Cache and
// Observer are optional.
type ShareServiceConfig struct {
	Quotes   *QuoteService
	Renderer ports.CardRenderer
	Cache    ports.Cache
	CacheTTL time.Duration
	Observer RenderObserver
	Logger   *slog.Logger
}

// NewShareService creates a share service. It panics when Quotes or Renderer
// is missing.
func NewShareService(cfg ShareServiceConfig) *ShareService {
	if cfg.Quotes == nil || cfg.Renderer == nil {
		panic("app: ShareServiceConfig requires Quotes and Renderer")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	logger := cfg.Logger.With(slog.String("component", "share-service"))

	return &ShareService{
		quotes:   cfg.Quotes,
		renderer: cfg.Renderer,
		cache:    cfg.Cache,
		cacheTTL: cfg.CacheTTL,
		exec:     NewExecutor(logger),
		observer: cfg.Observer,
		logger:   logger,
	}
}

// Export renders the downloadable card, at sharecard.ExportScale unless the
// request sets a scale.
func (s *ShareService) Export(ctx context.Context, req ShareRequest) (*sharecard.Image, error) {
	if req.Scale == 0 {
		req.Scale = sharecard.ExportScale
	}

	return s.render(ctx, req)
}

// Preview renders the card at scale 1.
func (s *ShareService) Preview(ctx context.Context, req ShareRequest) (*sharecard.Image, error) {
	req.Scale = 1

	return s.render(ctx, req)
}

func (s *ShareService) render(ctx context.Context, req ShareRequest) (*sharecard.Image, error) {
	req.Locale = i18n.LangOrDefault(req.Locale)
	logger := logging.FromContextOr(ctx, s.logger)

	if img, ok := s.cached(ctx, req); ok {
		return img, nil
	}

	start := time.Now()

	op := Operation[ShareRequest, *sharecard.Image, *sharecard.Image, *sharecard.Image]{
		Name:     "render-share-card",
		Validate: validateShareRequest,
		Perform: func(ctx context.Context, req ShareRequest) (*sharecard.Image, error) {
			detail, err := s.quotes.Get(ctx, req.Locale, req.No)
			if err != nil {
				return nil, err
			}

			return s.renderer.Render(sharecard.Request{
				Detail:             detail,
				IncludeExplanation: req.IncludeExplanation,
				Theme:              req.Theme,
				Labels:             s.quotes.Labels(req.Locale),
				Scale:              req.Scale,
			})
		},
		Verify: func(_ context.Context, _ ShareRequest, img *sharecard.Image) (*sharecard.Image, error) {
			if img == nil || len(img.PNG) == 0 {
				return nil, domain.NewEncodingError("png", nil)
			}
			if img.Width <= 0 || img.Height <= 0 {
				return nil, domain.NewInputError("export share card", "rendered card has no area")
			}

			return img, nil
		},
		Archive: func(ctx context.Context, req ShareRequest, img *sharecard.Image) error {
			if s.cache == nil {
				return nil
			}
			if err := s.cache.Set(ctx, req.CacheKey(), img.PNG, s.cacheTTL); err != nil {
				logger.WarnContext(ctx, "caching share card failed", slog.Any("error", err))
			}

			return nil
		},
		Respond: func(_ context.Context, _ ShareRequest, img *sharecard.Image) (*sharecard.Image, error) {
			return img, nil
		},
	}

	img, err := Execute(ctx, s.exec, op, req)
	if s.observer != nil {
		s.observer.ObserveRender(req.Theme, req.Scale, time.Since(start), err)
	}
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "share card rendered",
		slog.Int("no", req.No),
		slog.String("locale", req.Locale),
		slog.String("theme", string(req.Theme)),
		slog.Int("width", img.Width),
		slog.Int("height", img.Height),
		slog.Int("bytes", len(img.PNG)),
	)

	return img, nil
}

func (s *ShareService) cached(ctx context.Context, req ShareRequest) (*sharecard.Image, bool) {
	if s.cache == nil || validateShareRequest(ctx, req) != nil {
		return nil, false
	}

	data, err := s.cache.Get(ctx, req.CacheKey())
	if err != nil {
		if !domain.IsNotFound(err) {
			logging.FromContextOr(ctx, s.logger).WarnContext(ctx, "reading card cache failed", slog.Any("error", err))
		}
		s.observeCache(false)
		return nil, false
	}

	detail, err := s.quotes.Get(ctx, req.Locale, req.No)
	if err != nil {
		s.observeCache(false)
		return nil, false
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		_ = s.cache.Delete(ctx, req.CacheKey())
		s.observeCache(false)
		return nil, false
	}

	s.observeCache(true)

	return &sharecard.Image{
		No:       detail.No,
		PNG:      data,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Filename: sharecard.Filename(detail),
	}, true
}

func (s *ShareService) observeCache(hit bool) {
	if s.observer != nil {
		s.observer.ObserveCache(hit)
	}
}

// ExportAllRequest selects every quote of a locale for batch export.
type ExportAllRequest struct {
	Locale             string
	IncludeExplanation bool
	Theme              domain.Theme
	Scale              float64
	Workers            int
}

// ExportAll renders every quote with content in the locale and hands each
// image to sink. Sink is called from several goroutines at once.
func (s *ShareService) ExportAll(
	ctx context.Context,
	req ExportAllRequest,
	sink func(context.Context, *sharecard.Image) error,
) (int, error) {
	quotes := s.quotes.Search(ctx, content.Query{Locale: req.Locale}).Quotes

	numbers := make([]int, len(quotes))
	for i, q := range quotes {
		numbers[i] = q.No
	}

	err := FanOut(ctx, req.Workers, numbers, func(ctx context.Context, no int) error {
		img, err := s.Export(ctx, ShareRequest{
			Locale:             req.Locale,
			No:                 no,
			IncludeExplanation: req.IncludeExplanation,
			Theme:              req.Theme,
			Scale:              req.Scale,
		})
		if err != nil {
			return fmt.Errorf("point %d: %w", no, err)
		}

		return sink(ctx, img)
	})
	if err != nil {
		return 0, err
	}

	return len(numbers), nil
}

// PurgeCache drops every cached card.
func (s *ShareService) PurgeCache(ctx context.Context) (int, error) {
	if s.cache == nil {
		return 0, nil
	}

	n, err := s.cache.Purge(ctx)
	if err != nil {
		return 0, fmt.Errorf("purging card cache: %w", err)
	}

	logging.FromContextOr(ctx, s.logger).InfoContext(ctx, "card cache purged", slog.Int("entries", n))

	return n, nil
}

func validateShareRequest(_ context.Context, req ShareRequest) error {
	switch {
	case req.No < 1:
		return domain.NewInputError("export share card", "point number must be positive")
	case req.Scale <= 0 || req.Scale > MaxScale:
		return domain.NewInputError("export share card", fmt.Sprintf("scale must be in (0, %d]", MaxScale))
	case !req.Theme.IsValid():
		return domain.NewInputError("export share card", fmt.Sprintf("unknown theme %q", req.Theme))
	}

	return nil
}
