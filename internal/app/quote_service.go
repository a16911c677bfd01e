// Package app contains the application services: quote browsing, share-card
// export and user preferences. Services depend on ports and on the pure
// content, i18n and sharecard packages, never on transports.
package app

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync/atomic"

	"github.com/jsamuelsen/alaqidah-service/internal/content"
	"github.com/jsamuelsen/alaqidah-service/internal/domain"
	"github.com/jsamuelsen/alaqidah-service/internal/i18n"
	"github.com/jsamuelsen/alaqidah-service/internal/platform/logging"
	"github.com/jsamuelsen/alaqidah-service/internal/sharecard"
)

// LocaleInfo describes a supported UI language and what is available for it.
type LocaleInfo struct {
	i18n.Language
	HasContent      bool
	HasTranslations bool
}

// QuoteObserver receives the per-locale quote counts after each (re)load.
type QuoteObserver interface {
	ObserveQuotes(locale string, count int)
}

// QuoteService answers quote, category and locale queries against the
// current content index. The index can be swapped by Reload while requests
// are in flight.
type QuoteService struct {
	index    atomic.Pointer[content.Index]
	catalog  *i18n.Catalog
	loader   *ContentLoader
	observer QuoteObserver
	logger   *slog.Logger
}

// QuoteServiceConfig contains the quote service dependencies.
type QuoteServiceConfig struct {
	Index   *content.Index
	Catalog *i18n.Catalog
	// Loader is optional; without it Reload fails.
	Loader   *ContentLoader
	Observer QuoteObserver
	Logger   *slog.Logger
}

// NewQuoteService creates a quote service. It panics when Index or Catalog
// is missing.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Index == nil {
		panic("app: QuoteServiceConfig.Index is required")
	}
	if cfg.Catalog == nil {
		panic("app: QuoteServiceConfig.Catalog is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &QuoteService{
		catalog:  cfg.Catalog,
		loader:   cfg.Loader,
		observer: cfg.Observer,
		logger:   cfg.Logger.With(slog.String("component", "quote-service")),
	}
	s.swap(cfg.Index)

	return s
}

// Index returns the current index.
func (s *QuoteService) Index() *content.Index {
	return s.index.Load()
}

// Search lists the quotes of q.Locale matching q with category counts.
func (s *QuoteService) Search(ctx context.Context, q content.Query) content.Result {
	q.Locale = i18n.LangOrDefault(q.Locale)

	res := s.Index().Search(q)

	logging.FromContextOr(ctx, s.logger).DebugContext(ctx, "quotes searched",
		slog.String("locale", res.Locale),
		slog.String("query", res.Query),
		slog.String("category", res.Category),
		slog.Int("matches", len(res.Quotes)),
	)

	return res
}

// Get returns point no as shown in locale. A point without displayable text
// in that locale is reported as not found.
func (s *QuoteService) Get(ctx context.Context, locale string, no int) (*domain.QuoteDetail, error) {
	if no < 1 {
		return nil, domain.NewValidationError("no", "must be a positive point number")
	}

	locale = i18n.LangOrDefault(locale)
	ix := s.Index()

	text := ix.TextFor(no, locale)
	if text == "" {
		return nil, domain.NewNotFoundError("quote", strconv.Itoa(no))
	}

	detail := ix.Detail(no, locale)
	detail.Text = text

	return &detail, nil
}

// Categories returns the "all" bucket and every category of locale with the
// number of quotes that have content.
func (s *QuoteService) Categories(ctx context.Context, locale string) []content.CategoryCount {
	return s.Search(ctx, content.Query{Locale: locale}).Categories
}

// Locales lists the supported UI languages.
func (s *QuoteService) Locales() []LocaleInfo {
	ix := s.Index()
	langs := i18n.Languages()

	out := make([]LocaleInfo, 0, len(langs))
	for _, lang := range langs {
		out = append(out, LocaleInfo{
			Language:        lang,
			HasContent:      ix.HasLocale(lang.Code),
			HasTranslations: s.catalog.Has(lang.Code),
		})
	}

	return out
}

// Translations returns the UI strings for locale.
func (s *QuoteService) Translations(locale string) (map[string]string, error) {
	code, ok := i18n.ParseLang(locale)
	if !ok {
		return nil, domain.NewValidationError("locale", "unsupported locale "+strconv.Quote(locale))
	}

	return s.catalog.Strings(code), nil
}

// Labels returns the share card strings for locale.
func (s *QuoteService) Labels(locale string) sharecard.Labels {
	return sharecard.Labels{
		Point:       s.catalog.T(locale, i18n.KeySharePointLabel),
		Quote:       s.catalog.T(locale, i18n.KeyShareLabelQuote),
		Explanation: s.catalog.T(locale, i18n.KeyShareLabelExplanation),
	}
}

// Reload rebuilds the index from the loader and swaps it in.
func (s *QuoteService) Reload(ctx context.Context) error {
	if s.loader == nil {
		return domain.NewUnavailableError("content loader", "reload is not configured")
	}

	ix, err := s.loader.Load(ctx)
	if err != nil {
		return err
	}

	s.swap(ix)

	return nil
}

func (s *QuoteService) swap(ix *content.Index) {
	s.index.Store(ix)

	if s.observer == nil {
		return
	}
	for _, locale := range ix.Locales() {
		s.observer.ObserveQuotes(locale, len(ix.View(locale)))
	}
}

// Name implements ports.HealthChecker.
func (s *QuoteService) Name() string { return "quote-index" }

// Check implements ports.HealthChecker.
func (s *QuoteService) Check(context.Context) error {
	if s.Index().Len() == 0 {
		return errors.New("quote index is empty")
	}

	return nil
}
