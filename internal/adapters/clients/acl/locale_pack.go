package acl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jsamuelsen/alaqidah-service/internal/adapters/clients"
	"github.com/jsamuelsen/alaqidah-service/internal/domain"
	"github.com/jsamuelsen/alaqidah-service/internal/platform/logging"
)

// DefaultServiceName names the content server in logs and errors.
const DefaultServiceName = "content-server"

// localePackResponse is the content server's pack document.
type localePackResponse struct {
	Locale  string          `json:"locale"`
	Version string          `json:"version"`
	Points  []externalPoint `json:"points"`
}

type externalPoint struct {
	Number     int    `json:"number"`
	Heading    string `json:"heading"`
	Body       string `json:"body"`
	Commentary string `json:"commentary"`
	Topic      string `json:"topic"`
}

// LocalePackAdapter implements ports.LocalePackClient over a content
// server.
type LocalePackAdapter struct {
	BaseAdapter
	logger *slog.Logger
}

// NewLocalePackAdapter wraps client. It panics when client is nil.
func NewLocalePackAdapter(client *clients.Client, logger *slog.Logger) *LocalePackAdapter {
	if client == nil {
		panic("acl: LocalePackAdapter requires a client")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LocalePackAdapter{
		BaseAdapter: NewBaseAdapter(client, DefaultServiceName),
		logger:      logger.With(slog.String("component", "locale-pack")),
	}
}

// FetchLocale downloads and translates the pack for locale.
func (a *LocalePackAdapter) FetchLocale(ctx context.Context, locale string) (*domain.LocaleData, error) {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if err := ValidateRequired(locale, "locale"); err != nil {
		return nil, err
	}

	logger := logging.FromContextOr(ctx, a.logger).With(slog.String("locale", locale))
	path := "/locales/" + locale + ".json"
	logger.Log(ctx, logging.LevelTrace, "fetching locale pack", slog.String("path", path))

	body, err := a.Get(ctx, path, "fetch locale pack", locale)
	if err != nil {
		return nil, err
	}

	pack, err := DecodeResponse[localePackResponse](body)
	if err != nil {
		return nil, domain.NewUnavailableError(a.ServiceName(), err.Error())
	}

	data, err := translatePack(locale, pack)
	if err != nil {
		logger.WarnContext(ctx, "rejected locale pack", slog.Any("error", err))
		return nil, err
	}

	logger.DebugContext(ctx, "locale pack fetched",
		slog.String("version", pack.Version),
		slog.Int("points", len(data.Entries)),
	)

	return data, nil
}

// Name implements ports.HealthChecker.
func (a *LocalePackAdapter) Name() string {
	return a.ServiceName()
}

// Check reports the content server unhealthy while its circuit is open.
func (a *LocalePackAdapter) Check(ctx context.Context) error {
	return a.client.Check(ctx)
}

func translatePack(locale string, pack *localePackResponse) (*domain.LocaleData, error) {
	if pack.Locale != "" && !strings.EqualFold(pack.Locale, locale) {
		return nil, domain.NewValidationError("locale", "pack is for "+pack.Locale+", requested "+locale)
	}

	entries, err := TranslateSlice(pack.Points, translatePoint)
	if err != nil {
		return nil, err
	}

	return &domain.LocaleData{Locale: locale, Entries: entries}, nil
}

func translatePoint(p *externalPoint) (domain.QuoteEntry, error) {
	if err := ValidatePositive(p.Number, "number"); err != nil {
		return domain.QuoteEntry{}, err
	}

	return domain.QuoteEntry{
		No:          p.Number,
		Title:       p.Heading,
		Text:        p.Body,
		Explanation: p.Commentary,
		Category:    strings.TrimSpace(p.Topic),
	}, nil
}
