//go:build integration

package integration

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/alaqidah-service/internal/adapters/clients"
	"github.com/jsamuelsen/alaqidah-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen/alaqidah-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/alaqidah-service/internal/app"
	"github.com/jsamuelsen/alaqidah-service/internal/i18n"
	"github.com/jsamuelsen/alaqidah-service/internal/platform/config"
)

const frenchPack = `{
	"locale": "fr",
	"version": "2024.1",
	"points": [
		{"number": 1, "heading": "L'unicité d'Allah", "body": "Nous disons qu'Allah est Un, sans associé.", "topic": "Tawhid"},
		{"number": 2, "heading": "Rien ne Lui ressemble", "body": "Rien ne Lui est semblable.", "topic": "Tawhid"}
	]
}`

func testClientConfig(baseURL string) *clients.Config {
	return &clients.Config{
		ServiceName: acl.DefaultServiceName,
		BaseURL:     baseURL,
		Timeout:     5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     3,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     50 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   2,
			Timeout:       time.Minute,
			HalfOpenLimit: 1,
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// contentServer serves frenchPack, fails the first failFirst requests with
// 503 and answers unknown locales with 404.
type contentServer struct {
	*httptest.Server

	failFirst int32
	requests  atomic.Int32

	mu      sync.Mutex
	headers []http.Header
}

func newContentServer(t *testing.T, failFirst int32) *contentServer {
	t.Helper()

	cs := &contentServer{failFirst: failFirst}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := cs.requests.Add(1)

		cs.mu.Lock()
		cs.headers = append(cs.headers, r.Header.Clone())
		cs.mu.Unlock()

		if n <= cs.failFirst {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		if r.URL.Path != "/locales/fr.json" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = fmt.Fprintf(w, `{"error":{"code":"NOT_FOUND","message":"no pack at %s"}}`, r.URL.Path)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, frenchPack)
	}))
	t.Cleanup(cs.Close)

	return cs
}

func newRemoteQuoteService(t *testing.T, baseURL string, locales ...string) (*app.QuoteService, *app.ContentLoader, *acl.LocalePackAdapter) {
	t.Helper()

	client, err := clients.New(testClientConfig(baseURL), clients.WithIDSource(middleware.IDsFromContext))
	require.NoError(t, err)

	packs := acl.NewLocalePackAdapter(client, nil)
	loader := app.NewContentLoader(app.ContentLoaderConfig{
		Remote:        packs,
		RemoteLocales: locales,
		Concurrency:   2,
	})

	ix, err := loader.Load(context.Background())
	require.NoError(t, err)

	catalog, err := i18n.Load()
	require.NoError(t, err)

	return app.NewQuoteService(app.QuoteServiceConfig{Index: ix, Catalog: catalog, Loader: loader}), loader, packs
}

func TestRemoteContent_MergesLocalePack(t *testing.T) {
	cs := newContentServer(t, 0)

	quotes, _, _ := newRemoteQuoteService(t, cs.URL, "fr")

	assert.Contains(t, quotes.Index().Locales(), "fr")

	d, err := quotes.Get(context.Background(), "fr", 1)
	require.NoError(t, err)
	assert.Equal(t, "L'unicité d'Allah", d.Title)

	// Points missing from the pack fall back to the default locale's text.
	d, err = quotes.Get(context.Background(), "fr", 3)
	require.NoError(t, err)
	assert.Equal(t, "There is nothing that can overwhelm Him.", d.Text)
	assert.Empty(t, d.Title)
}

func TestRemoteContent_RetriesTransientFailures(t *testing.T) {
	cs := newContentServer(t, 2)

	quotes, _, _ := newRemoteQuoteService(t, cs.URL, "fr")

	assert.Contains(t, quotes.Index().Locales(), "fr")
	assert.Equal(t, int32(3), cs.requests.Load(), "two 503s then the pack")
}

func TestRemoteContent_FailedLocaleIsSkipped(t *testing.T) {
	cs := newContentServer(t, 0)

	quotes, _, _ := newRemoteQuoteService(t, cs.URL, "fr", "de")

	locales := quotes.Index().Locales()
	assert.Contains(t, locales, "fr")
	assert.NotContains(t, locales, "de")
	assert.Contains(t, locales, "en", "embedded content still serves")
}

func TestRemoteContent_CircuitOpensAndReportsUnhealthy(t *testing.T) {
	cs := newContentServer(t, 1000)

	quotes, _, packs := newRemoteQuoteService(t, cs.URL, "fr")

	assert.NotContains(t, quotes.Index().Locales(), "fr")
	require.NoError(t, packs.Check(context.Background()))

	// The second failed request opens the circuit.
	require.NoError(t, quotes.Reload(context.Background()))
	require.ErrorIs(t, packs.Check(context.Background()), clients.ErrCircuitOpen)

	before := cs.requests.Load()
	require.NoError(t, quotes.Reload(context.Background()))
	assert.Equal(t, before, cs.requests.Load(), "open circuit sheds the reload request")
}

func TestRemoteContent_ReloadPicksUpNewPack(t *testing.T) {
	cs := newContentServer(t, 0)

	quotes, _, _ := newRemoteQuoteService(t, cs.URL, "fr")
	first := quotes.Index()

	require.NoError(t, quotes.Reload(context.Background()))

	assert.NotSame(t, first, quotes.Index())
	assert.Contains(t, quotes.Index().Locales(), "fr")
}

func TestRemoteContent_ForwardsRequestIDs(t *testing.T) {
	cs := newContentServer(t, 0)

	client, err := clients.New(testClientConfig(cs.URL), clients.WithIDSource(middleware.IDsFromContext))
	require.NoError(t, err)

	ctx := middleware.ContextWithRequestID(context.Background(), "req-123")
	ctx = middleware.ContextWithCorrelationID(ctx, "corr-456")

	_, err = acl.NewLocalePackAdapter(client, nil).FetchLocale(ctx, "fr")
	require.NoError(t, err)

	cs.mu.Lock()
	defer cs.mu.Unlock()

	require.Len(t, cs.headers, 1)
	assert.Equal(t, "req-123", cs.headers[0].Get(middleware.HeaderRequestID))
	assert.Equal(t, "corr-456", cs.headers[0].Get(middleware.HeaderCorrelationID))
}
