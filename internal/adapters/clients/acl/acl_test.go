package acl

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/alaqidah-service/internal/adapters/clients"
	"github.com/jsamuelsen/alaqidah-service/internal/domain"
	"github.com/jsamuelsen/alaqidah-service/internal/platform/config"
	"github.com/jsamuelsen/alaqidah-service/internal/ports"
)

var _ ports.LocalePackClient = (*LocalePackAdapter)(nil)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *LocalePackAdapter {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := clients.New(&clients.Config{
		ServiceName: DefaultServiceName,
		BaseURL:     server.URL,
		Timeout:     5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     1,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     100 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   2,
			Timeout:       30 * time.Second,
			HalfOpenLimit: 1,
		},
	})
	require.NoError(t, err)

	return NewLocalePackAdapter(client, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNewLocalePackAdapter_PanicsWithoutClient(t *testing.T) {
	assert.Panics(t, func() { NewLocalePackAdapter(nil, nil) })
}

func TestFetchLocale_Success(t *testing.T) {
	var path string

	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"locale": "fr",
			"version": "2024-11-02",
			"points": [
				{"number": 1, "heading": "Unicité", "body": "Allah est Un.", "commentary": "Explication", "topic": " Tawhid "},
				{"number": 2, "heading": "", "body": "Deuxième", "commentary": "", "topic": ""}
			]
		}`)
	})

	data, err := a.FetchLocale(context.Background(), " FR ")
	require.NoError(t, err)

	assert.Equal(t, "/locales/fr.json", path)
	assert.Equal(t, "fr", data.Locale)
	assert.Equal(t, []domain.QuoteEntry{
		{No: 1, Title: "Unicité", Text: "Allah est Un.", Explanation: "Explication", Category: "Tawhid"},
		{No: 2, Text: "Deuxième"},
	}, data.Entries)
}

func TestFetchLocale_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		locale  string
		checkFn func(error) bool
	}{
		{"empty locale", http.StatusOK, `{}`, "  ", domain.IsValidation},
		{"missing pack", http.StatusNotFound, `{"error":{"code":"NOT_FOUND","message":"no pack"}}`, "xx", domain.IsNotFound},
		{"server error", http.StatusInternalServerError, ``, "fr", domain.IsUnavailable},
		{"malformed json", http.StatusOK, `{"points": [`, "fr", domain.IsUnavailable},
		{"wrong locale", http.StatusOK, `{"locale":"de","points":[]}`, "fr", domain.IsValidation},
		{"invalid number", http.StatusOK, `{"locale":"fr","points":[{"number":0,"body":"x"}]}`, "fr", domain.IsValidation},
		{"unauthorized", http.StatusUnauthorized, ``, "fr", domain.IsForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := a.FetchLocale(context.Background(), tt.locale)
			require.Error(t, err)
			assert.True(t, tt.checkFn(err), "unexpected error: %v", err)
		})
	}
}

func TestLocalePackAdapter_HealthFollowsCircuit(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	assert.Equal(t, DefaultServiceName, a.Name())
	require.NoError(t, a.Check(context.Background()))

	for range 2 {
		_, err := a.FetchLocale(context.Background(), "fr")
		require.True(t, domain.IsUnavailable(err))
	}

	assert.ErrorIs(t, a.Check(context.Background()), clients.ErrCircuitOpen)

	_, err := a.FetchLocale(context.Background(), "fr")
	require.True(t, domain.IsUnavailable(err))
	assert.Contains(t, err.Error(), "circuit breaker open")
}

func TestMapHTTPError(t *testing.T) {
	response := func(status int, body string) *http.Response {
		return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body))}
	}

	tests := []struct {
		name    string
		resp    *http.Response
		err     error
		checkFn func(error) bool
	}{
		{"not found", response(http.StatusNotFound, ``), nil, domain.IsNotFound},
		{"conflict", response(http.StatusConflict, `{"message":"version skew"}`), nil, domain.IsConflict},
		{"bad request", response(http.StatusBadRequest, ``), nil, domain.IsValidation},
		{"forbidden", response(http.StatusForbidden, ``), nil, domain.IsForbidden},
		{"rate limited", response(http.StatusTooManyRequests, ``), nil, domain.IsUnavailable},
		{"bad gateway", response(http.StatusBadGateway, ``), nil, domain.IsUnavailable},
		{"unknown 4xx", response(http.StatusTeapot, ``), nil, domain.IsValidation},
		{"circuit open", nil, clients.ErrCircuitOpen, domain.IsUnavailable},
		{"retries exhausted", nil, clients.ErrMaxRetriesExceeded, domain.IsUnavailable},
		{"transport error", nil, errors.New("dial tcp: refused"), domain.IsUnavailable},
		{"no response", nil, nil, domain.IsUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapHTTPError(tt.resp, tt.err, DefaultServiceName, "fetch locale pack", "fr")
			require.Error(t, err)
			assert.True(t, tt.checkFn(err), "unexpected error: %v", err)
		})
	}

	assert.NoError(t, MapHTTPError(response(http.StatusOK, ``), nil, DefaultServiceName, "fetch", "fr"))
}

func TestMapHTTPError_NotFoundCarriesLocale(t *testing.T) {
	err := MapHTTPError(&http.Response{StatusCode: http.StatusNotFound}, nil, DefaultServiceName, "fetch", "ms")

	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "ms", nf.ID)
}

func TestMapHTTPError_ValidationDetails(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusUnprocessableEntity,
		Body:       io.NopCloser(strings.NewReader(`{"error":{"code":"VALIDATION_ERROR","message":"bad","details":{"locale":"unsupported"}}}`)),
	}

	err := MapHTTPError(resp, nil, DefaultServiceName, "fetch", "zz")

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "locale", ve.Field)
}

func TestParseErrorResponse(t *testing.T) {
	nested := ParseErrorResponse(strings.NewReader(`{"error":{"code":"NOT_FOUND","message":"gone"}}`))
	require.NotNil(t, nested)
	assert.Equal(t, "NOT_FOUND", nested.GetCode())
	assert.Equal(t, "gone", nested.GetMessage())

	flat := ParseErrorResponse(strings.NewReader(`{"code":"CONFLICT","message":"skew"}`))
	require.NotNil(t, flat)
	assert.Equal(t, "CONFLICT", flat.GetCode())
	assert.Equal(t, "skew", flat.GetMessage())

	assert.Nil(t, ParseErrorResponse(strings.NewReader(`not json`)))
	assert.Nil(t, ParseErrorResponse(strings.NewReader(`{}`)))
	assert.Nil(t, ParseErrorResponse(nil))
}

func TestDecodeResponse(t *testing.T) {
	got, err := DecodeResponse[localePackResponse](io.NopCloser(strings.NewReader(`{"locale":"ms","points":[]}`)))
	require.NoError(t, err)
	assert.Equal(t, "ms", got.Locale)

	_, err = DecodeResponse[localePackResponse](io.NopCloser(strings.NewReader(`[`)))
	require.Error(t, err)

	_, err = DecodeResponse[localePackResponse](nil)
	require.Error(t, err)
}

func TestTranslateSlice_StopsAtFirstError(t *testing.T) {
	_, err := TranslateSlice([]externalPoint{{Number: 1}, {Number: -1}, {Number: 3}}, translatePoint)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "translating item 1")
	assert.True(t, domain.IsValidation(err))
}
