//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/alaqidah-service/internal/adapters/cache"
	httpadapter "github.com/jsamuelsen/alaqidah-service/internal/adapters/http"
	"github.com/jsamuelsen/alaqidah-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/alaqidah-service/internal/app"
	"github.com/jsamuelsen/alaqidah-service/internal/i18n"
	"github.com/jsamuelsen/alaqidah-service/internal/platform/config"
	"github.com/jsamuelsen/alaqidah-service/internal/platform/telemetry"
	"github.com/jsamuelsen/alaqidah-service/internal/ports"
	"github.com/jsamuelsen/alaqidah-service/internal/sharecard"
)

// baseURL is BASE_URL when set, otherwise an in-process server started by
// TestFeatures.
var baseURL string

// newServiceHandler wires the full service on embedded content with the
// real card renderer.
func newServiceHandler(ctx context.Context) (http.Handler, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	loader := app.NewContentLoader(app.ContentLoaderConfig{Logger: logger})

	index, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	catalog, err := i18n.Load()
	if err != nil {
		return nil, err
	}

	fonts, err := sharecard.LoadFonts("")
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()

	collectors, err := telemetry.NewCollectors(registry)
	if err != nil {
		return nil, err
	}

	quotes := app.NewQuoteService(app.QuoteServiceConfig{
		Index:    index,
		Catalog:  catalog,
		Loader:   loader,
		Observer: collectors,
		Logger:   logger,
	})

	share := app.NewShareService(app.ShareServiceConfig{
		Quotes:   quotes,
		Renderer: sharecard.NewRenderer(fonts),
		Cache:    cache.NewMemory(32),
		CacheTTL: time.Minute,
		Observer: collectors,
		Logger:   logger,
	})

	health := ports.NewHealthRegistry()
	if err := health.Register(quotes); err != nil {
		return nil, err
	}

	gin.SetMode(gin.TestMode)
	engine := gin.New()

	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		ServiceName: "alaqidah-integration",
		Auth:        &config.AuthConfig{Enabled: true, AdminRole: config.DefaultAdminRole},
		Health:      handlers.NewHealthHandler(health, handlers.NewBuildInfo("integration", "none", ""), registry),
		Quotes:      handlers.NewQuoteHandler(quotes),
		Cards:       handlers.NewCardHandler(share),
		Preferences: handlers.NewPreferencesHandler(false),
		Admin:       handlers.NewAdminHandler(quotes, share),
	})

	return engine, nil
}

// testContext holds state shared across step definitions within a scenario.
type testContext struct {
	client       *http.Client
	response     *http.Response
	responseBody []byte
}

// reset clears response state and cookies between scenarios.
func (tc *testContext) reset() error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}

	tc.client = &http.Client{Timeout: 30 * time.Second, Jar: jar}
	tc.response = nil
	tc.responseBody = nil

	return nil
}

// InitializeScenario registers step definitions for each scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &testContext{}

	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, tc.reset()
	})

	ctx.Step(`^the service is running$`, tc.theServiceIsRunning)
	ctx.Step(`^I request GET "([^"]*)"$`, tc.iRequestGET)
	ctx.Step(`^I request GET "([^"]*)" with header "([^"]*)" set to "([^"]*)"$`, tc.iRequestGETWithHeader)
	ctx.Step(`^I request (PUT|POST) "([^"]*)" with body:$`, tc.iRequestWithBody)
	ctx.Step(`^I request DELETE "([^"]*)" as "([^"]*)" with roles "([^"]*)"$`, tc.iRequestDELETEAs)
	ctx.Step(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, tc.theResponseShouldContain)
	ctx.Step(`^the response header "([^"]*)" should be "([^"]*)"$`, tc.theResponseHeaderShouldBe)
	ctx.Step(`^the response header "([^"]*)" should contain "([^"]*)"$`, tc.theResponseHeaderShouldContain)
	ctx.Step(`^the JSON field "([^"]*)" should be "([^"]*)"$`, tc.theJSONFieldShouldBe)
	ctx.Step(`^the response should be a PNG (\d+) pixels wide$`, tc.theResponseShouldBeAPNG)
}

func (tc *testContext) theServiceIsRunning() error {
	if err := tc.do(http.MethodGet, "/-/live", nil, nil); err != nil {
		return fmt.Errorf("service is not running at %s: %w", baseURL, err)
	}

	if tc.response.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status %d", tc.response.StatusCode)
	}

	return nil
}

func (tc *testContext) do(method, path string, body io.Reader, header http.Header) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	return nil
}

func (tc *testContext) iRequestGET(path string) error {
	return tc.do(http.MethodGet, path, nil, nil)
}

func (tc *testContext) iRequestGETWithHeader(path, name, value string) error {
	header := http.Header{}
	header.Set(name, value)

	return tc.do(http.MethodGet, path, nil, header)
}

func (tc *testContext) iRequestWithBody(method, path string, body *godog.DocString) error {
	header := http.Header{}
	header.Set("Content-Type", "application/json")

	return tc.do(method, path, strings.NewReader(body.Content), header)
}

func (tc *testContext) iRequestDELETEAs(path, subject, roles string) error {
	header := http.Header{}
	header.Set("X-User-ID", subject)
	header.Set("X-User-Roles", roles)

	return tc.do(http.MethodDelete, path, nil, header)
}

func (tc *testContext) theResponseStatusShouldBe(expectedCode int) error {
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}

	if tc.response.StatusCode != expectedCode {
		return fmt.Errorf("expected status %d, got %d. Body: %s",
			expectedCode, tc.response.StatusCode, string(tc.responseBody))
	}

	return nil
}

func (tc *testContext) theResponseShouldContain(text string) error {
	if !bytes.Contains(tc.responseBody, []byte(text)) {
		return fmt.Errorf("response body does not contain %q.\nBody: %s", text, tc.responseBody)
	}

	return nil
}

func (tc *testContext) theResponseHeaderShouldBe(name, want string) error {
	if got := tc.response.Header.Get(name); got != want {
		return fmt.Errorf("header %s: expected %q, got %q", name, want, got)
	}

	return nil
}

func (tc *testContext) theResponseHeaderShouldContain(name, want string) error {
	if got := tc.response.Header.Get(name); !strings.Contains(got, want) {
		return fmt.Errorf("header %s: %q does not contain %q", name, got, want)
	}

	return nil
}

// theJSONFieldShouldBe compares the value at a dotted path, where numeric
// segments index arrays, with its fmt.Sprint form.
func (tc *testContext) theJSONFieldShouldBe(path, want string) error {
	var doc any
	if err := json.Unmarshal(tc.responseBody, &doc); err != nil {
		return fmt.Errorf("response is not JSON: %w.\nBody: %s", err, tc.responseBody)
	}

	value := doc
	for _, segment := range strings.Split(path, ".") {
		switch v := value.(type) {
		case map[string]any:
			value = v[segment]
		case []any:
			i, err := strconv.Atoi(segment)
			if err != nil || i < 0 || i >= len(v) {
				return fmt.Errorf("%s: no element %q", path, segment)
			}
			value = v[i]
		default:
			return fmt.Errorf("%s: cannot descend into %T at %q", path, value, segment)
		}
	}

	if got := fmt.Sprint(value); got != want {
		return fmt.Errorf("%s: expected %q, got %q.\nBody: %s", path, want, got, tc.responseBody)
	}

	return nil
}

func (tc *testContext) theResponseShouldBeAPNG(width int) error {
	cfg, err := png.DecodeConfig(bytes.NewReader(tc.responseBody))
	if err != nil {
		return fmt.Errorf("response is not a PNG: %w", err)
	}

	if cfg.Width != width {
		return fmt.Errorf("expected width %d, got %d", width, cfg.Width)
	}

	return nil
}

// TestFeatures runs the GoDog BDD test suite.
func TestFeatures(t *testing.T) {
	baseURL = os.Getenv("BASE_URL")
	if baseURL == "" {
		handler, err := newServiceHandler(context.Background())
		if err != nil {
			t.Fatalf("wiring service: %v", err)
		}

		server := httptest.NewServer(handler)
		defer server.Close()

		baseURL = server.URL
	}

	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
