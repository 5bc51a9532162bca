package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-webapp-plugins/internal/apidoc"
	"github.com/MKhiriev/go-webapp-plugins/internal/logger"
	"github.com/MKhiriev/go-webapp-plugins/internal/plugin"
	"github.com/MKhiriev/go-webapp-plugins/internal/utils"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAppInfo struct{}

func (stubAppInfo) GetAppVersion(context.Context) string { return "v0.0.1-test" }

// helloPlugin mounts GET /api/v1/hello, answering with the client address.
type helloPlugin struct {
	path  string
	ready error
}

func (p *helloPlugin) RegisterRoutes(r chi.Router) *apidoc.Fragment {
	r.Get(p.path, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(utils.ClientIP(r)))
	})
	return apidoc.NewFragment().AddOperation(http.MethodGet, p.path, &openapi3.Operation{
		OperationID: "hello",
		Responses:   apidoc.Responses(apidoc.OK("greeting", nil)),
	})
}

func (p *helloPlugin) Ready(context.Context) error { return p.ready }

func testConfig() Config {
	cfg := Config{
		BindAddress: "127.0.0.1",
		BindPort:    8080,
		Workers:     2,
		OpenAPI:     &OpenAPIConfig{SpecURI: "/api-docs/openapi.json", SwaggerURI: "/swagger-ui"},
	}
	cfg.SetDefaults()
	cfg.ShutdownTimeout = 2 * time.Second
	return cfg
}

func newTestHost(cfg Config, plugins ...*plugin.Guarded) *Host {
	return NewHost(cfg, plugins, stubAppInfo{}, logger.Nop())
}

func routeTable(t *testing.T, r chi.Routes) []string {
	t.Helper()
	var routes []string
	require.NoError(t, chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, method+" "+route)
		return nil
	}))
	sort.Strings(routes)
	return routes
}

// ── router ───────────────────────────────────────────────────────────────────

func TestNewRouter_IdenticalPerWorker(t *testing.T) {
	h := newTestHost(testConfig(), plugin.Guard("hello", &helloPlugin{path: "/api/v1/hello"}))

	r1, err := h.NewRouter()
	require.NoError(t, err)
	r2, err := h.NewRouter()
	require.NoError(t, err)

	routes := routeTable(t, r1)
	assert.Equal(t, routes, routeTable(t, r2))
	assert.Equal(t, []string{
		"GET /api-docs/openapi.json",
		"GET /api/v1/hello",
		"GET /health/live",
		"GET /health/ready",
		"GET /swagger-ui",
	}, routes)
}

func TestNewRouter_WithoutOpenAPI(t *testing.T) {
	cfg := testConfig()
	cfg.OpenAPI = nil

	r, err := newTestHost(cfg).NewRouter()
	require.NoError(t, err)
	assert.Equal(t, []string{"GET /health/live", "GET /health/ready"}, routeTable(t, r))
}

func TestNewRouter_ConflictingDocumentation(t *testing.T) {
	h := newTestHost(testConfig(),
		plugin.Guard("a", &helloPlugin{path: "/api/v1/hello"}),
		plugin.Guard("b", &helloPlugin{path: "/api/v1/hello"}),
	)

	_, err := h.NewRouter()
	require.ErrorIs(t, err, ErrBuildingRouter)
	assert.ErrorIs(t, err, apidoc.ErrDuplicateOperation)
}

func TestNewRouter_RealIP(t *testing.T) {
	cfg := testConfig()
	cfg.RealIP = true
	r, err := newTestHost(cfg, plugin.Guard("hello", &helloPlugin{path: "/api/v1/hello"})).NewRouter()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/hello", nil)
	req.Header.Set("X-Real-IP", "203.0.113.7")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, "203.0.113.7", rr.Body.String())
}

func TestNewRouter_IgnoresForwardingHeadersByDefault(t *testing.T) {
	r, err := newTestHost(testConfig(), plugin.Guard("hello", &helloPlugin{path: "/api/v1/hello"})).NewRouter()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/hello", nil)
	req.Header.Set("X-Real-IP", "203.0.113.7")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, "192.0.2.1", rr.Body.String())
}

func TestNewRouter_CORS(t *testing.T) {
	cfg := testConfig()
	cfg.CORS = &CORSConfig{Origins: []string{"https://admin.example.com"}}
	r, err := newTestHost(cfg).NewRouter()
	require.NoError(t, err)

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/health/live", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, "https://admin.example.com", preflight("https://admin.example.com").Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, preflight("https://evil.example.com").Header().Get("Access-Control-Allow-Origin"))
}

func TestNewRouter_RecoversFromPanics(t *testing.T) {
	r, err := newTestHost(testConfig(), plugin.Guard("boom", panicPlugin{})).NewRouter()
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

type panicPlugin struct{}

func (panicPlugin) RegisterRoutes(r chi.Router) *apidoc.Fragment {
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) { panic("boom") })
	return nil
}

// ── serve ────────────────────────────────────────────────────────────────────

func startHost(t *testing.T, h *Host) (string, context.CancelFunc, <-chan error) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Serve(ctx, ln) }()

	return "http://" + ln.Addr().String(), cancel, done
}

func waitStopped(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("host did not shut down")
		return nil
	}
}

func TestServe_ServesAndShutsDown(t *testing.T) {
	h := newTestHost(testConfig(), plugin.Guard("hello", &helloPlugin{path: "/api/v1/hello"}))
	baseURL, cancel, done := startHost(t, h)

	client := resty.New().SetBaseURL(baseURL)

	resp, err := client.R().Get("/health/ready")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.NotEmpty(t, resp.Header().Get("X-Trace-ID"))

	resp, err = client.R().Get("/api/v1/hello")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", resp.String())

	resp, err = client.R().Get("/api-docs/openapi.json")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	doc, err := openapi3.NewLoader().LoadFromData(resp.Body())
	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Value("/api/v1/hello"))
	assert.NotNil(t, doc.Paths.Value("/health/ready"))
	assert.Contains(t, doc.Components.SecuritySchemes, apidoc.SessionCookieScheme)
	assert.Equal(t, "v0.0.1-test", doc.Info.Version)

	resp, err = client.R().Get("/swagger-ui")
	require.NoError(t, err)
	assert.True(t, strings.Contains(resp.String(), "swagger-ui"))

	cancel()
	require.NoError(t, waitStopped(t, done))
}

func TestServe_NotReadyPlugin(t *testing.T) {
	h := newTestHost(testConfig(), plugin.Guard("db", &helloPlugin{path: "/api/v1/hello", ready: errors.New("connection refused")}))
	baseURL, cancel, done := startHost(t, h)
	defer func() {
		cancel()
		waitStopped(t, done)
	}()

	resp, err := resty.New().SetBaseURL(baseURL).R().Get("/health/ready")
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode())
	assert.Contains(t, resp.String(), `"db":"failing"`)
	assert.NotContains(t, resp.String(), "connection refused")
}

func TestServe_RouterFailureAbortsStartup(t *testing.T) {
	h := newTestHost(testConfig(),
		plugin.Guard("a", &helloPlugin{path: "/dup"}),
		plugin.Guard("b", &helloPlugin{path: "/dup"}),
	)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	err = h.Serve(context.Background(), ln)
	require.ErrorIs(t, err, ErrBuildingRouter)

	// the listener is released
	_, err = ln.Accept()
	assert.Error(t, err)
}

func TestRun_BindFailure(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	cfg := testConfig()
	cfg.BindPort = uint16(busy.Addr().(*net.TCPAddr).Port)

	err = newTestHost(cfg).Run(context.Background())
	require.ErrorIs(t, err, ErrListening)
}
