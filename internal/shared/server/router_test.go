package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cloud-storage-bot/internal/files"
	"cloud-storage-bot/internal/relay"
	"cloud-storage-bot/internal/services/health"
	"cloud-storage-bot/internal/shared/config"
	"cloud-storage-bot/internal/shared/server/middleware"
)

type noopOrigin struct{}

func (noopOrigin) ResolveFile(context.Context, string) (string, error) { return "", nil }
func (noopOrigin) Dispatch(context.Context, relay.Kind, int64, string) error {
	return nil
}

type runningBot struct{}

func (runningBot) Running() bool { return true }

func testConfig(webAppDir string) config.Config {
	return config.Config{
		Env:             "dev",
		WebAppDir:       webAppDir,
		CORSAllowOrigin: []string{"*"},
		SendRatePerMin:  1,
	}
}

func testDeps() RouterDeps {
	return RouterDeps{
		Files:       files.NewHandler(files.NewService(files.NewMemoryRepo())),
		Relay:       relay.NewHandler(&relay.Retriever{Origin: noopOrigin{}}),
		Health:      health.NewService(runningBot{}),
		SendLimiter: middleware.NewRateLimiter(nil),
	}
}

func TestHealth(t *testing.T) {
	r := NewRouter(testConfig(""), testDeps())
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["bot"] != "running" {
		t.Fatalf("unexpected health body %v", body)
	}
	if resp.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected permissive CORS on health")
	}
}

func TestPreflightReturnsHeadersOnly(t *testing.T) {
	r := NewRouter(testConfig(""), testDeps())
	for _, path := range []string{"/api/files", "/api/download", "/api/send"} {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodOptions, path, nil))
		if resp.Code != http.StatusNoContent {
			t.Fatalf("%s: expected 204, got %d", path, resp.Code)
		}
		if resp.Body.Len() != 0 {
			t.Fatalf("%s: expected empty body, got %q", path, resp.Body.String())
		}
		if got := resp.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, OPTIONS" {
			t.Fatalf("%s: unexpected allow methods %q", path, got)
		}
	}
}

func TestSendIsRateLimited(t *testing.T) {
	r := NewRouter(testConfig(""), testDeps())
	send := func() int {
		resp := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/send", strings.NewReader(`{"file_id":"D1","chat_id":1}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(resp, req)
		return resp.Code
	}
	if code := send(); code != http.StatusOK {
		t.Fatalf("expected first send 200, got %d", code)
	}
	if code := send(); code != http.StatusTooManyRequests {
		t.Fatalf("expected second send 429, got %d", code)
	}
}

func TestIndexFallbackText(t *testing.T) {
	r := NewRouter(testConfig(t.TempDir()), testDeps())
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusOK || resp.Body.String() != indexFallback {
		t.Fatalf("expected fallback text, got %d %q", resp.Code, resp.Body.String())
	}
}

func TestIndexServesWebApp(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}
	r := NewRouter(testConfig(dir), testDeps())
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "app") {
		t.Fatalf("expected web app page, got %d %q", resp.Code, resp.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := NewRouter(testConfig(""), testDeps())
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "relay_http_requests_total") {
		t.Fatalf("expected http request counter in exposition")
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{"": ":8080", "9000": ":9000", ":7000": ":7000"}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
