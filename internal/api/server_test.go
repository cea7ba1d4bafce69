package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/snarg/captioner/internal/config"
	"github.com/snarg/captioner/internal/download"
)

func testRouter(authToken string) http.Handler {
	cfg := &config.Config{AuthToken: authToken}
	return NewRouter(cfg, ServerOptions{
		Downloader: &fakeDownloader{res: &download.Result{
			Payload:   []byte("Hello"),
			MediaType: "text/plain",
			Filename:  "Hello.txt",
		}},
		Extractor: stubExtractor{},
		WebFS:     testWebFS,
		Version:   "test",
		StartTime: time.Now(),
	}, zerolog.Nop())
}

func TestRouterRoutes(t *testing.T) {
	h := testRouter("")

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantIn     string
	}{
		{"subtitle_download", "POST", "/api/download-subtitle", `{"videoUrl":"https://youtu.be/abc"}`, http.StatusOK, "Hello"},
		{"health", "GET", "/api/v1/health", "", http.StatusOK, `"status":"healthy"`},
		{"date", "GET", "/api/date", "", http.StatusOK, "-"},
		{"ip", "GET", "/api/ip/1.1.1.1", "", http.StatusOK, `"query":"1.1.1.1"`},
		{"echo", "GET", "/api/anything?key=k", "", http.StatusOK, "You visited: /anything"},
		{"metrics", "GET", "/metrics", "", http.StatusOK, "captioner_http_requests_total"},
		{"index", "GET", "/", "", http.StatusOK, "<h1>home</h1>"},
		{"static_miss", "GET", "/missing.png", "", http.StatusNotFound, "<h1>gone</h1>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			h.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %q)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.wantIn) {
				t.Errorf("body %q does not contain %q", rec.Body.String(), tt.wantIn)
			}
			if rec.Header().Get("X-Request-ID") == "" {
				t.Error("missing X-Request-ID")
			}
		})
	}
}
