package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

func TestDateHandler(t *testing.T) {
	fixed := time.Date(2024, 3, 9, 7, 5, 1, 0, time.Local)
	rec := httptest.NewRecorder()
	DateHandler(func() time.Time { return fixed })(rec, httptest.NewRequest("GET", "/api/date", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "2024-03-09 07:05:01" {
		t.Errorf("body = %q", got)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func devtoolsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/api/ip/*", IPHandler)
	r.Get("/api/*", EchoHandler)
	return r
}

func TestIPHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/ip/8.8.8.8", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	devtoolsRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body IPResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("JSON decode: %v", err)
	}
	if body.Query != "8.8.8.8" {
		t.Errorf("Query = %q", body.Query)
	}
	if body.IP != "10.1.2.3" {
		t.Errorf("IP = %q", body.IP)
	}
	if body.Path != "/api/ip/8.8.8.8" {
		t.Errorf("Path = %q", body.Path)
	}
}

func TestEchoHandler(t *testing.T) {
	t.Run("echoes_path_and_key", func(t *testing.T) {
		rec := httptest.NewRecorder()
		devtoolsRouter().ServeHTTP(rec, httptest.NewRequest("GET", "/api/hello/world?key=abc", nil))
		body := rec.Body.String()
		if !strings.Contains(body, "You visited: /hello/world") {
			t.Errorf("body missing path: %q", body)
		}
		if !strings.Contains(body, "key=abc") {
			t.Errorf("body missing key: %q", body)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("Content-Type = %q", ct)
		}
	})

	t.Run("escapes_html", func(t *testing.T) {
		rec := httptest.NewRecorder()
		devtoolsRouter().ServeHTTP(rec, httptest.NewRequest("GET", "/api/x?key=%3Cscript%3E", nil))
		if strings.Contains(rec.Body.String(), "<script>") {
			t.Errorf("unescaped key in body: %q", rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), "&lt;script&gt;") {
			t.Errorf("expected escaped key: %q", rec.Body.String())
		}
	})
}
