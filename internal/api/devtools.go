package api

import (
	"fmt"
	"html"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// DateHandler returns the server's local time as plain text.
func DateHandler(now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, now().Format("2006-01-02 15:04:05"))
	}
}

// IPResponse is returned by GET /api/ip/*.
type IPResponse struct {
	Query string `json:"query"`
	IP    string `json:"ip"`
	Path  string `json:"path"`
}

// IPHandler echoes the requested path segment and the caller's address.
func IPHandler(w http.ResponseWriter, r *http.Request) {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	WriteJSON(w, http.StatusOK, IPResponse{
		Query: chi.URLParam(r, "*"),
		IP:    ip,
		Path:  r.URL.Path,
	})
}

// EchoHandler answers any other /api/ path with a small HTML page naming
// the path and the ?key= parameter.
func EchoHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<h1>captioner</h1><p>You visited: /%s</p><p>key=%s</p>",
		html.EscapeString(chi.URLParam(r, "*")),
		html.EscapeString(r.URL.Query().Get("key")))
}
