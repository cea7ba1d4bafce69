package api

import (
	"net/http"
	"time"
)

type HealthResponse struct {
	Status          string            `json:"status"`
	Version         string            `json:"version"`
	UptimeSeconds   int64             `json:"uptime_seconds"`
	Checks          map[string]string `json:"checks"`
	ActiveDownloads int64             `json:"active_downloads"`
}

// ExtractorStatus reports whether the caption extractor can run.
type ExtractorStatus interface {
	Available() error
}

// CookieSource reports the extractor cookie configuration.
type CookieSource interface {
	Configured() bool
	CookiesFile() string
}

// DownloadStats exposes in-flight download counts.
type DownloadStats interface {
	ActiveDownloads() int64
}

type HealthHandler struct {
	extractor ExtractorStatus
	cookies   CookieSource
	stats     DownloadStats
	version   string
	startTime time.Time
}

// NewHealthHandler creates the health endpoint. cookies and stats may be nil.
func NewHealthHandler(extractor ExtractorStatus, cookies CookieSource, stats DownloadStats, version string, startTime time.Time) *HealthHandler {
	return &HealthHandler{
		extractor: extractor,
		cookies:   cookies,
		stats:     stats,
		version:   version,
		startTime: startTime,
	}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	status := "healthy"
	httpStatus := http.StatusOK

	// Extractor check
	if err := h.extractor.Available(); err != nil {
		checks["extractor"] = "missing"
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["extractor"] = "ok"
	}

	// Cookies check
	switch {
	case h.cookies == nil || !h.cookies.Configured():
		checks["cookies"] = "not_configured"
	case h.cookies.CookiesFile() == "":
		checks["cookies"] = "missing"
		if status == "healthy" {
			status = "degraded"
		}
	default:
		checks["cookies"] = "ok"
	}

	resp := HealthResponse{
		Status:        status,
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Checks:        checks,
	}
	if h.stats != nil {
		resp.ActiveDownloads = h.stats.ActiveDownloads()
	}

	WriteJSON(w, httpStatus, resp)
}
