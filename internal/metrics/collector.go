package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DownloadStats provides the metrics collector access to service state.
type DownloadStats interface {
	ActiveDownloads() int64
}

// CookieStatus reports whether extractor cookies are currently available.
type CookieStatus interface {
	CookiesFile() string
}

// Collector implements prometheus.Collector to read live gauges at scrape time.
type Collector struct {
	stats   DownloadStats
	cookies CookieStatus

	activeDownloads  *prometheus.Desc
	cookiesAvailable *prometheus.Desc
}

// NewCollector creates a collector that reads live state at scrape time.
// Either argument may be nil (metrics will report 0).
func NewCollector(stats DownloadStats, cookies CookieStatus) *Collector {
	return &Collector{
		stats:   stats,
		cookies: cookies,
		activeDownloads: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "active_downloads"),
			"Current number of in-progress subtitle downloads.",
			nil, nil,
		),
		cookiesAvailable: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "cookies_available"),
			"1 if an extractor cookies file is present, 0 otherwise.",
			nil, nil,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.activeDownloads
	ch <- c.cookiesAvailable
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	var active float64
	if c.stats != nil {
		active = float64(c.stats.ActiveDownloads())
	}
	ch <- prometheus.MustNewConstMetric(c.activeDownloads, prometheus.GaugeValue, active)

	var cookies float64
	if c.cookies != nil && c.cookies.CookiesFile() != "" {
		cookies = 1
	}
	ch <- prometheus.MustNewConstMetric(c.cookiesAvailable, prometheus.GaugeValue, cookies)
}
