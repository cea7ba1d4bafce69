package api

import (
	"context"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/snarg/captioner/internal/config"
	"github.com/snarg/captioner/internal/metrics"
)

type Server struct {
	http *http.Server
	log  zerolog.Logger
}

// ServerOptions carries the collaborators the router is built from.
// Cookies and Stats are optional.
type ServerOptions struct {
	Downloader Downloader
	Extractor  ExtractorStatus
	Cookies    CookieSource
	Stats      DownloadStats
	WebFS      fs.FS
	Version    string
	StartTime  time.Time
}

func NewServer(cfg *config.Config, opts ServerOptions, log zerolog.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      NewRouter(cfg, opts, log),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		log: log,
	}
}

// NewRouter builds the full HTTP handler tree.
func NewRouter(cfg *config.Config, opts ServerOptions, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(RequestID)
	r.Use(Logger(log))
	r.Use(Recoverer)
	r.Use(CORSWithOrigins(cfg.AllowedOrigins()))
	r.Use(metrics.InstrumentHandler)

	// Health and metrics are never behind auth
	health := NewHealthHandler(opts.Extractor, opts.Cookies, opts.Stats, opts.Version, opts.StartTime)
	r.Get("/api/v1/health", health.ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(BearerAuth(cfg.AuthToken))
			NewSubtitleHandler(opts.Downloader, log).Routes(r)
		})

		r.Get("/date", DateHandler(time.Now))
		r.Get("/ip/*", IPHandler)
		r.Get("/*", EchoHandler)
	})

	if opts.WebFS != nil {
		static := StaticHandler(opts.WebFS)
		r.Get("/*", static)
		r.Head("/*", static)
	}

	return r
}

func (s *Server) Start() error {
	s.log.Info().Str("addr", s.http.Addr).Msg("http server starting")
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("http server shutting down")
	return s.http.Shutdown(ctx)
}
