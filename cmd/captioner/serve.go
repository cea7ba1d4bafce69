package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/snarg/captioner"
	"github.com/snarg/captioner/internal/api"
	"github.com/snarg/captioner/internal/download"
	"github.com/snarg/captioner/internal/fetcher"
	"github.com/snarg/captioner/internal/metrics"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), ctx)
		},
	}
	cmd.Flags().StringVar(&ctx.overrides.HTTPAddr, "listen", "", "HTTP listen address (default :3000)")
	cmd.Flags().StringVar(&ctx.overrides.WebDir, "web-dir", "", "Serve web files from this directory instead of the embedded copy")
	cmd.Flags().StringVar(&ctx.overrides.YtDlpPath, "yt-dlp", "", "Path to the yt-dlp executable")
	cmd.Flags().StringVar(&ctx.overrides.CookiesFile, "cookies", "", "Cookies file passed to yt-dlp")
	return cmd
}

func runServe(parent context.Context, cc *commandContext) error {
	startTime := time.Now()

	cfg, err := cc.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := newLogger(cfg.LogLevel, os.Stdout)
	log.Info().Str("version", version).Msg("captioner starting")

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Cookies
	cookies, err := fetcher.WatchCookieFile(cfg.CookiesFile, log)
	if err != nil {
		return fmt.Errorf("watch cookies file: %w", err)
	}
	defer cookies.Close()

	// Extractor
	ytdlp := fetcher.NewYtDlp(cfg.YtDlpPath, cfg.FallbackCommand(), cookies, log)
	if err := ytdlp.Available(); err != nil {
		log.Warn().Err(err).Msg("yt-dlp not available; downloads will fail until it is installed")
	}

	svc := download.NewService(ytdlp, download.Options{
		TempDir:      cfg.TempDir,
		FetchTimeout: cfg.FetchTimeout,
	}, log)
	prometheus.MustRegister(metrics.NewCollector(svc, cookies))

	webFS, err := webFiles(cfg.WebDir)
	if err != nil {
		return err
	}
	if cfg.WebDir != "" {
		log.Info().Str("dir", cfg.WebDir).Msg("serving web files from disk")
	}

	// HTTP Server
	httpLog := log.With().Str("component", "http").Logger()
	srv := api.NewServer(cfg, api.ServerOptions{
		Downloader: svc,
		Extractor:  ytdlp,
		Cookies:    cookies,
		Stats:      svc,
		WebFS:      webFS,
		Version:    version,
		StartTime:  startTime,
	}, httpLog)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	// Wait for shutdown signal or server error
	var serveErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case serveErr = <-errCh:
		if serveErr != nil {
			log.Error().Err(serveErr).Msg("http server error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown error")
	}

	log.Info().Msg("captioner stopped")
	return serveErr
}

// webFiles returns the directory at dir, or the embedded web assets when dir
// is empty.
func webFiles(dir string) (fs.FS, error) {
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("web dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("web dir %s is not a directory", dir)
		}
		return os.DirFS(dir), nil
	}
	return fs.Sub(captioner.WebFiles, "web")
}
