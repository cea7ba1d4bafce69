// Package download runs one subtitle request end to end: validate the URL,
// fetch captions into a scratch directory, pick the right track and convert
// it. The scratch directory never outlives the call.
package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/snarg/captioner/internal/caption"
	"github.com/snarg/captioner/internal/fetcher"
	"github.com/snarg/captioner/internal/metrics"
)

// Request is one subtitle download.
type Request struct {
	VideoURL  string
	TrackType caption.TrackType
	Format    caption.Format
}

// Result is the converted caption ready to send to a client.
type Result struct {
	Payload   []byte
	MediaType string
	Filename  string
	VideoID   string
	Title     string
}

// Options configures a Service.
type Options struct {
	// TempDir is the parent for per-request scratch directories ("" = os.TempDir).
	TempDir string
	// FetchTimeout bounds the extractor call. Zero means no extra limit.
	FetchTimeout time.Duration
}

// Service implements the fetch, select, convert pipeline.
type Service struct {
	fetcher fetcher.Fetcher
	opts    Options
	log     zerolog.Logger
	active  atomic.Int64
}

func NewService(f fetcher.Fetcher, opts Options, log zerolog.Logger) *Service {
	return &Service{
		fetcher: f,
		opts:    opts,
		log:     log.With().Str("component", "download").Logger(),
	}
}

// ActiveDownloads returns the number of requests currently in flight.
func (s *Service) ActiveDownloads() int64 {
	return s.active.Load()
}

// Download fetches and converts the captions for req. No partial result is
// returned on error.
func (s *Service) Download(ctx context.Context, req Request) (res *Result, err error) {
	defer func() {
		metrics.SubtitleDownloadsTotal.WithLabelValues(req.Format.String(), outcome(err)).Inc()
	}()

	if !req.Format.Valid() {
		return nil, caption.ErrUnknownFormat
	}
	videoID, canonical, err := ParseVideoURL(req.VideoURL)
	if err != nil {
		return nil, err
	}

	s.active.Add(1)
	defer s.active.Add(-1)

	log := s.log.With().
		Str("job_id", uuid.NewString()).
		Str("video_id", videoID).
		Str("track", string(req.TrackType)).
		Str("format", req.Format.String()).
		Logger()

	dir, err := os.MkdirTemp(s.opts.TempDir, "captioner-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			log.Warn().Err(rmErr).Str("dir", dir).Msg("failed to remove scratch dir")
		}
	}()

	fetchCtx := ctx
	if s.opts.FetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, s.opts.FetchTimeout)
		defer cancel()
	}

	start := time.Now()
	meta, err := s.fetcher.Fetch(fetchCtx, fetcher.Request{
		URL:       canonical,
		TrackType: req.TrackType,
		Language:  caption.Language,
		OutDir:    dir,
	})
	metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		log.Error().Err(err).Msg("caption fetch failed")
		return nil, err
	}
	if meta.ID != "" {
		videoID = meta.ID
	}

	names, err := listFiles(dir)
	if err != nil {
		return nil, err
	}
	name, err := caption.SelectTrack(req.TrackType, videoID, names)
	if err != nil {
		log.Warn().Strs("files", names).Msg("no matching caption file")
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("read caption file: %w", err)
	}
	payload, err := caption.Convert(string(data), req.Format)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("file", name).
		Int("bytes", len(payload)).
		Dur("elapsed", time.Since(start)).
		Msg("subtitle converted")

	return &Result{
		Payload:   []byte(payload),
		MediaType: req.Format.MediaType(),
		Filename:  Filename(meta.Title, req.Format),
		VideoID:   videoID,
		Title:     meta.Title,
	}, nil
}

func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list scratch dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidURL):
		return "invalid_url"
	case errors.Is(err, caption.ErrCaptionNotFound):
		return "not_found"
	case errors.Is(err, fetcher.ErrFetch):
		return "fetch_error"
	default:
		return "error"
	}
}
