package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/snarg/captioner/internal/caption"
	"github.com/snarg/captioner/internal/download"
	"github.com/snarg/captioner/internal/fetcher"
)

// Downloader runs a subtitle download. Implemented by download.Service.
type Downloader interface {
	Download(ctx context.Context, req download.Request) (*download.Result, error)
}

// SubtitleRequest is the JSON body of POST /api/download-subtitle.
type SubtitleRequest struct {
	VideoURL     string `json:"videoUrl"`
	SubtitleType string `json:"subtitleType"`
	Format       string `json:"format"`
}

// SubtitleHandler serves subtitle downloads.
type SubtitleHandler struct {
	downloader Downloader
	log        zerolog.Logger
}

func NewSubtitleHandler(d Downloader, log zerolog.Logger) *SubtitleHandler {
	return &SubtitleHandler{
		downloader: d,
		log:        log.With().Str("handler", "subtitles").Logger(),
	}
}

// Routes registers the download endpoint.
func (h *SubtitleHandler) Routes(r chi.Router) {
	r.Post("/download-subtitle", h.Download)
}

// Download handles POST /api/download-subtitle.
// Unknown formats are served as plain text.
func (h *SubtitleHandler) Download(w http.ResponseWriter, r *http.Request) {
	var body SubtitleRequest
	if err := DecodeJSON(r, &body); err != nil {
		WriteErrorWithCode(w, http.StatusBadRequest, ErrInvalidBody, "invalid request body: "+err.Error())
		return
	}
	if body.VideoURL == "" {
		WriteErrorWithCode(w, http.StatusBadRequest, ErrInvalidURL, "videoUrl is required")
		return
	}

	format, err := caption.ParseFormat(body.Format)
	if err != nil {
		format = caption.FormatPlainText
	}

	res, err := h.downloader.Download(r.Context(), download.Request{
		VideoURL:  body.VideoURL,
		TrackType: caption.ParseTrackType(body.SubtitleType),
		Format:    format,
	})
	if err != nil {
		h.writeDownloadError(w, r, err)
		return
	}

	WriteAttachment(w, res.MediaType, res.Filename, res.Payload)
}

func (h *SubtitleHandler) writeDownloadError(w http.ResponseWriter, r *http.Request, err error) {
	if r.Context().Err() != nil {
		// client went away; the extractor was killed with it
		h.log.Debug().Err(err).Msg("download cancelled")
		return
	}
	switch {
	case errors.Is(err, download.ErrInvalidURL):
		WriteErrorWithCode(w, http.StatusBadRequest, ErrInvalidURL, err.Error())
	case errors.Is(err, caption.ErrCaptionNotFound):
		WriteErrorWithCode(w, http.StatusInternalServerError, ErrCaptionNotFound, "Failed to download subtitles: "+err.Error())
	case errors.Is(err, fetcher.ErrFetch):
		WriteErrorWithCode(w, http.StatusInternalServerError, ErrFetchFailed, "Failed to download subtitles: "+err.Error())
	default:
		h.log.Error().Err(err).Msg("subtitle download failed")
		WriteErrorWithCode(w, http.StatusInternalServerError, ErrInternal, err.Error())
	}
}
