// Package fetcher downloads caption tracks for a video into a directory.
//
// The heavy lifting (page scraping, signature handling, bot checks) belongs to
// yt-dlp; this package only builds its invocation and reads back metadata.
package fetcher

import (
	"context"
	"errors"

	"github.com/snarg/captioner/internal/caption"
)

// ErrFetch wraps every failure reported by the extraction tool.
var ErrFetch = errors.New("caption fetch failed")

// Request describes one caption download.
type Request struct {
	URL       string
	TrackType caption.TrackType
	Language  string
	OutDir    string
}

// Metadata is what the extractor reports about the video.
type Metadata struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Fetcher writes caption files named {id}.{lang}.vtt into req.OutDir.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (*Metadata, error)
}

// Credentials supplies authentication material for the extractor.
type Credentials interface {
	// CookiesFile returns a Netscape cookies file path, or "" for none.
	CookiesFile() string
}

// NoCredentials is used when no cookies are configured.
type NoCredentials struct{}

func (NoCredentials) CookiesFile() string { return "" }
