package download

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ErrInvalidURL is returned for locators that are not recognisable video URLs.
var ErrInvalidURL = errors.New("invalid video URL")

var videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var youtubeHosts = map[string]bool{
	"youtube.com":       true,
	"www.youtube.com":   true,
	"m.youtube.com":     true,
	"music.youtube.com": true,
}

// ParseVideoURL extracts the video ID from a YouTube URL and returns it with
// the canonical watch URL. A missing scheme is accepted.
func ParseVideoURL(raw string) (id, canonical string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}

	host := strings.ToLower(u.Hostname())
	switch {
	case host == "youtu.be":
		id = firstSegment(u.Path)
	case youtubeHosts[host]:
		segs := strings.Split(strings.Trim(u.Path, "/"), "/")
		switch {
		case segs[0] == "watch":
			id = u.Query().Get("v")
		case len(segs) >= 2 && (segs[0] == "shorts" || segs[0] == "embed" || segs[0] == "live" || segs[0] == "v"):
			id = segs[1]
		}
	default:
		return "", "", fmt.Errorf("%w: unsupported host %q", ErrInvalidURL, u.Hostname())
	}

	if !videoIDRe.MatchString(id) {
		return "", "", fmt.Errorf("%w: no video id in %q", ErrInvalidURL, raw)
	}
	return id, "https://www.youtube.com/watch?v=" + id, nil
}

func firstSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	return path
}
