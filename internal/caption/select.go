package caption

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Language is the caption language requested from the fetcher.
const Language = "en"

// TrackType selects between auto-generated and human-authored captions.
type TrackType string

const (
	TrackAuto   TrackType = "auto"
	TrackManual TrackType = "manual"
)

// ParseTrackType maps a request value to a TrackType. Anything other than
// "auto" (or empty) asks for human-authored captions.
func ParseTrackType(s string) TrackType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return TrackAuto
	}
	return TrackManual
}

var ErrCaptionNotFound = errors.New("caption file not found")

// NotFoundError reports that no downloaded file satisfied the track policy.
type NotFoundError struct {
	VideoID string
	Track   TrackType
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("caption file not found for video %q (%s)", e.VideoID, e.Track)
}

func (e *NotFoundError) Unwrap() error { return ErrCaptionNotFound }

var (
	langSuffix     = "." + Language + ".vtt"
	dashAutoSuffix = "." + Language + "-auto.vtt"
)

// isEnglishTrack reports whether name is an English WebVTT track, either
// {id}.en.vtt style or the dash-marked {id}.en-auto.vtt.
func isEnglishTrack(name string) bool {
	return strings.HasSuffix(name, langSuffix) || strings.HasSuffix(name, dashAutoSuffix)
}

// isAutoMarked reports whether a file name carries the auto-generated
// marker: an "auto" segment, dot- or dash-separated, after the video id.
// Video ids never contain dots, so the id itself is never inspected.
func isAutoMarked(name string) bool {
	stem := strings.TrimSuffix(name, ".vtt")
	i := strings.IndexByte(stem, '.')
	if i < 0 {
		return false
	}
	segments := strings.FieldsFunc(stem[i+1:], func(r rune) bool { return r == '.' || r == '-' })
	return slices.Contains(segments, "auto")
}

// SelectTrack picks the caption file to convert from the names found in a
// fetch directory. Names are scanned in sorted order so the result depends
// only on the set of names.
func SelectTrack(track TrackType, videoID string, names []string) (string, error) {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	switch track {
	case TrackAuto:
		for _, name := range sorted {
			if isEnglishTrack(name) && isAutoMarked(name) {
				return name, nil
			}
		}
		conventional := videoID + langSuffix
		for _, name := range sorted {
			if name == conventional {
				return name, nil
			}
		}
	default:
		for _, name := range sorted {
			if isEnglishTrack(name) && !isAutoMarked(name) {
				return name, nil
			}
		}
	}
	return "", &NotFoundError{VideoID: videoID, Track: track}
}
