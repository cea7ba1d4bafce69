package caption

import (
	"errors"
	"fmt"
	"strings"
)

// Format is a caption output representation.
type Format int

const (
	FormatPlainText Format = iota
	FormatIndexedTimed
	FormatNative
)

var ErrUnknownFormat = errors.New("unknown caption format")

var formatInfo = map[Format]struct {
	name, ext, mediaType string
}{
	FormatPlainText:    {"txt", "txt", "text/plain"},
	FormatIndexedTimed: {"srt", "srt", "application/srt"},
	FormatNative:       {"vtt", "vtt", "application/vtt"},
}

// Formats lists every supported format in display order.
func Formats() []Format {
	return []Format{FormatPlainText, FormatIndexedTimed, FormatNative}
}

// ParseFormat maps a request value to a Format. The empty string selects
// plain text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "txt", "text":
		return FormatPlainText, nil
	case "srt":
		return FormatIndexedTimed, nil
	case "vtt", "webvtt":
		return FormatNative, nil
	}
	return FormatPlainText, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func (f Format) String() string {
	if info, ok := formatInfo[f]; ok {
		return info.name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Extension is the file extension without the leading dot.
func (f Format) Extension() string {
	return formatInfo[f].ext
}

// MediaType is the Content-Type used when serving this format.
func (f Format) MediaType() string {
	return formatInfo[f].mediaType
}

// Valid reports whether f is one of the known formats.
func (f Format) Valid() bool {
	_, ok := formatInfo[f]
	return ok
}
