package caption

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// headerRe matches the WEBVTT header at the very start of the document. The
	// greedy \s* swallows blank lines that directly follow the header.
	headerRe = regexp.MustCompile(`^WEBVTT\s*(?:\n|$)`)

	timestampRe  = regexp.MustCompile(`(\d{2}:\d{2}:\d{2})\.(\d{3})`)
	timingLineRe = regexp.MustCompile(`\d{2}:\d{2}:\d{2}\.\d{3} --> \d{2}:\d{2}:\d{2}\.\d{3}`)
	digitLineRe  = regexp.MustCompile(`(?m)^[ \t]*\d+[ \t\r]*$`)
	leadingWSRe  = regexp.MustCompile(`(?m)^[ \t\f\v\r]+`)
	blankRunRe   = regexp.MustCompile(`\n{3,}`)
)

// stripHeader removes one leading WEBVTT header line. Anything after the
// header on following lines (Kind:, Language:) is left in place.
func stripHeader(markup string) string {
	return headerRe.ReplaceAllString(markup, "")
}

// ToNative returns the markup unchanged.
func ToNative(markup string) string {
	return markup
}

// ToIndexedTimed converts WebVTT markup to SRT. Timestamps are rewritten
// textually, so any HH:MM:SS.mmm sequence in cue text is rewritten as well.
// Non-blank blocks are numbered 1..N in source order.
func ToIndexedTimed(markup string) string {
	content := stripHeader(markup)
	content = timestampRe.ReplaceAllString(content, "${1},${2}")

	var b strings.Builder
	n := 0
	for _, block := range strings.Split(content, "\n\n") {
		if strings.TrimSpace(block) == "" {
			continue
		}
		n++
		if n > 1 {
			b.WriteString("\n\n")
		}
		b.WriteString(strconv.Itoa(n))
		b.WriteByte('\n')
		b.WriteString(strings.Trim(block, "\r\n"))
	}
	return b.String()
}

// ToPlainText strips the header, timing lines and numeric cue identifiers,
// leaving the caption text with paragraph breaks preserved.
//
// Any line made up only of digits is dropped, including a caption that
// really is just a number.
func ToPlainText(markup string) string {
	content := stripHeader(markup)
	content = timingLineRe.ReplaceAllString(content, "")
	content = digitLineRe.ReplaceAllString(content, "")
	content = leadingWSRe.ReplaceAllString(content, "")
	content = blankRunRe.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}

// Convert renders markup in the requested format.
func Convert(markup string, f Format) (string, error) {
	switch f {
	case FormatNative:
		return ToNative(markup), nil
	case FormatIndexedTimed:
		return ToIndexedTimed(markup), nil
	case FormatPlainText:
		return ToPlainText(markup), nil
	}
	return "", ErrUnknownFormat
}
