package caption

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Timestamp is a cue boundary with millisecond precision.
type Timestamp struct {
	Hours   int
	Minutes int
	Seconds int
	Millis  int
}

// Duration converts the timestamp to a time.Duration.
func (t Timestamp) Duration() time.Duration {
	return time.Duration(t.Hours)*time.Hour +
		time.Duration(t.Minutes)*time.Minute +
		time.Duration(t.Seconds)*time.Second +
		time.Duration(t.Millis)*time.Millisecond
}

// VTT formats as HH:MM:SS.mmm.
func (t Timestamp) VTT() string {
	return fmt.Sprintf("%02d:%02d:%02d.%03d", t.Hours, t.Minutes, t.Seconds, t.Millis)
}

// SRT formats as HH:MM:SS,mmm.
func (t Timestamp) SRT() string {
	return fmt.Sprintf("%02d:%02d:%02d,%03d", t.Hours, t.Minutes, t.Seconds, t.Millis)
}

// Cue is one timed caption entry. Start <= End is not checked.
type Cue struct {
	Start Timestamp
	End   Timestamp
	Text  []string
}

// Document is a parsed caption file. Cue order follows the source.
type Document struct {
	Cues []Cue
}

// cueTimingRe accepts both full (HH:MM:SS.mmm) and short (MM:SS.mmm) WebVTT
// timestamps, followed by optional cue settings.
var cueTimingRe = regexp.MustCompile(`^(?:(\d{2,}):)?(\d{2}):(\d{2})[.,](\d{3})\s+-->\s+(?:(\d{2,}):)?(\d{2}):(\d{2})[.,](\d{3})`)

// Parse reads WebVTT markup into a Document. It is lenient: the header and
// metadata blocks, NOTE/STYLE/REGION blocks, cue identifiers and blocks
// without a timing line are skipped rather than reported.
func Parse(markup string) *Document {
	content := strings.ReplaceAll(markup, "\r\n", "\n")
	content = strings.TrimPrefix(content, "\ufeff")

	doc := &Document{}
	for _, block := range strings.Split(content, "\n\n") {
		lines := strings.Split(strings.Trim(block, "\n"), "\n")
		timing := -1
		for i, line := range lines {
			if cueTimingRe.MatchString(strings.TrimSpace(line)) {
				timing = i
				break
			}
		}
		if timing < 0 {
			continue
		}
		m := cueTimingRe.FindStringSubmatch(strings.TrimSpace(lines[timing]))
		cue := Cue{
			Start: timestampFromMatch(m[1:5]),
			End:   timestampFromMatch(m[5:9]),
		}
		for _, line := range lines[timing+1:] {
			if line = strings.TrimSpace(line); line != "" {
				cue.Text = append(cue.Text, line)
			}
		}
		if len(cue.Text) == 0 {
			continue
		}
		doc.Cues = append(doc.Cues, cue)
	}
	return doc
}

func timestampFromMatch(parts []string) Timestamp {
	atoi := func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	}
	return Timestamp{
		Hours:   atoi(parts[0]),
		Minutes: atoi(parts[1]),
		Seconds: atoi(parts[2]),
		Millis:  atoi(parts[3]),
	}
}

// VTT renders the document as WebVTT.
func (d *Document) VTT() string {
	var b strings.Builder
	b.WriteString("WEBVTT\n")
	for _, c := range d.Cues {
		fmt.Fprintf(&b, "\n%s --> %s\n%s\n", c.Start.VTT(), c.End.VTT(), strings.Join(c.Text, "\n"))
	}
	return b.String()
}

// SRT renders the document as SRT with cues numbered from 1.
func (d *Document) SRT() string {
	blocks := make([]string, 0, len(d.Cues))
	for i, c := range d.Cues {
		blocks = append(blocks, fmt.Sprintf("%d\n%s --> %s\n%s", i+1, c.Start.SRT(), c.End.SRT(), strings.Join(c.Text, "\n")))
	}
	return strings.Join(blocks, "\n\n")
}

// Text joins the text of every cue, one cue per paragraph.
func (d *Document) Text() string {
	paras := make([]string, 0, len(d.Cues))
	for _, c := range d.Cues {
		paras = append(paras, strings.Join(c.Text, "\n"))
	}
	return strings.Join(paras, "\n\n")
}

// Render writes the parsed cues in format f. Unlike Convert it works from
// the cue model, so header metadata, notes and styling blocks are dropped.
func (d *Document) Render(f Format) (string, error) {
	switch f {
	case FormatNative:
		return d.VTT(), nil
	case FormatIndexedTimed:
		return d.SRT(), nil
	case FormatPlainText:
		return d.Text(), nil
	}
	return "", ErrUnknownFormat
}

// Duration is the end time of the last cue.
func (d *Document) Duration() time.Duration {
	if len(d.Cues) == 0 {
		return 0
	}
	return d.Cues[len(d.Cues)-1].End.Duration()
}
