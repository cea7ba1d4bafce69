package caption

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectTrack(t *testing.T) {
	tests := []struct {
		name    string
		track   TrackType
		names   []string
		want    string
		wantErr bool
	}{
		{
			name:  "auto_prefers_marked_file",
			track: TrackAuto,
			names: []string{"abc123.en.vtt", "abc123.auto.en.vtt"},
			want:  "abc123.auto.en.vtt",
		},
		{
			name:  "auto_falls_back_to_conventional_name",
			track: TrackAuto,
			names: []string{"abc123.en.vtt", "abc123.de.vtt"},
			want:  "abc123.en.vtt",
		},
		{
			name:    "auto_ignores_other_video_ids",
			track:   TrackAuto,
			names:   []string{"zzz999.en.vtt"},
			wantErr: true,
		},
		{
			name:  "manual_skips_auto_marked",
			track: TrackManual,
			names: []string{"abc123.auto.en.vtt", "abc123.en.vtt"},
			want:  "abc123.en.vtt",
		},
		{
			name:  "manual_accepts_any_english_file",
			track: TrackManual,
			names: []string{"other.en.vtt", "abc123.fr.vtt"},
			want:  "other.en.vtt",
		},
		{
			name:    "manual_only_auto_available",
			track:   TrackManual,
			names:   []string{"abc123.auto.en.vtt"},
			wantErr: true,
		},
		{
			name:  "auto_accepts_dash_marker",
			track: TrackAuto,
			names: []string{"abc123.en-auto.vtt"},
			want:  "abc123.en-auto.vtt",
		},
		{
			name:    "manual_rejects_dash_marker",
			track:   TrackManual,
			names:   []string{"abc123.en-auto.en.vtt", "abc123.en-auto.vtt"},
			wantErr: true,
		},
		{
			name:  "manual_ignores_auto_in_video_id",
			track: TrackManual,
			names: []string{"my-auto.en.vtt"},
			want:  "my-auto.en.vtt",
		},
		{
			name:    "empty_directory",
			track:   TrackAuto,
			names:   nil,
			wantErr: true,
		},
		{
			name:    "wrong_extension",
			track:   TrackManual,
			names:   []string{"abc123.en.srt", "abc123.en.vtt.part"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectTrack(tt.track, "abc123", tt.names)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrCaptionNotFound))
				var nf *NotFoundError
				require.True(t, errors.As(err, &nf))
				assert.Equal(t, "abc123", nf.VideoID)
				assert.Contains(t, err.Error(), "abc123")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectTrack_Deterministic(t *testing.T) {
	orders := [][]string{
		{"b.en.vtt", "a.en.vtt", "c.auto.en.vtt"},
		{"c.auto.en.vtt", "a.en.vtt", "b.en.vtt"},
		{"a.en.vtt", "c.auto.en.vtt", "b.en.vtt"},
	}
	for _, track := range []TrackType{TrackAuto, TrackManual} {
		first, err := SelectTrack(track, "a", orders[0])
		require.NoError(t, err)
		for _, names := range orders[1:] {
			got, err := SelectTrack(track, "a", names)
			require.NoError(t, err)
			assert.Equal(t, first, got, "track %s order %v", track, names)
		}
	}
}

func TestSelectTrack_DoesNotMutateInput(t *testing.T) {
	names := []string{"z.en.vtt", "a.en.vtt"}
	_, err := SelectTrack(TrackManual, "a", names)
	require.NoError(t, err)
	assert.Equal(t, []string{"z.en.vtt", "a.en.vtt"}, names)
}

func TestParseTrackType(t *testing.T) {
	assert.Equal(t, TrackAuto, ParseTrackType(""))
	assert.Equal(t, TrackAuto, ParseTrackType("auto"))
	assert.Equal(t, TrackAuto, ParseTrackType(" AUTO "))
	assert.Equal(t, TrackManual, ParseTrackType("manual"))
	assert.Equal(t, TrackManual, ParseTrackType("official"))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in        string
		want      Format
		mediaType string
		ext       string
	}{
		{"", FormatPlainText, "text/plain", "txt"},
		{"txt", FormatPlainText, "text/plain", "txt"},
		{"SRT", FormatIndexedTimed, "application/srt", "srt"},
		{"vtt", FormatNative, "application/vtt", "vtt"},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.mediaType, got.MediaType())
		assert.Equal(t, tt.ext, got.Extension())
	}

	_, err := ParseFormat("docx")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.False(t, Format(42).Valid())
	assert.Equal(t, "Format(42)", Format(42).String())
}

func TestIsAutoMarked(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"abc.auto.en.vtt", true},
		{"abc.en-auto.vtt", true},
		{"abc.en-auto.en.vtt", true},
		{"abc.en.vtt", false},
		{"auto.en.vtt", false},
		{"x-auto.en.vtt", false},
		{"abc.autogen.en.vtt", false},
		{"abc", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isAutoMarked(tt.name))
		})
	}
}
