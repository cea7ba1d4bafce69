package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/snarg/captioner/internal/caption"
)

// metadataTemplate makes yt-dlp print {"id":..,"title":..} once the
// subtitles have been written.
const metadataTemplate = "%(.{id,title})j"

// runFunc executes a command and returns its stdout. On failure the error
// carries whatever the command wrote to stderr.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// YtDlp fetches captions by running the yt-dlp command line tool.
type YtDlp struct {
	command  []string
	fallback []string
	creds    Credentials
	run      runFunc
	log      zerolog.Logger
}

// NewYtDlp creates a fetcher that runs path, retrying once through fallback
// (e.g. ["python3", "-m", "yt_dlp"]) when the primary invocation fails.
// fallback may be nil.
func NewYtDlp(path string, fallback []string, creds Credentials, log zerolog.Logger) *YtDlp {
	if creds == nil {
		creds = NoCredentials{}
	}
	return &YtDlp{
		command:  []string{path},
		fallback: fallback,
		creds:    creds,
		run:      runCommand,
		log:      log.With().Str("component", "yt-dlp").Logger(),
	}
}

// Available reports whether the primary executable, or failing that the
// fallback, can be found in PATH.
func (y *YtDlp) Available() error {
	_, err := exec.LookPath(y.command[0])
	if err == nil {
		return nil
	}
	if len(y.fallback) > 0 {
		if _, ferr := exec.LookPath(y.fallback[0]); ferr == nil {
			return nil
		}
	}
	return fmt.Errorf("executable %q not found in PATH: %w", y.command[0], err)
}

func (y *YtDlp) Fetch(ctx context.Context, req Request) (*Metadata, error) {
	args := y.args(req)

	start := time.Now()
	out, err := y.invoke(ctx, y.command, args)
	if err != nil && len(y.fallback) > 0 && ctx.Err() == nil {
		y.log.Warn().Err(err).Strs("fallback", y.fallback).Msg("yt-dlp failed, retrying with fallback command")
		out, err = y.invoke(ctx, y.fallback, args)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	meta, err := parseMetadata(out)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	y.log.Debug().
		Str("video_id", meta.ID).
		Dur("duration", time.Since(start)).
		Msg("captions fetched")
	return meta, nil
}

func (y *YtDlp) invoke(ctx context.Context, argv []string, args []string) ([]byte, error) {
	full := append(append([]string{}, argv[1:]...), args...)
	return y.run(ctx, argv[0], full...)
}

func (y *YtDlp) args(req Request) []string {
	lang := req.Language
	if lang == "" {
		lang = caption.Language
	}
	args := []string{
		"--skip-download",
		"--no-simulate",
		"--no-playlist",
		"--no-warnings",
		"--write-subs",
	}
	if req.TrackType == caption.TrackAuto {
		args = append(args, "--write-auto-subs")
	}
	args = append(args,
		"--sub-langs", lang,
		"--sub-format", "vtt",
		"--output", filepath.Join(req.OutDir, "%(id)s.%(ext)s"),
		"--print", metadataTemplate,
	)
	if cookies := y.creds.CookiesFile(); cookies != "" {
		args = append(args, "--cookies", cookies)
	}
	return append(args, "--", req.URL)
}

// parseMetadata reads the last JSON object line from yt-dlp's stdout.
func parseMetadata(out []byte) (*Metadata, error) {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(line, "{") {
			continue
		}
		var meta Metadata
		if err := json.Unmarshal([]byte(line), &meta); err != nil {
			return nil, fmt.Errorf("parse yt-dlp metadata: %w", err)
		}
		if meta.ID == "" {
			return nil, errors.New("yt-dlp metadata has no video id")
		}
		if meta.Title == "" {
			meta.Title = "Unknown"
		}
		return &meta, nil
	}
	return nil, errors.New("yt-dlp printed no metadata")
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return nil, fmt.Errorf("%s: %w: %s", name, err, detail)
	}
	return stdout.Bytes(), nil
}
