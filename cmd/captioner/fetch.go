package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/snarg/captioner/internal/caption"
	"github.com/snarg/captioner/internal/download"
	"github.com/snarg/captioner/internal/fetcher"
	"github.com/snarg/captioner/internal/storage"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var trackFlag, formatFlag, outputFlag, dirFlag string

	cmd := &cobra.Command{
		Use:   "fetch <video-url>",
		Short: "Download a video's subtitles to a file",
		Long: "Download the English subtitles of a video and convert them.\n" +
			"The file is named after the video title unless --output is given;\n" +
			"use --output - to write to stdout.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := caption.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log := newLogger(cfg.LogLevel, stderr)

			cookies, err := fetcher.WatchCookieFile(cfg.CookiesFile, log)
			if err != nil {
				return fmt.Errorf("watch cookies file: %w", err)
			}
			defer cookies.Close()

			ytdlp := fetcher.NewYtDlp(cfg.YtDlpPath, cfg.FallbackCommand(), cookies, log)
			svc := download.NewService(ytdlp, download.Options{
				TempDir:      cfg.TempDir,
				FetchTimeout: cfg.FetchTimeout,
			}, log)

			res, err := svc.Download(cmd.Context(), download.Request{
				VideoURL:  args[0],
				TrackType: caption.ParseTrackType(trackFlag),
				Format:    format,
			})
			if err != nil {
				return err
			}

			if outputFlag == "-" {
				_, err := cmd.OutOrStdout().Write(res.Payload)
				return err
			}
			var path string
			if outputFlag != "" {
				path = outputFlag
				err = storage.WriteFileAtomic(path, res.Payload, 0o644)
			} else {
				path, err = storage.NewDir(dirFlag).Save(res.Filename, res.Payload)
			}
			if err != nil {
				return fmt.Errorf("write subtitles: %w", err)
			}
			abs, _ := filepath.Abs(path)
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %q (%s) to %s\n", res.Title, res.VideoID, abs)
			return nil
		},
	}

	cmd.Flags().StringVarP(&trackFlag, "type", "t", string(caption.TrackAuto), "Subtitle track: auto or manual")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "txt", "Output format: txt, srt or vtt")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file (- for stdout)")
	cmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Directory for the title-named output file")
	cmd.Flags().StringVar(&ctx.overrides.YtDlpPath, "yt-dlp", "", "Path to the yt-dlp executable")
	cmd.Flags().StringVar(&ctx.overrides.CookiesFile, "cookies", "", "Cookies file passed to yt-dlp")
	return cmd
}
