package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/snarg/captioner/internal/caption"
	"github.com/snarg/captioner/internal/storage"
)

func newConvertCommand() *cobra.Command {
	var formatFlag, outputFlag string

	cmd := &cobra.Command{
		Use:   "convert <file.vtt>",
		Short: "Convert a local WebVTT file",
		Long:  "Convert a WebVTT file to txt, srt or vtt. Use - to read from stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := caption.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			markup, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			out, err := caption.Convert(markup, format)
			if err != nil {
				return err
			}
			if outputFlag == "" {
				_, err = io.WriteString(cmd.OutOrStdout(), out)
				return err
			}
			if err := storage.WriteFileAtomic(outputFlag, []byte(out), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "txt", "Output format: txt, srt or vtt")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file (default stdout)")
	return cmd
}

// readInput reads path, or the command's stdin when path is "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if strings.TrimSpace(path) == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
