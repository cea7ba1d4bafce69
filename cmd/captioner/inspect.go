package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/snarg/captioner/internal/caption"
)

func newInspectCommand() *cobra.Command {
	var (
		limit  int
		render string
	)

	cmd := &cobra.Command{
		Use:   "inspect <file.vtt>",
		Short: "List the cues of a WebVTT file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			markup, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			doc := caption.Parse(markup)

			if render != "" {
				format, err := caption.ParseFormat(render)
				if err != nil {
					return err
				}
				out, err := doc.Render(format)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
				return err
			}

			cues := doc.Cues
			if limit > 0 && len(cues) > limit {
				cues = cues[:limit]
			}
			rows := make([][]string, 0, len(cues))
			for i, cue := range cues {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					cue.Start.VTT(),
					cue.End.VTT(),
					strings.Join(cue.Text, " / "),
				})
			}

			out := cmd.OutOrStdout()
			if len(rows) > 0 {
				fmt.Fprintln(out, renderTable(
					[]string{"#", "Start", "End", "Text"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
				))
			}
			fmt.Fprintf(out, "%d cues, %s\n", len(doc.Cues), doc.Duration())
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many cues (0 = all)")
	cmd.Flags().StringVar(&render, "render", "", "Re-render the parsed cues as txt, srt or vtt instead of a table")
	return cmd
}
