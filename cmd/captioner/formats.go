package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/snarg/captioner/internal/caption"
)

func newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported output formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(caption.Formats()))
			for _, f := range caption.Formats() {
				rows = append(rows, []string{f.String(), "." + f.Extension(), f.MediaType()})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Format", "Extension", "Media type"}, rows, nil))
			return nil
		},
	}
}
