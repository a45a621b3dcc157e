// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/senvora/epg/internal/epg"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file-or-url>",
		Short: "Summarise the channels and programmes of a guide",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.ensureSettings()
			if err != nil {
				return err
			}
			data, err := ctx.loader(s).Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			doc, err := epg.Decode(data)
			if err != nil {
				return err
			}

			summaries := epg.Summarize(doc)
			rows := make([][]string, 0, len(summaries))
			for _, cs := range summaries {
				rows = append(rows, []string{
					cs.ID,
					cs.Name,
					strconv.Itoa(cs.Programmes),
					cs.FirstStart,
					cs.LastStop,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Channel", "Name", "Programmes", "First start", "Last stop"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
			))
			fmt.Fprintf(out, "%d channels, %d programmes, %s", len(doc.Channels), len(doc.Programmes), humanize.Bytes(uint64(len(data))))
			if epg.IsGzip(data) {
				fmt.Fprint(out, " (gzip)")
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}
