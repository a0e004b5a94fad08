package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/clipnamer/internal/naming"
	"github.com/nguyentantai21042004/clipnamer/internal/processor"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderProposals(w io.Writer, proposals []processor.Proposal) {
	if len(proposals) == 0 {
		fmt.Fprintln(w, "No videos found")
		return
	}
	colorize := shouldColorize(w)

	rows := make([][]string, 0, len(proposals))
	for i, p := range proposals {
		size := ""
		if p.Video.SizeBytes > 0 {
			size = humanize.Bytes(uint64(p.Video.SizeBytes))
		}
		note := ""
		if p.TranscriptError != "" {
			note = paint(colorize, "no transcript", text.FgYellow)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			p.Video.DisplayName,
			size,
			p.Multiplier.Label(),
			safety(colorize, p.Classification.Safe),
			p.Proposed.Name,
			note,
		})
	}

	fmt.Fprintln(w, renderTable(
		[]string{"#", "Source", "Size", "Multiplier", "Safe", "Proposed name", "Note"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight},
	))
}

func renderOutcomes(w io.Writer, result processor.BatchResult) {
	colorize := shouldColorize(w)

	rows := make([][]string, 0, len(result.Outcomes))
	for _, o := range result.Outcomes {
		status := paint(colorize, "renamed", text.FgGreen)
		if !o.Succeeded {
			status = paint(colorize, "failed", text.FgRed)
		}
		rows = append(rows, []string{o.SourceID, o.NewName, status, o.Error})
	}

	fmt.Fprintln(w, renderTable([]string{"Source", "New name", "Status", "Error"}, rows, nil))
	fmt.Fprintf(w, "%d renamed, %d failed\n", result.RenamedCount, len(result.FailedIDs))
}

func renderClassification(w io.Writer, c naming.Classification) {
	colorize := shouldColorize(w)
	rows := [][]string{
		{"Safe", safety(colorize, c.Safe)},
		{"Multiplier", fmt.Sprintf("%s (%s)", c.Multiplier, c.Multiplier.Label())},
		{"Description", c.Description},
	}
	fmt.Fprintln(w, renderTable([]string{"Field", "Value"}, rows, nil))
}

func safety(colorize, safe bool) string {
	if safe {
		return paint(colorize, "yes", text.FgGreen)
	}
	return paint(colorize, "no", text.FgRed)
}
