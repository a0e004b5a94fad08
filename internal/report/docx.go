// Package report exports proposal runs: a .docx listing for review and a
// JSON plan file that can be edited and applied later.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/clipnamer/internal/processor"
)

const (
	fontName = "Times New Roman"
	fontSize = 12

	// maxTranscriptRunes keeps long transcripts from dominating the report.
	maxTranscriptRunes = 400
)

// ProposalsDocx writes one section per proposal to outputPath.
func ProposalsDocx(title string, proposals []processor.Proposal, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)
	addStyledRun(doc.AddParagraph(""), fmt.Sprintf("Generated %s, %d videos", time.Now().Format(time.RFC1123), len(proposals)), false, fontSize)

	for _, p := range proposals {
		doc.AddParagraph("")
		addStyledRun(doc.AddParagraph(""), p.Proposed.Name, true, 14)

		addField(doc.AddParagraph(""), "Source", sourceLine(p))
		addField(doc.AddParagraph(""), "Multiplier", fmt.Sprintf("%s (%s)", p.Multiplier, p.Multiplier.Label()))
		addField(doc.AddParagraph(""), "TikTok safe", yesNo(p.Classification.Safe))
		addField(doc.AddParagraph(""), "Description", p.Classification.Description)
		addField(doc.AddParagraph(""), "Duration", fmt.Sprintf("%d sec", p.DurationSeconds))
		if p.Proposed.Edited {
			addField(doc.AddParagraph(""), "Edited", "yes")
		}
		if p.TranscriptError != "" {
			addField(doc.AddParagraph(""), "Transcript unavailable", p.TranscriptError)
		}
		if p.Transcript != "" {
			addField(doc.AddParagraph(""), "Transcript", truncate(p.Transcript, maxTranscriptRunes))
		}
	}

	return doc.SaveTo(outputPath)
}

// OutcomesDocx writes the result of a rename batch to outputPath.
func OutcomesDocx(title string, result processor.BatchResult, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)
	addStyledRun(doc.AddParagraph(""), fmt.Sprintf("%d renamed, %d failed", result.RenamedCount, len(result.FailedIDs)), false, fontSize)

	for _, o := range result.Outcomes {
		p := doc.AddParagraph("")
		if o.Succeeded {
			p.AddText("OK ").Font(fontName).Size(fontSize).Color("000000").Bold(true)
			p.AddText(o.SourceID + " -> " + o.NewName).Font(fontName).Size(fontSize).Color("000000")
			continue
		}
		p.AddText("FAILED ").Font(fontName).Size(fontSize).Color("C00000").Bold(true)
		p.AddText(fmt.Sprintf("%s -> %s: %s", o.SourceID, o.NewName, o.Error)).Font(fontName).Size(fontSize).Color("000000")
	}

	return doc.SaveTo(outputPath)
}

func sourceLine(p processor.Proposal) string {
	line := p.Video.DisplayName
	if p.Video.SizeBytes > 0 {
		line += " (" + humanize.Bytes(uint64(p.Video.SizeBytes)) + ")"
	}
	return line
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addField(p *docx.Paragraph, label, value string) {
	p.AddText(label + ": ").Font(fontName).Size(fontSize).Color("000000").Bold(true)
	p.AddText(value).Font(fontName).Size(fontSize).Color("000000")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
