// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// GroupSummary holds counts for one group. FileCount includes failures;
// TotalChars sums successful extractions only.
type GroupSummary struct {
	Label      string `json:"label"`
	FileCount  int    `json:"file_count"`
	TotalChars int    `json:"total_chars"`
	Succeeded  int    `json:"succeeded"`
	Failed     int    `json:"failed"`
}

// Summary holds per-group counts in group order and the overall totals.
type Summary struct {
	Groups     []GroupSummary `json:"groups"`
	TotalFiles int            `json:"total_files"`
	TotalChars int            `json:"total_chars"`
	Succeeded  int            `json:"succeeded"`
	Failed     int            `json:"failed"`
}

// HasFailures reports whether any file failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Summarize computes the summary of g.
func (g *Grouped) Summarize() Summary {
	var s Summary
	for _, label := range g.labels {
		gs := GroupSummary{Label: label}
		for _, f := range g.Files(label) {
			r := g.groups[label].results[f]
			gs.FileCount++
			if r.OK() {
				gs.Succeeded++
				gs.TotalChars += r.CharCount
			} else {
				gs.Failed++
			}
		}
		s.Groups = append(s.Groups, gs)
		s.TotalFiles += gs.FileCount
		s.TotalChars += gs.TotalChars
		s.Succeeded += gs.Succeeded
		s.Failed += gs.Failed
	}
	return s
}

// PrintSummary writes the human-readable summary: one line per group with
// file count and character total, then the overall total. Numbers use
// thousands separators.
func PrintSummary(w io.Writer, s Summary) {
	p := message.NewPrinter(language.English)
	fmt.Fprintln(w, "\n=== 提取摘要 ===")
	for _, g := range s.Groups {
		p.Fprintf(w, "%s: %d 个文件, 共 %d 字\n", g.Label, g.FileCount, g.TotalChars)
	}
	p.Fprintf(w, "\n总计: %d 个文件, 共 %d 字\n", s.TotalFiles, s.TotalChars)
	if s.Failed > 0 {
		p.Fprintf(w, "失败: %d 个文件\n", s.Failed)
	}
}
