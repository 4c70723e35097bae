// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
)

var (
	vttHeader     = regexp.MustCompile(`^WEBVTT.*?\n`)
	sequenceLine  = regexp.MustCompile(`(?m)^\d+\s*$`)
	timestampLine = regexp.MustCompile(`\d{2}:\d{2}:\d{2}[.,]\d{3}\s*-->\s*\d{2}:\d{2}:\d{2}[.,]\d{3}.*`)
	blankRun      = regexp.MustCompile(`\n{3,}`)
)

// extractSubtitle returns the spoken text of an SRT or VTT file with cue
// numbers and timings removed.
func extractSubtitle(path string) (string, error) {
	content, err := readDecoded(path)
	if err != nil {
		return "", err
	}
	return stripSubtitle(content), nil
}

// stripSubtitle normalizes line endings to LF, removes a leading WEBVTT header, sequence-number lines, and
// timestamp lines (with any cue settings after them), then collapses runs of
// blank lines. Timestamps that don't match HH:MM:SS.mmm --> HH:MM:SS.mmm
// (comma or dot before the milliseconds) stay in the text.
func stripSubtitle(content string) string {
	content = lineEndings.Replace(content)
	content = vttHeader.ReplaceAllString(content, "")
	content = sequenceLine.ReplaceAllString(content, "")
	content = timestampLine.ReplaceAllString(content, "")
	content = blankRun.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}
