// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/transcript-extract/pkg/types"
)

// Format is the closed set of file formats the extractor understands.
type Format int

const (
	FormatDOCX Format = iota + 1
	FormatText
	FormatPDF
	FormatSRT
	FormatVTT
)

var formatNames = map[Format]string{
	FormatDOCX: "docx",
	FormatText: "text",
	FormatPDF:  "pdf",
	FormatSRT:  "srt",
	FormatVTT:  "vtt",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// extFormats maps lower-case extensions to formats.
var extFormats = map[string]Format{
	".docx": FormatDOCX,
	".txt":  FormatText,
	".pdf":  FormatPDF,
	".srt":  FormatSRT,
	".vtt":  FormatVTT,
}

// FormatOf returns the format for path based on its extension alone,
// compared case-insensitively. Unknown extensions yield an *Error of kind
// KindUnsupportedFormat.
func FormatOf(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extFormats[ext]; ok {
		return f, nil
	}
	return 0, newError(types.KindUnsupportedFormat, path, fmt.Errorf("unsupported file type %q", ext))
}

// IsSupported reports whether path has a supported extension.
func IsSupported(path string) bool {
	_, ok := extFormats[strings.ToLower(filepath.Ext(path))]
	return ok
}

// SupportedExtensions returns the supported extensions, sorted.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extFormats))
	for ext := range extFormats {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
