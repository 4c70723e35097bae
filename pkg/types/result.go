// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// ErrorKind classifies why a single file could not be extracted.
type ErrorKind string

const (
	KindUnsupportedFormat ErrorKind = "unsupported_format"
	KindFileNotFound      ErrorKind = "file_not_found"
	KindDecode            ErrorKind = "decode_error"
	KindMissingDependency ErrorKind = "missing_dependency"
	KindMalformedDocument ErrorKind = "malformed_document"
	// KindExtraction covers failures that fit none of the other kinds.
	KindExtraction ErrorKind = "extraction_error"
)

// String renders the kind for messages ("file not found").
func (k ErrorKind) String() string {
	return strings.ReplaceAll(string(k), "_", " ")
}

// FileNotFoundMessage is the error text recorded for declared files that are
// absent from the source directory.
const FileNotFoundMessage = "File not found"

// ExtractionTask is one file to extract. Group and Filename come from the
// grouping configuration; Path is where the file is expected on disk.
type ExtractionTask struct {
	Group    string `json:"group" yaml:"group"`
	Filename string `json:"filename" yaml:"filename"`
	Path     string `json:"path" yaml:"path"`
}

// Failure describes why a task produced no text.
type Failure struct {
	Kind    ErrorKind
	Message string
}

// ExtractionResult is the outcome of a single task: either text with its
// counts, or a Failure. A failed result never carries text.
type ExtractionResult struct {
	Text         string
	CharCount    int
	WordEstimate int
	Failure      *Failure
}

// Succeeded builds a successful result. CharCount is the number of
// characters (runes) in text. WordEstimate is CharCount/2, a density
// heuristic for Chinese text; it over-counts space-delimited languages.
func Succeeded(text string) ExtractionResult {
	n := utf8.RuneCountInString(text)
	return ExtractionResult{
		Text:         text,
		CharCount:    n,
		WordEstimate: n / 2,
	}
}

// Failed builds a failed result.
func Failed(kind ErrorKind, message string) ExtractionResult {
	return ExtractionResult{Failure: &Failure{Kind: kind, Message: message}}
}

// OK reports whether the extraction succeeded.
func (r ExtractionResult) OK() bool {
	return r.Failure == nil
}

type successJSON struct {
	Text         string `json:"text"`
	CharCount    int    `json:"char_count"`
	WordEstimate int    `json:"word_estimate"`
}

type failureJSON struct {
	Error string `json:"error"`
}

// MarshalJSON writes {"text","char_count","word_estimate"} for successes and
// {"error"} for failures. HTML characters are left unescaped.
func (r ExtractionResult) MarshalJSON() ([]byte, error) {
	if r.Failure != nil {
		return MarshalUnescaped(failureJSON{Error: r.Failure.Message})
	}
	return MarshalUnescaped(successJSON{
		Text:         r.Text,
		CharCount:    r.CharCount,
		WordEstimate: r.WordEstimate,
	})
}

// MarshalUnescaped is json.Marshal without HTML escaping.
func MarshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
