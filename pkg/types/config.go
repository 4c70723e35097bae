// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PDFBackend identifies the tool used to pull text out of PDF files.
type PDFBackend string

const (
	// PDFNative parses PDFs in-process.
	PDFNative PDFBackend = "native"
	// PDFPdftotext shells out to poppler's pdftotext binary.
	PDFPdftotext PDFBackend = "pdftotext"
)

const (
	DefaultSourceDir  = "source_documents"
	DefaultOutputDir  = "output"
	DefaultOutputFile = "transcripts_extracted.json"
	DefaultWorkers    = 4
	DefaultLogLevel   = "info"
)

// ExtractConfig holds settings for an extraction run.
type ExtractConfig struct {
	// SourceDir is the directory holding the transcript files.
	SourceDir string `json:"source_dir" yaml:"source_dir" mapstructure:"source_dir"`

	// OutputDir receives the JSON artifact and the run log. It is created
	// when missing.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// OutputFile is the artifact file name inside OutputDir.
	OutputFile string `json:"output_file" yaml:"output_file" mapstructure:"output_file"`

	// GroupsFile is a YAML file mapping group labels to file names. When
	// empty, every supported file in SourceDir forms a single group.
	GroupsFile string `json:"groups_file,omitempty" yaml:"groups_file,omitempty" mapstructure:"groups_file"`

	// Workers bounds how many files are extracted concurrently (default 4).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// PDFBackend selects the PDF text backend: native or pdftotext.
	PDFBackend PDFBackend `json:"pdf_backend" yaml:"pdf_backend" mapstructure:"pdf_backend"`

	// LogLevel is the minimum level written to the console and log file.
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`

	// FailOnError makes the run exit non-zero when any file failed.
	FailOnError bool `json:"fail_on_error" yaml:"fail_on_error" mapstructure:"fail_on_error"`
}

// DefaultExtractConfig returns the configuration used when nothing is set.
func DefaultExtractConfig() ExtractConfig {
	return ExtractConfig{
		SourceDir:  DefaultSourceDir,
		OutputDir:  DefaultOutputDir,
		OutputFile: DefaultOutputFile,
		Workers:    DefaultWorkers,
		PDFBackend: PDFNative,
		LogLevel:   DefaultLogLevel,
	}
}

// Validate fills zero values with defaults and rejects settings that cannot
// be run.
func (c *ExtractConfig) Validate() error {
	if c.SourceDir == "" {
		c.SourceDir = DefaultSourceDir
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.OutputFile == "" {
		c.OutputFile = DefaultOutputFile
	}
	if c.Workers < 1 {
		c.Workers = DefaultWorkers
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}

	c.PDFBackend = PDFBackend(strings.ToLower(string(c.PDFBackend)))
	switch c.PDFBackend {
	case "":
		c.PDFBackend = PDFNative
	case PDFNative, PDFPdftotext:
	default:
		return fmt.Errorf("unsupported pdf backend %q: use %s or %s", c.PDFBackend, PDFNative, PDFPdftotext)
	}

	if filepath.Base(c.OutputFile) != c.OutputFile {
		return fmt.Errorf("output file %q must be a bare file name", c.OutputFile)
	}
	return nil
}

// OutputPath returns the full path of the JSON artifact.
func (c ExtractConfig) OutputPath() string {
	return filepath.Join(c.OutputDir, c.OutputFile)
}
