// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package poppler runs poppler's pdftotext binary to pull text out of PDFs.
package poppler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const binPdftotext = "pdftotext"

// pageBreak separates pages in pdftotext output.
const pageBreak = "\f"

// ErrNotInstalled is returned when the pdftotext binary is not on PATH.
var ErrNotInstalled = errors.New("pdftotext not found on PATH")

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunPiped(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunPiped(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// Pdftotext wraps the pdftotext command line tool.
type Pdftotext struct {
	bin  string
	exec executor
}

// NewPdftotext returns a Pdftotext that looks the binary up on PATH.
func NewPdftotext() *Pdftotext {
	return &Pdftotext{bin: binPdftotext, exec: &osExecutor{}}
}

// Available returns nil when the binary can be found, or an error wrapping
// ErrNotInstalled.
func (p *Pdftotext) Available() error {
	if _, err := p.exec.LookPath(p.bin); err != nil {
		return fmt.Errorf("%w: %v", ErrNotInstalled, err)
	}
	return nil
}

// Pages converts the PDF at path and returns one string per page in page
// order. Blank pages come back as empty or whitespace-only strings.
func (p *Pdftotext) Pages(ctx context.Context, path string) ([]string, error) {
	if err := p.Available(); err != nil {
		return nil, err
	}

	var out, stderr bytes.Buffer
	args := []string{"-layout", "-enc", "UTF-8", "-eol", "unix", path, "-"}
	if err := p.exec.RunPiped(ctx, p.bin, args, &out, &stderr); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("running %s on %s: %w: %s", p.bin, path, err, msg)
		}
		return nil, fmt.Errorf("running %s on %s: %w", p.bin, path, err)
	}

	pages := strings.Split(out.String(), pageBreak)
	// pdftotext terminates every page, including the last, with a form feed.
	if n := len(pages); n > 0 && strings.TrimSpace(pages[n-1]) == "" {
		pages = pages[:n-1]
	}
	return pages, nil
}
