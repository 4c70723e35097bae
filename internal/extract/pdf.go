// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/pdiddy/transcript-extract/internal/poppler"
	"github.com/pdiddy/transcript-extract/pkg/types"
)

// pdftotextInstallHint is the message for a missing pdftotext binary.
const pdftotextInstallHint = "PDF support requires pdftotext (poppler-utils). " +
	"Install it: apt install poppler-utils, or brew install poppler, " +
	"or set pdf_backend: native"

// NewPDFBackend returns the backend registered under name.
func NewPDFBackend(name types.PDFBackend) (PDFBackend, error) {
	switch name {
	case types.PDFNative, "":
		return NativePDF{}, nil
	case types.PDFPdftotext:
		return PdftotextPDF{tool: poppler.NewPdftotext()}, nil
	default:
		return nil, fmt.Errorf("unsupported pdf backend %q", name)
	}
}

// extractPDF joins the pages of a PDF with blank lines. Pages whose text is
// empty are skipped, and so are whitespace-only pages, which the native
// parser returns for pages that carry only layout operators. Kept pages are
// not trimmed.
func (e *Extractor) extractPDF(ctx context.Context, path string) (string, error) {
	pages, err := e.pdf.Pages(ctx, path)
	if err != nil {
		var xerr *Error
		if !errors.As(err, &xerr) {
			err = ioError(path, err, types.KindMalformedDocument)
		}
		e.logger.Debug("pdf extraction failed",
			zap.String("path", path),
			zap.String("backend", e.pdf.Name()),
			zap.Error(err))
		return "", err
	}

	kept := make([]string, 0, len(pages))
	for _, p := range pages {
		if strings.TrimSpace(p) == "" {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, "\n\n"), nil
}

// NativePDF reads PDFs in-process with github.com/ledongthuc/pdf.
type NativePDF struct{}

func (NativePDF) Name() string { return string(types.PDFNative) }

// Pages returns the plain text of every page. The parser panics on some
// malformed input; panics are returned as errors.
func (NativePDF) Pages(_ context.Context, path string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = newError(types.KindMalformedDocument, path, fmt.Errorf("pdf parser panic: %v", r))
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, ioError(path, err, types.KindMalformedDocument)
	}
	defer f.Close()

	n := r.NumPage()
	pages = make([]string, 0, n)
	for i := 1; i <= n; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, newError(types.KindMalformedDocument, path, fmt.Errorf("page %d: %w", i, err))
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// pdftotextTool is the subset of poppler.Pdftotext the backend needs.
type pdftotextTool interface {
	Pages(ctx context.Context, path string) ([]string, error)
}

// PdftotextPDF delegates to poppler's pdftotext binary.
type PdftotextPDF struct {
	tool pdftotextTool
}

func (PdftotextPDF) Name() string { return string(types.PDFPdftotext) }

// Pages checks that path exists before running the tool so a missing file is
// reported as such rather than as a pdftotext failure.
func (b PdftotextPDF) Pages(ctx context.Context, path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, ioError(path, err, types.KindExtraction)
	}
	pages, err := b.tool.Pages(ctx, path)
	switch {
	case err == nil:
		return pages, nil
	case errors.Is(err, poppler.ErrNotInstalled):
		return nil, newError(types.KindMissingDependency, path, fmt.Errorf("%s: %w", pdftotextInstallHint, err))
	default:
		return nil, ioError(path, err, types.KindMalformedDocument)
	}
}
