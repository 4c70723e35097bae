// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns transcript files into plain text. Dispatch is by file
// extension only; each format has one extraction routine and every failure
// is returned as an *Error carrying a types.ErrorKind.
package extract

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/transcript-extract/pkg/types"
)

// PDFBackend returns the text of each page of a PDF in physical page order.
// Pages with no text may be returned as empty strings.
type PDFBackend interface {
	Name() string
	Pages(ctx context.Context, path string) ([]string, error)
}

// Extractor dispatches files to the matching format routine. It holds no
// per-file state and is safe for concurrent use.
type Extractor struct {
	logger *zap.Logger
	pdf    PDFBackend
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithPDFBackend replaces the default native PDF backend.
func WithPDFBackend(b PDFBackend) Option {
	return func(e *Extractor) { e.pdf = b }
}

// New creates an Extractor. A nil logger disables logging.
func New(logger *zap.Logger, opts ...Option) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Extractor{
		logger: logger,
		pdf:    NativePDF{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the text of the file at path.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	format, err := FormatOf(path)
	if err != nil {
		return "", err
	}

	switch format {
	case FormatDOCX:
		return e.extractDOCX(path)
	case FormatText:
		return extractText(path)
	case FormatPDF:
		return e.extractPDF(ctx, path)
	case FormatSRT, FormatVTT:
		return extractSubtitle(path)
	}
	return "", newError(types.KindUnsupportedFormat, path, fmt.Errorf("no extractor for format %s", format))
}
