// Package pdftext supplies page-ordered text from PDF files. It is the only
// part of the pipeline that touches PDF bytes; everything downstream works
// on plain page text.
package pdftext

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/evidence-cli/internal/config"
)

// Extractor extracts per-page text from a PDF file. The returned slice is
// page-ordered; pages that yield no text (scanned/image pages) are present
// as empty strings rather than omitted.
type Extractor interface {
	Pages(ctx context.Context, pdfPath string) ([]string, error)
}

// NewExtractor creates an Extractor based on config.
func NewExtractor(cfg config.ParserConfig) (Extractor, error) {
	switch cfg.Extractor {
	case "native", "":
		return &Native{}, nil
	case "pdftotext":
		return NewPdfToText(cfg.PdfToTextPath), nil
	default:
		return nil, eris.Errorf("pdftext: unknown extractor %q", cfg.Extractor)
	}
}
