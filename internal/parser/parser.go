// Package parser turns raw PDF files into the in-memory document model:
// page-ordered text plus detected logical sections.
package parser

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/evidence-cli/internal/model"
	"github.com/sells-group/evidence-cli/internal/pdftext"
)

// ParseError indicates the underlying file could not be parsed at all.
// No partial document is ever produced alongside a ParseError.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parser parses PDF filings into documents.
type Parser struct {
	extractor pdftext.Extractor
}

// New creates a Parser backed by the given page-text extractor.
func New(extractor pdftext.Extractor) *Parser {
	return &Parser{extractor: extractor}
}

// Parse extracts page text and detects sections. Pages that yield no text
// are recorded with empty strings; only an unreadable file fails the whole
// document. Parsing the same file twice yields identical page and section
// boundaries.
func (p *Parser) Parse(ctx context.Context, pdfPath, docID string) (*model.Document, error) {
	texts, err := p.extractor.Pages(ctx, pdfPath)
	if err != nil {
		return nil, &ParseError{Path: pdfPath, Err: err}
	}
	if len(texts) == 0 {
		return nil, &ParseError{Path: pdfPath, Err: fmt.Errorf("no pages extracted")}
	}

	pages := make([]model.Page, len(texts))
	empty := 0
	for i, t := range texts {
		pages[i] = model.Page{Number: i + 1, Text: t}
		if strings.TrimSpace(t) == "" {
			empty++
		}
	}

	doc := &model.Document{
		ID:       docID,
		Pages:    pages,
		Sections: detectSections(pages),
	}
	if err := doc.Validate(); err != nil {
		return nil, &ParseError{Path: pdfPath, Err: err}
	}

	zap.L().Info("parser: document parsed",
		zap.String("document", docID),
		zap.Int("pages", len(pages)),
		zap.Int("empty_pages", empty),
		zap.Int("sections", len(doc.Sections)),
	)
	return doc, nil
}
