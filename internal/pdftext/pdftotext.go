package pdftext

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/rotisserie/eris"
)

// PdfToText extracts text using the poppler pdftotext CLI tool. Useful for
// filings whose content streams the native reader cannot decode.
type PdfToText struct {
	binPath string
}

// NewPdfToText creates a PdfToText extractor. If binPath is empty,
// "pdftotext" is used.
func NewPdfToText(binPath string) *PdfToText {
	if binPath == "" {
		binPath = "pdftotext"
	}
	return &PdfToText{binPath: binPath}
}

// Pages runs pdftotext -layout and splits stdout on form feeds, which
// pdftotext emits between pages.
func (p *PdfToText) Pages(ctx context.Context, pdfPath string) ([]string, error) {
	cmd := exec.CommandContext(ctx, p.binPath, "-layout", pdfPath, "-")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, eris.Wrapf(err, "pdftext: pdftotext failed for %s: %s", pdfPath, stderr.String())
	}

	// Trailing form feed after the last page would otherwise produce a
	// phantom empty page.
	out := strings.TrimSuffix(stdout.String(), "\f")
	return strings.Split(out, "\f"), nil
}
