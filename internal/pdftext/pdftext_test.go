package pdftext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/evidence-cli/internal/config"
)

func TestNewExtractor(t *testing.T) {
	t.Parallel()

	ex, err := NewExtractor(config.ParserConfig{Extractor: "native"})
	require.NoError(t, err)
	assert.IsType(t, &Native{}, ex)

	ex, err = NewExtractor(config.ParserConfig{})
	require.NoError(t, err)
	assert.IsType(t, &Native{}, ex, "empty extractor defaults to native")

	ex, err = NewExtractor(config.ParserConfig{Extractor: "pdftotext", PdfToTextPath: "/usr/bin/pdftotext"})
	require.NoError(t, err)
	assert.IsType(t, &PdfToText{}, ex)

	_, err = NewExtractor(config.ParserConfig{Extractor: "ocr-magic"})
	assert.Error(t, err)
}
