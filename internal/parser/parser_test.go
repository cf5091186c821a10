package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExtractor returns canned page text without touching the filesystem.
type fakeExtractor struct {
	pages []string
	err   error
}

func (f *fakeExtractor) Pages(_ context.Context, _ string) ([]string, error) {
	return f.pages, f.err
}

func TestParse(t *testing.T) {
	t.Parallel()

	p := New(&fakeExtractor{pages: []string{
		"Item 1. Business\nAcme Corp.",
		"",
		padBody("Note 1. Summary of Significant Accounting Policies"),
	}})

	doc, err := p.Parse(context.Background(), "acme.pdf", "acme-2024")
	require.NoError(t, err)

	assert.Equal(t, "acme-2024", doc.ID)
	require.Len(t, doc.Pages, 3)
	assert.Equal(t, 2, doc.Pages[1].Number)
	assert.Equal(t, "", doc.Pages[1].Text, "empty pages are kept, not dropped")
	require.NoError(t, doc.Validate())
}

func TestParse_ExtractorError(t *testing.T) {
	t.Parallel()

	p := New(&fakeExtractor{err: errors.New("corrupt xref table")})

	doc, err := p.Parse(context.Background(), "broken.pdf", "broken")
	assert.Nil(t, doc, "no partial document on parse failure")

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "broken.pdf", pe.Path)
}

func TestParse_NoPages(t *testing.T) {
	t.Parallel()

	p := New(&fakeExtractor{pages: nil})

	_, err := p.Parse(context.Background(), "empty.pdf", "empty")
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}

func TestParse_Idempotent(t *testing.T) {
	t.Parallel()

	p := New(&fakeExtractor{pages: []string{
		"Item 1. Business\nAcme Corp.",
		padBody("Note 1. Basis of Presentation"),
		"Note 2. Revenue Recognition",
	}})

	first, err := p.Parse(context.Background(), "acme.pdf", "acme")
	require.NoError(t, err)
	second, err := p.Parse(context.Background(), "acme.pdf", "acme")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
