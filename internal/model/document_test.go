package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDoc() *Document {
	return &Document{
		ID: "acme-2024",
		Pages: []Page{
			{Number: 1, Text: "Item 1. Business"},
			{Number: 2, Text: "Consolidated Balance Sheets"},
			{Number: 3, Text: "Notes to Consolidated Financial Statements"},
			{Number: 4, Text: "Note 2. Property and Equipment"},
		},
		Sections: []Section{
			{Type: SectionBusiness, Name: "Business", StartPage: 1, EndPage: 1},
			{Type: SectionFinancialStatement, Name: "Financial Statements", StartPage: 2, EndPage: 2},
			{Type: SectionNotes, Name: "Notes", StartPage: 3, EndPage: 4},
		},
	}
}

func TestDocument_Validate(t *testing.T) {
	t.Parallel()
	require.NoError(t, testDoc().Validate())
}

func TestDocument_Validate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Document)
	}{
		{"no pages", func(d *Document) { d.Pages = nil }},
		{"non-contiguous pages", func(d *Document) { d.Pages[2].Number = 7 }},
		{"unknown section type", func(d *Document) { d.Sections[0].Type = "weird" }},
		{"section out of range", func(d *Document) { d.Sections[2].EndPage = 99 }},
		{"inverted range", func(d *Document) { d.Sections[2].StartPage = 4; d.Sections[2].EndPage = 3 }},
		{"overlapping same type", func(d *Document) {
			d.Sections = append(d.Sections, Section{Type: SectionNotes, StartPage: 4, EndPage: 4})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := testDoc()
			tt.mutate(doc)
			assert.Error(t, doc.Validate())
		})
	}
}

func TestDocument_PageText(t *testing.T) {
	t.Parallel()
	doc := testDoc()

	text, ok := doc.PageText(2)
	require.True(t, ok)
	assert.Equal(t, "Consolidated Balance Sheets", text)

	_, ok = doc.PageText(0)
	assert.False(t, ok)
	_, ok = doc.PageText(5)
	assert.False(t, ok)
}

func TestDocument_PagesInRange_Clamps(t *testing.T) {
	t.Parallel()
	doc := testDoc()

	pages := doc.PagesInRange(-3, 99)
	require.Len(t, pages, 4)
	assert.Equal(t, 1, pages[0].Number)

	assert.Nil(t, doc.PagesInRange(5, 9))
}

func TestDocument_SectionsOfType(t *testing.T) {
	t.Parallel()
	doc := testDoc()

	notes := doc.SectionsOfType(SectionNotes)
	require.Len(t, notes, 1)
	assert.Equal(t, 3, notes[0].StartPage)

	assert.Empty(t, doc.SectionsOfType(SectionMDA))
	assert.True(t, doc.HasSection(SectionBusiness))
	assert.False(t, doc.HasSection(SectionMDA))
}

func TestSection_Contains(t *testing.T) {
	t.Parallel()
	s := Section{Type: SectionNotes, StartPage: 3, EndPage: 5}
	assert.True(t, s.Contains(3))
	assert.True(t, s.Contains(5))
	assert.False(t, s.Contains(2))
	assert.False(t, s.Contains(6))
}

func TestTokenUsage_Add(t *testing.T) {
	t.Parallel()
	a := TokenUsage{InputTokens: 100, OutputTokens: 10, CacheCreationTokens: 5, CacheReadTokens: 2, Cost: 0.5}
	a.Add(TokenUsage{InputTokens: 50, OutputTokens: 5, CacheCreationTokens: 1, CacheReadTokens: 8, Cost: 0.25})

	assert.Equal(t, 150, a.InputTokens)
	assert.Equal(t, 15, a.OutputTokens)
	assert.Equal(t, 6, a.CacheCreationTokens)
	assert.Equal(t, 10, a.CacheReadTokens)
	assert.InDelta(t, 0.75, a.Cost, 1e-9)
}
