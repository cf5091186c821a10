package model

import "fmt"

// SectionType classifies a detected region of a filing.
type SectionType string

const (
	SectionNotes              SectionType = "notes"
	SectionAccountingPolicies SectionType = "accounting_policies"
	SectionMDA                SectionType = "mda"
	SectionFinancialStatement SectionType = "financial_statements"
	SectionBusiness           SectionType = "business"
)

// AllSectionTypes returns every detectable section type.
func AllSectionTypes() []SectionType {
	return []SectionType{
		SectionNotes,
		SectionAccountingPolicies,
		SectionMDA,
		SectionFinancialStatement,
		SectionBusiness,
	}
}

// IsValidSectionType reports whether s names a known section type.
func IsValidSectionType(s SectionType) bool {
	switch s {
	case SectionNotes, SectionAccountingPolicies, SectionMDA,
		SectionFinancialStatement, SectionBusiness:
		return true
	}
	return false
}

// DisplayName returns a human-readable section name.
func (s SectionType) DisplayName() string {
	switch s {
	case SectionNotes:
		return "Notes to Financial Statements"
	case SectionAccountingPolicies:
		return "Accounting Policies"
	case SectionMDA:
		return "Management's Discussion and Analysis"
	case SectionFinancialStatement:
		return "Financial Statements"
	case SectionBusiness:
		return "Business"
	}
	return string(s)
}

// Page holds the extracted text of a single filing page. Text may be empty
// for scanned/image-only pages.
type Page struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// Section is a detected logical region of the filing, spanning an inclusive
// 1-based page range. Ranges are disjoint per section type and fixed at
// parse time.
type Section struct {
	Type      SectionType `json:"type"`
	Name      string      `json:"name"`
	StartPage int         `json:"start_page"`
	EndPage   int         `json:"end_page"`
}

// Contains reports whether the section covers the given page number.
func (s Section) Contains(page int) bool {
	return page >= s.StartPage && page <= s.EndPage
}

// Document is the parsed, immutable representation of a filing. Pages are
// contiguous and 1-based; Sections are ordered by start page.
type Document struct {
	ID       string    `json:"id"`
	Pages    []Page    `json:"pages"`
	Sections []Section `json:"sections"`
}

// PageText returns the text of page n (1-based) and whether the page exists.
func (d *Document) PageText(n int) (string, bool) {
	if n < 1 || n > len(d.Pages) {
		return "", false
	}
	return d.Pages[n-1].Text, true
}

// SectionsOfType returns every detected section of the given type, in page
// order.
func (d *Document) SectionsOfType(t SectionType) []Section {
	var out []Section
	for _, s := range d.Sections {
		if s.Type == t {
			out = append(out, s)
		}
	}
	return out
}

// HasSection reports whether at least one section of the given type was
// detected.
func (d *Document) HasSection(t SectionType) bool {
	for _, s := range d.Sections {
		if s.Type == t {
			return true
		}
	}
	return false
}

// PagesInRange returns pages start..end inclusive, clamped to the document.
func (d *Document) PagesInRange(start, end int) []Page {
	if start < 1 {
		start = 1
	}
	if end > len(d.Pages) {
		end = len(d.Pages)
	}
	if start > end {
		return nil
	}
	return d.Pages[start-1 : end]
}

// Validate checks the document invariants: at least one page, contiguous
// 1-based page numbers, and per-type disjoint section ranges.
func (d *Document) Validate() error {
	if len(d.Pages) == 0 {
		return fmt.Errorf("document %s: no pages", d.ID)
	}
	for i, p := range d.Pages {
		if p.Number != i+1 {
			return fmt.Errorf("document %s: page %d numbered %d", d.ID, i+1, p.Number)
		}
	}
	lastEnd := make(map[SectionType]int)
	for _, s := range d.Sections {
		if !IsValidSectionType(s.Type) {
			return fmt.Errorf("document %s: unknown section type %q", d.ID, s.Type)
		}
		if s.StartPage < 1 || s.EndPage > len(d.Pages) || s.StartPage > s.EndPage {
			return fmt.Errorf("document %s: section %s has invalid range %d-%d",
				d.ID, s.Type, s.StartPage, s.EndPage)
		}
		if prev, ok := lastEnd[s.Type]; ok && s.StartPage <= prev {
			return fmt.Errorf("document %s: overlapping %s sections", d.ID, s.Type)
		}
		lastEnd[s.Type] = s.EndPage
	}
	return nil
}
