package parser

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sells-group/evidence-cli/internal/model"
)

// Heading patterns per section type, matched case-insensitively against
// page text. Order matters: the first matching type wins for a page.
var sectionPatterns = []struct {
	Type     model.SectionType
	Patterns []*regexp.Regexp
}{
	{model.SectionNotes, []*regexp.Regexp{
		regexp.MustCompile(`notes?\s+to\s+(the\s+)?(consolidated\s+)?financial\s+statements`),
		regexp.MustCompile(`(?m)^note\s+\d+[.:\s]`),
		regexp.MustCompile(`footnotes?\s+to`),
	}},
	{model.SectionAccountingPolicies, []*regexp.Regexp{
		regexp.MustCompile(`(significant\s+)?accounting\s+policies`),
		regexp.MustCompile(`basis\s+of\s+presentation`),
	}},
	{model.SectionMDA, []*regexp.Regexp{
		regexp.MustCompile(`management.?s?\s+discussion\s+and\s+analysis`),
		regexp.MustCompile(`\bmd&a\b`),
		regexp.MustCompile(`results\s+of\s+operations`),
	}},
	{model.SectionFinancialStatement, []*regexp.Regexp{
		regexp.MustCompile(`consolidated\s+statements?\s+of\s+(operations?|income)`),
		regexp.MustCompile(`consolidated\s+balance\s+sheets?`),
		regexp.MustCompile(`consolidated\s+statements?\s+of\s+cash\s+flows?`),
		regexp.MustCompile(`consolidated\s+statements?\s+of\s+(stockholders?|shareholders?)`),
	}},
	{model.SectionBusiness, []*regexp.Regexp{
		regexp.MustCompile(`item\s+1\.?\s+business`),
		regexp.MustCompile(`business\s+overview`),
	}},
}

// noteOnePattern marks the true start of the notes section ("Note 1" with
// substantial body text, as opposed to a table-of-contents mention).
var noteOnePattern = regexp.MustCompile(`\bnote\s+1[.:\s-]`)

// noteBodyPattern identifies continuation pages inside the notes section.
var noteBodyPattern = regexp.MustCompile(`(?m)^note\s+\d+[.:\s]`)

// notesExitPatterns signal the end of the notes section.
var notesExitPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^signatures?\s*$`),
	regexp.MustCompile(`exhibit\s+index`),
	regexp.MustCompile(`exhibits?\s+and\s+financial`),
	regexp.MustCompile(`part\s+iv`),
	regexp.MustCompile(`power\s+of\s+attorney`),
}

// tocMinBodyLen distinguishes a real "Note 1" page from a table-of-contents
// mention: TOC pages carry little text.
const tocMinBodyLen = 1000

// detectSections scans pages in order and assigns section boundaries. The
// first page matching a heading pattern opens a section of that type, which
// closes at the next detected heading or end-of-document. Fragmented notes
// ranges are merged afterwards.
func detectSections(pages []model.Page) []model.Section {
	var raw []model.Section
	var current model.SectionType
	currentStart := 0
	inNotes := false

	closeCurrent := func(endPage int) {
		if current != "" && currentStart > 0 {
			raw = append(raw, model.Section{
				Type:      current,
				Name:      current.DisplayName(),
				StartPage: currentStart,
				EndPage:   endPage,
			})
		}
	}

	for _, page := range pages {
		lower := strings.ToLower(page.Text)

		detected := classifyPage(lower)

		// A page carrying "Note 1" with substantial body text opens the
		// notes section even when no heading matched.
		if !inNotes && noteOnePattern.MatchString(lower) && len(page.Text) > tocMinBodyLen {
			inNotes = true
			detected = model.SectionNotes
		}

		if inNotes {
			if isNotesExit(lower) {
				inNotes = false
				closeCurrent(page.Number - 1)
				current = ""
				currentStart = 0
			} else {
				// Embedded statements and policy text inside the notes stay
				// in the notes section.
				detected = model.SectionNotes
			}
		}

		// Notes pages outside the tracked range (fragmented notes).
		if !inNotes && detected == "" && noteBodyPattern.MatchString(lower) {
			detected = model.SectionNotes
		}

		if detected != "" && detected != current {
			closeCurrent(page.Number - 1)
			current = detected
			currentStart = page.Number
		}
	}
	closeCurrent(len(pages))

	return mergeNotes(raw, len(pages))
}

// classifyPage returns the section type whose heading pattern matches the
// page, or "" when no heading is present.
func classifyPage(lower string) model.SectionType {
	for _, sp := range sectionPatterns {
		for _, re := range sp.Patterns {
			if re.MatchString(lower) {
				return sp.Type
			}
		}
	}
	return ""
}

func isNotesExit(lower string) bool {
	for _, re := range notesExitPatterns {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// mergeNotes collapses fragmented notes sections into one contiguous range
// and drops financial-statement sections embedded within it (tables inside
// the notes). Other section types are clipped out of the merged range so
// ranges stay disjoint.
func mergeNotes(sections []model.Section, totalPages int) []model.Section {
	minStart, maxEnd := 0, 0
	for _, s := range sections {
		if s.Type != model.SectionNotes {
			continue
		}
		if minStart == 0 || s.StartPage < minStart {
			minStart = s.StartPage
		}
		if s.EndPage > maxEnd {
			maxEnd = s.EndPage
		}
	}
	if minStart == 0 {
		return sections
	}
	if maxEnd > totalPages {
		maxEnd = totalPages
	}

	merged := []model.Section{{
		Type:      model.SectionNotes,
		Name:      model.SectionNotes.DisplayName(),
		StartPage: minStart,
		EndPage:   maxEnd,
	}}
	for _, s := range sections {
		if s.Type == model.SectionNotes {
			continue
		}
		if s.Type == model.SectionFinancialStatement &&
			s.StartPage >= minStart && s.EndPage <= maxEnd {
			continue
		}
		// Clip partial overlap with the merged notes range.
		if s.StartPage >= minStart && s.StartPage <= maxEnd && s.EndPage > maxEnd {
			s.StartPage = maxEnd + 1
		} else if s.EndPage >= minStart && s.EndPage <= maxEnd && s.StartPage < minStart {
			s.EndPage = minStart - 1
		} else if s.StartPage >= minStart && s.EndPage <= maxEnd {
			// Fully inside the notes range.
			continue
		}
		if s.StartPage > s.EndPage {
			continue
		}
		merged = append(merged, s)
	}

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].StartPage != merged[j].StartPage {
			return merged[i].StartPage < merged[j].StartPage
		}
		return merged[i].Type < merged[j].Type
	})
	return merged
}
