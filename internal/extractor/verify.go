package extractor

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/evidence-cli/internal/config"
	"github.com/sells-group/evidence-cli/internal/model"
)

// Verifier checks every model-claimed quote against the parsed document
// before it is admitted into a result. Quote text is never altered; only
// the comparison uses normalized forms.
type Verifier struct {
	window      int
	minQuoteLen int
}

// NewVerifier creates a Verifier from configuration. A zero window restricts
// the search to the claimed page.
func NewVerifier(cfg config.VerifierConfig) *Verifier {
	w := cfg.PageWindow
	if w < 0 {
		w = 0
	}
	return &Verifier{window: w, minQuoteLen: cfg.MinQuoteLen}
}

// Verify classifies each raw claim against the document and returns evidence
// items in claim order. Claims with empty text or a missing page number are
// discarded; everything else is retained with a confidence classification.
func (v *Verifier) Verify(doc *model.Document, category string, claims []rawEvidence) []model.EvidenceItem {
	var out []model.EvidenceItem
	for _, c := range claims {
		if strings.TrimSpace(c.Text) == "" || c.Page < 1 {
			zap.L().Debug("discarding malformed evidence claim",
				zap.String("document", doc.ID),
				zap.String("category", category),
				zap.Int("page", c.Page),
			)
			continue
		}

		conf := v.classify(doc, c)
		out = append(out, model.EvidenceItem{
			Text:         c.Text,
			Page:         c.Page,
			Category:     category,
			SectionLabel: c.Section,
			MatchKeyword: c.MatchKeyword,
			Confidence:   conf,
			Verified:     conf == model.ConfidenceVerified,
		})
	}
	return out
}

// classify searches the claimed page and its neighbors, nearest first. An
// exact match under whitespace collapsing is verified; a match only under
// aggressive normalization is low-confidence; otherwise unverified. Quotes
// shorter than the minimum length are too weak to trust as exact matches
// and classify unverified without searching.
func (v *Verifier) classify(doc *model.Document, c rawEvidence) model.Confidence {
	trimmed := strings.TrimSpace(c.Text)
	if v.minQuoteLen > 0 && len(trimmed) < v.minQuoteLen {
		return model.ConfidenceUnverified
	}

	pages := v.searchOrder(doc, c.Page)

	needle := collapseSpace(trimmed)
	for _, p := range pages {
		text, _ := doc.PageText(p)
		if strings.Contains(collapseSpace(text), needle) {
			return model.ConfidenceVerified
		}
	}

	canonNeedle := canonical(trimmed)
	for _, p := range pages {
		text, _ := doc.PageText(p)
		if strings.Contains(canonical(text), canonNeedle) {
			return model.ConfidenceLow
		}
	}

	return model.ConfidenceUnverified
}

// searchOrder yields the claimed page then its neighbors by increasing
// distance, within the window and the document bounds.
func (v *Verifier) searchOrder(doc *model.Document, claimed int) []int {
	pages := []int{}
	if claimed >= 1 && claimed <= len(doc.Pages) {
		pages = append(pages, claimed)
	}
	for d := 1; d <= v.window; d++ {
		if p := claimed - d; p >= 1 && p <= len(doc.Pages) {
			pages = append(pages, p)
		}
		if p := claimed + d; p >= 1 && p <= len(doc.Pages) {
			pages = append(pages, p)
		}
	}
	return pages
}

// collapseSpace collapses all whitespace runs to single spaces. PDF text
// extraction produces unpredictable line breaks inside sentences.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var canonicalReplacer = strings.NewReplacer(
	"‘", "'", "’", "'",
	"“", `"`, "”", `"`,
	"–", "-", "—", "-",
	" ", " ",
	"…", "...",
)

// canonical applies aggressive normalization for the low-confidence tier:
// Unicode compatibility folding, typographic punctuation to ASCII, case
// folding, and whitespace collapsing.
func canonical(s string) string {
	s = norm.NFKC.String(s)
	s = canonicalReplacer.Replace(s)
	s = strings.ToLower(s)
	return collapseSpace(s)
}
