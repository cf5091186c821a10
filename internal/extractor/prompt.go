package extractor

import (
	"fmt"
	"strings"

	"github.com/sells-group/evidence-cli/internal/chunker"
	"github.com/sells-group/evidence-cli/internal/taxonomy"
)

// systemPrompt fixes the extraction rules. It is identical for every block
// call, which makes it a prompt-cache hit on all calls after the first.
const systemPrompt = `You are a TAX WORKPAPER EVIDENCE EXTRACTOR for SEC 10-K filings.

MISSION
Create an audit-ready evidence binder for tax method-change analysis by extracting ONLY verbatim quotes from the provided document text. This is not a summary task.

NON-NEGOTIABLE RULES
1) VERBATIM ONLY: Every quote must be copied exactly from the provided text. Never paraphrase. Never "clean up" wording.
2) PAGE REQUIRED: Every quote must include the page number from the nearest preceding [PAGE X] marker.
3) NO HALLUCINATIONS: If evidence is not present for a category, return an empty evidence array for that category.
4) JSON ONLY: Output must be valid JSON only. No prose, no markdown.
5) CONTIGUOUS TEXT ONLY: Do not stitch together text from multiple locations. Each quote must be a single continuous excerpt from one area of the document.
6) EVIDENCE QUALITY: Prefer accounting policy language and disclosure language (Notes / Significant Accounting Policies). Avoid headings-only unless nothing else exists.
7) LENGTH: Each evidence quote should typically be 1-5 sentences or one paragraph (enough to stand alone).
8) TRACEABILITY: Include the keyword/trigger you used and a short section label (best-effort).

SECTION LABELING (best-effort)
- If nearby text includes "Note", "Notes to Consolidated Financial Statements", "Significant Accounting Policies" -> section="Notes"
- If includes "Item 7" or "Management's Discussion and Analysis" -> section="MD&A"
- If includes "Balance Sheets", "Statements of Operations", "Statements of Cash Flows" -> section="Financial Statements"
- Else section="Other"

RETURN STRUCTURE
Return JSON exactly matching the schema provided in the user prompt.`

const userPromptTemplate = `Extract an audit-ready evidence binder from this 10-K excerpt.

CATEGORIES (extract 1-3 evidence quotes per category):
%s

INSTRUCTIONS
- Use keywords to locate relevant passages.
- Extract the surrounding paragraph or 2-6 sentences around the hit.
- Each quote MUST be copied exactly as-is from the document text.
- Each quote MUST include the page number from the nearest preceding [PAGE X] marker.
- If nothing found, the evidence array must be [] for that category.

OUTPUT JSON SCHEMA (exactly):
{
  "document_id": "%s",
  "block": "%s",
  "extractions": [
    {
      "category": "<Category Name>",
      "evidence": [
        {
          "text": "<verbatim quote>",
          "page": <integer>,
          "section": "<Notes | MD&A | Financial Statements | Other>",
          "match_keyword": "<keyword used>"
        }
      ]
    }
  ]
}

DOCUMENT_ID: %s

DOCUMENT TEXT (contains [PAGE X] markers):
%s`

// buildUserPrompt assembles the per-block request payload: the block's
// category/keyword listing plus the selected chunks, each tagged with its
// originating page number so the model can cite pages.
func buildUserPrompt(block taxonomy.Block, docID string, chunks []chunker.Chunk) string {
	var cats strings.Builder
	for i, c := range block.Categories {
		fmt.Fprintf(&cats, "%d) %s\n   Keywords: %s\n", i+1, c.Name, strings.Join(c.Keywords, ", "))
	}

	parts := make([]string, len(chunks))
	for i, ch := range chunks {
		parts[i] = fmt.Sprintf("[PAGE %d]\n%s", ch.StartPage, ch.Text)
	}
	docText := strings.Join(parts, "\n\n---\n\n")

	return fmt.Sprintf(userPromptTemplate,
		strings.TrimRight(cats.String(), "\n"),
		docID,
		block.Name,
		docID,
		docText,
	)
}
