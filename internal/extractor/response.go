package extractor

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
)

// rawEvidence is one evidence quote as claimed by the model, before
// verification.
type rawEvidence struct {
	Text         string `json:"text"`
	Page         int    `json:"page"`
	Section      string `json:"section"`
	MatchKeyword string `json:"match_keyword"`
}

type categoryExtraction struct {
	Category string        `json:"category"`
	Evidence []rawEvidence `json:"evidence"`
}

type blockResponse struct {
	DocumentID  string               `json:"document_id"`
	Block       string               `json:"block"`
	Extractions []categoryExtraction `json:"extractions"`
}

// parseBlockResponse decodes the model's JSON reply into per-category raw
// evidence. Claims for categories outside the block's taxonomy are dropped.
func parseBlockResponse(raw string, knownCategories []string) (map[string][]rawEvidence, error) {
	cleaned := cleanJSON(raw)
	if cleaned == "" {
		return nil, eris.New("extractor: empty model response")
	}

	var resp blockResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, eris.Wrap(err, "extractor: decode model response")
	}

	known := make(map[string]bool, len(knownCategories))
	for _, name := range knownCategories {
		known[name] = true
	}

	out := make(map[string][]rawEvidence, len(resp.Extractions))
	for _, ex := range resp.Extractions {
		if !known[ex.Category] {
			continue
		}
		out[ex.Category] = append(out[ex.Category], ex.Evidence...)
	}
	return out, nil
}

// cleanJSON strips markdown code fences and any prose around the outermost
// JSON object. Models occasionally wrap output despite instructions.
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			s = s[i+1:]
		}
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
