package chunker

import (
	"regexp"
	"sort"
	"strings"
)

// Keyword hit weight and financial-specifics bonuses. Chunks carrying
// concrete figures are far more likely to contain auditable evidence than
// generic narrative, so dollar amounts and dates outweigh bare keyword hits.
const (
	keywordWeight     = 5
	dollarBonus       = 30
	fullDateBonus     = 20
	monthYearBonus    = 15
	fiscalYearBonus   = 10
	boilerplatePenalty = 10
	tocPenalty        = 20
)

var (
	dollarPattern    = regexp.MustCompile(`\$[\d,]+(\.\d+)?\s*(million|billion|thousand)?`)
	fullDatePattern  = regexp.MustCompile(`(january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2},?\s+\d{4}`)
	monthYearPattern = regexp.MustCompile(`(january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{4}`)
	fiscalPattern    = regexp.MustCompile(`(fiscal\s+)?years?\s+(ended|ending)`)
)

// Phrases that mark low-evidentiary boilerplate.
var boilerplateTerms = []string{
	"forward-looking",
	"risks and uncertainties",
	"no assurance",
	"cannot predict",
	"may not be indicative",
}

// Score computes a chunk's relevance to the keyword set: distinct
// case-insensitive keyword hits plus financial-specifics bonuses, minus
// boilerplate penalties. Short keywords match on word boundaries only to
// avoid substring noise.
func Score(text string, keywords []string) int {
	lower := strings.ToLower(text)
	score := 0

	seen := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		k := strings.ToLower(kw)
		if len(k) < 3 || seen[k] {
			continue
		}
		seen[k] = true
		if matchKeyword(lower, k) {
			score += keywordWeight
		}
	}

	if dollarPattern.MatchString(lower) {
		score += dollarBonus
	}
	if fullDatePattern.MatchString(lower) {
		score += fullDateBonus
	} else if monthYearPattern.MatchString(lower) {
		score += monthYearBonus
	}
	if fiscalPattern.MatchString(lower) {
		score += fiscalYearBonus
	}

	for _, term := range boilerplateTerms {
		if strings.Contains(lower, term) {
			score -= boilerplatePenalty
		}
	}
	if strings.Contains(lower, "table of contents") {
		score -= tocPenalty
	}

	return score
}

// matchKeyword matches kw in lower-cased text; keywords of four characters
// or fewer require word boundaries.
func matchKeyword(lower, kw string) bool {
	if len(kw) > 4 {
		return strings.Contains(lower, kw)
	}
	for idx := 0; ; {
		i := strings.Index(lower[idx:], kw)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(kw)
		if (start == 0 || !isWordChar(lower[start-1])) &&
			(end == len(lower) || !isWordChar(lower[end])) {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

// Rank scores every chunk against the keyword set and returns the relevant
// ones ordered by score descending, then start page ascending, then offset
// ascending. Chunks scoring zero or below are excluded entirely: they are
// never worth a model call. The ordering is deterministic for a given
// document and keyword set.
func Rank(chunks []Chunk, keywords []string) []Chunk {
	var ranked []Chunk
	for _, ch := range chunks {
		ch.Score = Score(ch.Text, keywords)
		if ch.Score > 0 {
			ranked = append(ranked, ch)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].StartPage != ranked[j].StartPage {
			return ranked[i].StartPage < ranked[j].StartPage
		}
		return ranked[i].Offset < ranked[j].Offset
	})
	return ranked
}
