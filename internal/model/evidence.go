package model

import "time"

// Confidence classifies how an evidence quote verified against source text.
type Confidence string

const (
	// ConfidenceVerified means the quote is a literal substring of the
	// claimed page (or an adjacent page within the verifier window).
	ConfidenceVerified Confidence = "verified"

	// ConfidenceLow means the quote matched only after aggressive
	// normalization (typographic quotes, dashes, case).
	ConfidenceLow Confidence = "low-confidence"

	// ConfidenceUnverified means the quote was not located anywhere near
	// the claimed page. The item is retained for human review.
	ConfidenceUnverified Confidence = "unverified"
)

// EvidenceItem is a single verbatim quotation with its page citation and
// verification outcome. Items are created only by the verifier and are
// immutable afterwards.
type EvidenceItem struct {
	Text         string     `json:"text"`
	Page         int        `json:"page"`
	Category     string     `json:"category"`
	SectionLabel string     `json:"section,omitempty"`
	MatchKeyword string     `json:"match_keyword,omitempty"`
	Confidence   Confidence `json:"confidence"`
	Verified     bool       `json:"verified"`
}

// CategoryEvidence groups the verified evidence items for one category.
type CategoryEvidence struct {
	Block    string         `json:"block"`
	Category string         `json:"category"`
	Evidence []EvidenceItem `json:"evidence"`
}

// BlockResult records the outcome of one block's extraction call. A failed
// block is kept in the result with empty evidence and a visible marker so
// downstream consumers never see a silently missing block.
type BlockResult struct {
	Block      string     `json:"block"`
	Failed     bool       `json:"failed"`
	Error      string     `json:"error,omitempty"`
	Fallback   bool       `json:"whole_document_fallback"`
	ChunksSent int        `json:"chunks_sent"`
	Usage      TokenUsage `json:"token_usage"`
	Duration   int64      `json:"duration_ms"`
}

// ExtractionResult is the terminal artifact of one extraction run: evidence
// keyed by category in block iteration order, per-block outcomes, and total
// token/cost accounting.
type ExtractionResult struct {
	RunID         string             `json:"run_id"`
	DocumentID    string             `json:"document_id"`
	Blocks        []BlockResult      `json:"blocks"`
	Extractions   []CategoryEvidence `json:"extractions"`
	TotalEvidence int                `json:"total_evidence"`
	VerifiedCount int                `json:"verified_count"`
	Usage         TokenUsage         `json:"token_usage"`
	Cost          float64            `json:"cost_estimate"`
	CreatedAt     time.Time          `json:"created_at"`
}

// TokenUsage tracks token consumption.
type TokenUsage struct {
	InputTokens         int     `json:"input_tokens"`
	OutputTokens        int     `json:"output_tokens"`
	CacheCreationTokens int     `json:"cache_creation_tokens"`
	CacheReadTokens     int     `json:"cache_read_tokens"`
	Cost                float64 `json:"cost"`
}

// Add merges token usage from another instance.
func (t *TokenUsage) Add(other TokenUsage) {
	t.InputTokens += other.InputTokens
	t.OutputTokens += other.OutputTokens
	t.CacheCreationTokens += other.CacheCreationTokens
	t.CacheReadTokens += other.CacheReadTokens
	t.Cost += other.Cost
}

// RunStatus tracks the lifecycle of a stored extraction run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is a persisted extraction run record.
type Run struct {
	ID         string            `json:"id"`
	DocumentID string            `json:"document_id"`
	Status     RunStatus         `json:"status"`
	Result     *ExtractionResult `json:"result,omitempty"`
	Error      string            `json:"error,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
