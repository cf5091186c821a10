// Package extractor orchestrates per-block evidence extraction: chunk
// selection, one model call per block, quote verification, and aggregation
// into the final run result.
package extractor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/evidence-cli/internal/chunker"
	"github.com/sells-group/evidence-cli/internal/config"
	"github.com/sells-group/evidence-cli/internal/cost"
	"github.com/sells-group/evidence-cli/internal/model"
	"github.com/sells-group/evidence-cli/internal/resilience"
	"github.com/sells-group/evidence-cli/internal/taxonomy"
	"github.com/sells-group/evidence-cli/pkg/anthropic"
)

// Orchestrator runs the extraction pipeline for one parsed document. It is
// safe for concurrent use across documents; the rate limiter is shared so
// batch runs stay within the API budget.
type Orchestrator struct {
	client   anthropic.Client
	tax      taxonomy.Taxonomy
	chunker  *chunker.Chunker
	verifier *Verifier
	calc     *cost.Calculator
	limiter  *rate.Limiter

	modelName string
	maxTokens int64
	cfg       config.ExtractorConfig
}

// New wires an Orchestrator from its collaborators and configuration.
func New(
	client anthropic.Client,
	tax taxonomy.Taxonomy,
	ch *chunker.Chunker,
	verifier *Verifier,
	calc *cost.Calculator,
	anthropicCfg config.AnthropicConfig,
	cfg config.ExtractorConfig,
) *Orchestrator {
	limit := rate.Inf
	if cfg.RequestsPerSec > 0 {
		limit = rate.Limit(cfg.RequestsPerSec)
	}
	return &Orchestrator{
		client:    client,
		tax:       tax,
		chunker:   ch,
		verifier:  verifier,
		calc:      calc,
		limiter:   rate.NewLimiter(limit, 1),
		modelName: anthropicCfg.Model,
		maxTokens: int64(anthropicCfg.MaxTokens),
		cfg:       cfg,
	}
}

// Extract runs every taxonomy block against the document, exactly one model
// call per block per attempt, and aggregates the verified evidence. Block
// failures are isolated: a failed block appears in the result with a failure
// marker and empty evidence while the others complete normally. Extract
// returns an error only when the context is canceled. An empty runID gets a
// fresh UUID.
func (o *Orchestrator) Extract(ctx context.Context, runID string, doc *model.Document) (*model.ExtractionResult, error) {
	if runID == "" {
		runID = uuid.NewString()
	}
	log := zap.L().With(
		zap.String("run_id", runID),
		zap.String("document", doc.ID),
	)
	log.Info("starting extraction",
		zap.Int("blocks", len(o.tax.Blocks)),
		zap.Int("pages", len(doc.Pages)),
	)

	outcomes := make([]blockOutcome, 0, len(o.tax.Blocks))
	for _, block := range o.tax.Blocks {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "extractor: run canceled")
		}
		outcomes = append(outcomes, o.extractBlock(ctx, log, doc, block))
	}

	res := aggregate(runID, doc.ID, o.tax, outcomes)
	log.Info("extraction complete",
		zap.Int("total_evidence", res.TotalEvidence),
		zap.Int("verified", res.VerifiedCount),
		zap.Float64("cost_usd", res.Cost),
	)
	return res, nil
}

// extractBlock performs one block's full lifecycle: chunk selection, the
// model call with retries, response parsing, and verification. All usage is
// accounted even when every attempt fails.
func (o *Orchestrator) extractBlock(ctx context.Context, log *zap.Logger, doc *model.Document, block taxonomy.Block) blockOutcome {
	start := time.Now()

	chunks, fallback := o.selectChunks(doc, block)
	result := model.BlockResult{
		Block:      block.Name,
		Fallback:   fallback,
		ChunksSent: len(chunks),
	}

	if len(chunks) == 0 {
		log.Info("no relevant chunks for block", zap.String("block", block.Name))
		result.Duration = time.Since(start).Milliseconds()
		return blockOutcome{result: result}
	}

	prompt := buildUserPrompt(block, doc.ID, chunks)
	categories := block.CategoryNames()

	var usage model.TokenUsage
	retryCfg := resilience.DefaultRetryConfig()
	if o.cfg.MaxRetries > 0 {
		retryCfg.MaxAttempts = o.cfg.MaxRetries
	}
	retryCfg.OnRetry = resilience.RetryLogger("anthropic", "extract_block")

	claims, err := resilience.DoVal(ctx, retryCfg, func(ctx context.Context) (map[string][]rawEvidence, error) {
		if err := o.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		callCtx := ctx
		if o.cfg.BlockTimeoutS > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, time.Duration(o.cfg.BlockTimeoutS)*time.Second)
			defer cancel()
		}

		resp, err := o.client.CreateMessage(callCtx, anthropic.MessageRequest{
			Model:     o.modelName,
			MaxTokens: o.maxTokens,
			System:    anthropic.BuildCachedSystemBlocks(systemPrompt),
			Messages:  []anthropic.Message{{Role: "user", Content: prompt}},
		})
		if err != nil {
			return nil, err
		}
		usage.Add(o.usageOf(resp.Usage))

		parsed, err := parseBlockResponse(resp.Text(), categories)
		if err != nil {
			// Malformed output is worth a fresh attempt.
			return nil, resilience.NewTransientError(err, 0)
		}
		return parsed, nil
	})

	result.Usage = usage
	result.Duration = time.Since(start).Milliseconds()

	if err != nil {
		result.Failed = true
		result.Error = eris.ToString(eris.Wrapf(err, "block %q extraction failed", block.Name), false)
		log.Warn("block extraction failed",
			zap.String("block", block.Name),
			zap.Error(err),
		)
		return blockOutcome{result: result}
	}

	evidence := make(map[string][]model.EvidenceItem, len(categories))
	for _, cat := range categories {
		evidence[cat] = o.verifier.Verify(doc, cat, claims[cat])
	}

	log.Info("block extracted",
		zap.String("block", block.Name),
		zap.Int("chunks_sent", result.ChunksSent),
		zap.Bool("whole_document_fallback", fallback),
		zap.Int64("duration_ms", result.Duration),
	)
	return blockOutcome{result: result, evidence: evidence}
}

// selectChunks windows the block's priority sections, falling back to the
// whole document when none were detected, then ranks by keyword relevance
// and keeps the top chunks within the character budget and chunk cap.
func (o *Orchestrator) selectChunks(doc *model.Document, block taxonomy.Block) ([]chunker.Chunk, bool) {
	chunks := o.chunker.ChunkSections(doc, block.PrioritySections)
	fallback := false
	if len(chunks) == 0 {
		zap.L().Warn("priority sections not detected, scanning whole document",
			zap.String("document", doc.ID),
			zap.String("block", block.Name),
		)
		chunks = o.chunker.ChunkDocument(doc)
		fallback = true
	}

	ranked := chunker.Rank(chunks, block.Keywords())

	var selected []chunker.Chunk
	budget := o.cfg.CharBudget
	used := 0
	for _, ch := range ranked {
		if o.cfg.MaxChunks > 0 && len(selected) >= o.cfg.MaxChunks {
			break
		}
		if budget > 0 && used+len(ch.Text) > budget {
			if len(selected) > 0 {
				break
			}
			// A single oversized chunk still goes through, truncated.
			ch.Text = ch.Text[:budget]
		}
		used += len(ch.Text)
		selected = append(selected, ch)
	}
	return selected, fallback
}

func (o *Orchestrator) usageOf(u anthropic.TokenUsage) model.TokenUsage {
	usage := model.TokenUsage{
		InputTokens:         int(u.InputTokens),
		OutputTokens:        int(u.OutputTokens),
		CacheCreationTokens: int(u.CacheCreationInputTokens),
		CacheReadTokens:     int(u.CacheReadInputTokens),
	}
	usage.Cost = o.calc.Claude(o.modelName,
		usage.InputTokens, usage.OutputTokens,
		usage.CacheCreationTokens, usage.CacheReadTokens)
	return usage
}
