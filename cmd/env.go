package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/evidence-cli/internal/chunker"
	"github.com/sells-group/evidence-cli/internal/cost"
	"github.com/sells-group/evidence-cli/internal/extractor"
	"github.com/sells-group/evidence-cli/internal/parser"
	"github.com/sells-group/evidence-cli/internal/pdftext"
	"github.com/sells-group/evidence-cli/internal/store"
	"github.com/sells-group/evidence-cli/internal/taxonomy"
	anthropicpkg "github.com/sells-group/evidence-cli/pkg/anthropic"
)

// pipelineEnv bundles the wired collaborators for a pipeline command.
type pipelineEnv struct {
	Store        store.Store
	Parser       *parser.Parser
	Orchestrator *extractor.Orchestrator
}

func (e *pipelineEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initStore opens and migrates the run store.
func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, eris.Wrap(err, "open store")
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// initPipeline wires the full extraction pipeline from configuration.
func initPipeline(ctx context.Context) (*pipelineEnv, error) {
	if cfg.Anthropic.Key == "" {
		return nil, eris.New("anthropic API key not configured (set EVIDENCE_ANTHROPIC_KEY)")
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	tax := taxonomy.Default()
	if cfg.Taxonomy.Path != "" {
		tax, err = taxonomy.LoadFile(cfg.Taxonomy.Path)
		if err != nil {
			st.Close()
			return nil, err
		}
		zap.L().Info("loaded taxonomy override",
			zap.String("path", cfg.Taxonomy.Path),
			zap.Int("blocks", len(tax.Blocks)),
		)
	}

	pdfExtractor, err := pdftext.NewExtractor(cfg.Parser)
	if err != nil {
		st.Close()
		return nil, err
	}

	orch := extractor.New(
		anthropicpkg.NewClient(cfg.Anthropic.Key),
		tax,
		chunker.New(cfg.Chunker.ChunkSize, cfg.Chunker.Overlap),
		extractor.NewVerifier(cfg.Verifier),
		cost.NewCalculator(cfg.Pricing.Anthropic),
		cfg.Anthropic,
		cfg.Extractor,
	)

	return &pipelineEnv{
		Store:        st,
		Parser:       parser.New(pdfExtractor),
		Orchestrator: orch,
	}, nil
}
