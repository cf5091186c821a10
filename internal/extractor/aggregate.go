package extractor

import (
	"time"

	"github.com/sells-group/evidence-cli/internal/model"
	"github.com/sells-group/evidence-cli/internal/taxonomy"
)

// blockOutcome carries one block's verified evidence plus its call metadata
// from the orchestrator to the aggregator.
type blockOutcome struct {
	result   model.BlockResult
	evidence map[string][]model.EvidenceItem
}

// aggregate merges per-block outcomes into the final result. Category keys
// follow taxonomy declaration order and every category is present even when
// its block failed or returned nothing, so consumers can distinguish "looked
// and found nothing" from "never asked".
func aggregate(runID, docID string, tax taxonomy.Taxonomy, outcomes []blockOutcome) *model.ExtractionResult {
	res := &model.ExtractionResult{
		RunID:      runID,
		DocumentID: docID,
		CreatedAt:  time.Now().UTC(),
	}

	byBlock := make(map[string]blockOutcome, len(outcomes))
	for _, o := range outcomes {
		res.Blocks = append(res.Blocks, o.result)
		res.Usage.Add(o.result.Usage)
		byBlock[o.result.Block] = o
	}
	res.Cost = res.Usage.Cost

	for _, b := range tax.Blocks {
		o := byBlock[b.Name]
		for _, cat := range b.Categories {
			items := o.evidence[cat.Name]
			if items == nil {
				items = []model.EvidenceItem{}
			}
			res.Extractions = append(res.Extractions, model.CategoryEvidence{
				Block:    b.Name,
				Category: cat.Name,
				Evidence: items,
			})
			res.TotalEvidence += len(items)
			for _, it := range items {
				if it.Verified {
					res.VerifiedCount++
				}
			}
		}
	}

	return res
}
