package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/evidence-cli/internal/model"
)

var (
	extractDocID string
	extractOut   string
)

var extractCmd = &cobra.Command{
	Use:   "extract <pdf>",
	Short: "Extract verbatim evidence from a single 10-K PDF",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		result, err := extractOne(ctx, env, args[0], extractDocID, extractOut)
		if err != nil {
			return err
		}

		zap.L().Info("extraction written",
			zap.String("run_id", result.RunID),
			zap.Int("total_evidence", result.TotalEvidence),
			zap.Int("verified", result.VerifiedCount),
			zap.Float64("cost_usd", result.Cost),
		)
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractDocID, "doc-id", "", "document identifier (defaults to the PDF file stem)")
	extractCmd.Flags().StringVar(&extractOut, "out", "", "output JSON path (defaults to <stem>_extraction.json, \"-\" for stdout)")
	rootCmd.AddCommand(extractCmd)
}

// extractOne runs the full pipeline for a single PDF and persists the run.
func extractOne(ctx context.Context, env *pipelineEnv, pdfPath, docID, outPath string) (*model.ExtractionResult, error) {
	if docID == "" {
		docID = docStem(pdfPath)
	}
	if outPath == "" {
		outPath = strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + "_extraction.json"
	}

	doc, err := env.Parser.Parse(ctx, pdfPath, docID)
	if err != nil {
		return nil, eris.Wrap(err, "parse document")
	}

	runID := uuid.NewString()
	if _, err := env.Store.CreateRun(ctx, runID, doc.ID); err != nil {
		return nil, err
	}

	result, err := env.Orchestrator.Extract(ctx, runID, doc)
	if err != nil {
		if fErr := env.Store.FailRun(ctx, runID, err.Error()); fErr != nil {
			zap.L().Warn("failed to record run failure", zap.Error(fErr))
		}
		return nil, err
	}

	if err := env.Store.CompleteRun(ctx, runID, result); err != nil {
		return nil, err
	}

	if err := writeResult(outPath, result); err != nil {
		return nil, err
	}
	return result, nil
}

func writeResult(outPath string, result *model.ExtractionResult) error {
	if outPath == "-" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(result), "encode result")
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return eris.Wrap(err, "marshal result")
	}
	return eris.Wrapf(os.WriteFile(outPath, append(data, '\n'), 0o644), "write %s", outPath)
}

// docStem derives a document ID from the PDF file name.
func docStem(pdfPath string) string {
	base := filepath.Base(pdfPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
