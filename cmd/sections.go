package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/evidence-cli/internal/model"
	"github.com/sells-group/evidence-cli/internal/parser"
	"github.com/sells-group/evidence-cli/internal/pdftext"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections <pdf>",
	Short: "Parse a PDF and show the detected filing sections",
	Long:  "Runs section detection only, no model calls. Useful for checking why a block fell back to whole-document scanning.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		pdfExtractor, err := pdftext.NewExtractor(cfg.Parser)
		if err != nil {
			return err
		}

		doc, err := parser.New(pdfExtractor).Parse(ctx, args[0], docStem(args[0]))
		if err != nil {
			return err
		}

		formatSections(os.Stdout, doc)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
}

func formatSections(out io.Writer, doc *model.Document) {
	fmt.Fprintf(out, "Document: %s (%d pages)\n\n", doc.ID, len(doc.Pages))

	if len(doc.Sections) == 0 {
		fmt.Fprintln(out, "No sections detected.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TYPE\tNAME\tPAGES")
	_, _ = fmt.Fprintln(w, "----\t----\t-----")
	for _, s := range doc.Sections {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d-%d\n", s.Type, s.Name, s.StartPage, s.EndPage)
	}
	_ = w.Flush()
}
