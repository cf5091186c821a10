package pdftext

import (
	"context"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/rotisserie/eris"
)

// Native extracts text with the pure-Go ledongthuc/pdf reader. No external
// binaries required.
type Native struct{}

// Pages returns per-page plain text. A page whose content stream cannot be
// decoded contributes an empty string; only a file that cannot be opened at
// all is an error.
func (n *Native) Pages(ctx context.Context, pdfPath string) ([]string, error) {
	f, reader, err := pdflib.Open(pdfPath)
	if err != nil {
		return nil, eris.Wrapf(err, "pdftext: open %s", pdfPath)
	}
	defer f.Close()

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}
