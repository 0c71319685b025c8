package ocr

import (
	"context"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/rotisserie/eris"
)

// Native extracts text in-process using the pure-Go ledongthuc/pdf reader.
// No external binary or API is needed, so this is the default provider.
type Native struct{}

// NewNative creates a Native extractor.
func NewNative() *Native {
	return &Native{}
}

// ExtractText reads every page of the PDF and joins the page texts with a
// blank line. Pages that fail to decode individually are skipped.
func (n *Native) ExtractText(ctx context.Context, pdfPath string) (string, error) {
	f, reader, err := pdflib.Open(pdfPath)
	if err != nil {
		return "", eris.Wrapf(err, "ocr: open PDF %s", pdfPath)
	}
	defer f.Close() //nolint:errcheck

	var sb strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", eris.Wrapf(err, "ocr: extract %s", pdfPath)
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}

	return sb.String(), nil
}
