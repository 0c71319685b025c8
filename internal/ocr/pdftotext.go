package ocr

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// PdfToText extracts report text with the poppler pdftotext binary. -layout
// keeps financial tables roughly columnar, which reads better in prompts
// than the default flow order.
type PdfToText struct {
	binPath string
}

// NewPdfToText creates a PdfToText extractor. If binPath is empty, "pdftotext"
// is looked up on PATH.
func NewPdfToText(binPath string) *PdfToText {
	if binPath == "" {
		binPath = "pdftotext"
	}
	return &PdfToText{binPath: binPath}
}

// ExtractText runs pdftotext -layout on the report and returns stdout. A
// report that produces no text at all (typically a scanned-image annual
// report) is logged so the operator knows to switch to the mistral provider.
func (p *PdfToText) ExtractText(ctx context.Context, pdfPath string) (string, error) {
	cmd := exec.CommandContext(ctx, p.binPath, "-layout", pdfPath, "-")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", eris.Wrapf(err, "ocr: pdftotext failed for %s: %s", pdfPath, stderr.String())
	}

	text := stdout.String()
	if strings.TrimSpace(text) == "" {
		zap.L().Warn("report yielded no text, likely scanned images",
			zap.String("path", pdfPath))
	} else {
		zap.L().Debug("extracted report text",
			zap.String("path", pdfPath),
			zap.Int("chars", len(text)))
	}

	return text, nil
}
