package dataset

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/marketbench/quizgen-cli/internal/model"
)

// summaryColumns is the header row of the processing summary.
var summaryColumns = []string{"Company", "Code", "Country", "PDFs Processed", "Questions Generated", "Categories"}

// summaryRow maps one company record to a summary table row.
func summaryRow(rec *model.CompanyRecord) []string {
	return []string{
		rec.Name,
		rec.Code,
		rec.Country,
		strconv.Itoa(len(rec.PDFs)),
		strconv.Itoa(len(rec.Questions)),
		strings.Join(rec.Categories(), ", "),
	}
}

// WriteSummaryCSV writes processing_summary.csv at the output root.
func WriteSummaryCSV(outputDir string, records []*model.CompanyRecord) (string, error) {
	path := filepath.Join(outputDir, "processing_summary.csv")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", eris.Wrapf(err, "dataset: create dir %s", outputDir)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", eris.Wrapf(err, "dataset: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if err := w.Write(summaryColumns); err != nil {
		return "", eris.Wrap(err, "dataset: write summary header")
	}
	for _, rec := range records {
		if err := w.Write(summaryRow(rec)); err != nil {
			return "", eris.Wrapf(err, "dataset: write summary row %s", rec.Name)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", eris.Wrap(err, "dataset: flush summary")
	}

	if err := f.Close(); err != nil {
		return "", eris.Wrapf(err, "dataset: close %s", path)
	}
	return path, nil
}

// WriteSummaryXLSX writes processing_summary.xlsx at the output root, a
// spreadsheet mirror of the CSV summary.
func WriteSummaryXLSX(outputDir string, records []*model.CompanyRecord) (string, error) {
	path := filepath.Join(outputDir, "processing_summary.xlsx")

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Summary")
	if err != nil {
		return "", eris.Wrap(err, "dataset: add summary sheet")
	}

	header := sheet.AddRow()
	for _, col := range summaryColumns {
		header.AddCell().Value = col
	}
	for _, rec := range records {
		row := sheet.AddRow()
		for _, val := range summaryRow(rec) {
			row.AddCell().Value = val
		}
	}

	if err := file.Save(path); err != nil {
		return "", eris.Wrapf(err, "dataset: save %s", path)
	}
	return path, nil
}
