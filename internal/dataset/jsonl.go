// Package dataset persists generated questions as JSONL files and writes the
// per-run summary table.
package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/marketbench/quizgen-cli/internal/model"
)

// CombinedFilename is the merged dataset written at the output root.
const CombinedFilename = "combined_dataset.jsonl"

// CompanyFilename returns the per-company output filename.
func CompanyFilename(company string) string {
	return strings.ReplaceAll(company, " ", "_") + "_questions.jsonl"
}

// WriteQuestions writes one compact JSON object per line to path, creating
// parent directories as needed.
func WriteQuestions(path string, questions []model.Question) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return eris.Wrapf(err, "dataset: create dir for %s", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "dataset: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	enc := json.NewEncoder(f)
	for _, q := range questions {
		if err := enc.Encode(q); err != nil {
			return eris.Wrapf(err, "dataset: encode question %s", q.ID)
		}
	}

	if err := f.Close(); err != nil {
		return eris.Wrapf(err, "dataset: close %s", path)
	}

	zap.L().Info("wrote questions", zap.String("path", path), zap.Int("count", len(questions)))
	return nil
}

// WriteCompany writes a company's questions under the country subdirectory
// of outputDir and returns the file path.
func WriteCompany(outputDir string, rec *model.CompanyRecord) (string, error) {
	path := filepath.Join(outputDir, rec.Country, CompanyFilename(rec.Name))
	if err := WriteQuestions(path, rec.Questions); err != nil {
		return "", err
	}
	return path, nil
}

// WriteCombined merges every company's questions into one dataset at the
// output root, in company processing order.
func WriteCombined(outputDir string, records []*model.CompanyRecord) (string, error) {
	var all []model.Question
	for _, rec := range records {
		all = append(all, rec.Questions...)
	}
	path := filepath.Join(outputDir, CombinedFilename)
	if err := WriteQuestions(path, all); err != nil {
		return "", err
	}
	return path, nil
}
