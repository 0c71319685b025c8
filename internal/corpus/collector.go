// Package corpus walks the report directory tree and groups PDFs by company.
//
// The expected layout is <root>/<country>/<file>.pdf, where each immediate
// subdirectory of the root names a country. Company names are inferred from
// filename prefixes.
package corpus

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/marketbench/quizgen-cli/internal/model"
)

// codePrefixRe matches a 2-4 letter company code prefix like "FAB_" or "NBK-".
var codePrefixRe = regexp.MustCompile(`^([A-Za-z]{2,4})[-_]`)

var titleCaser = cases.Title(language.English)

// Stats summarizes a collection pass.
type Stats struct {
	Countries int
	PDFs      int
	Companies int
}

// Collect walks the country subdirectories of root and groups every PDF by
// inferred company name. A missing root is not an error: it logs a warning
// and returns an empty mapping so the caller can exit cleanly.
func Collect(root string) (map[string][]model.PdfReference, Stats, error) {
	zap.L().Info("collecting report corpus", zap.String("root", root))

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			zap.L().Warn("input directory does not exist", zap.String("root", root))
			return map[string][]model.PdfReference{}, Stats{}, nil
		}
		return nil, Stats{}, err
	}

	companies := map[string][]model.PdfReference{}
	stats := Stats{}

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		country := entry.Name()
		stats.Countries++

		matches, err := filepath.Glob(filepath.Join(root, country, "*.pdf"))
		if err != nil {
			// Only possible with a malformed pattern; country names can't
			// produce one, but keep the soft-failure contract anyway.
			zap.L().Warn("glob failed", zap.String("country", country), zap.Error(err))
			continue
		}

		for _, path := range matches {
			filename := filepath.Base(path)
			name := inferCompanyName(filename, country)
			companies[name] = append(companies[name], model.PdfReference{
				Path:     path,
				Country:  country,
				Filename: filename,
			})
			stats.PDFs++
		}
	}

	stats.Companies = len(companies)
	zap.L().Info("corpus collected",
		zap.Int("countries", stats.Countries),
		zap.Int("pdfs", stats.PDFs),
		zap.Int("companies", stats.Companies),
	)
	return companies, stats, nil
}

// inferCompanyName derives a company name from a report filename. A short
// letter-code prefix is resolved through the code table; anything else falls
// back to title-casing the text before the first underscore.
func inferCompanyName(filename, country string) string {
	if m := codePrefixRe.FindStringSubmatch(filename); m != nil {
		code := strings.ToUpper(m[1])
		if name, ok := model.CodeToName[code]; ok {
			return name
		}
		return code + " " + country
	}

	head := strings.TrimSuffix(filename, filepath.Ext(filename))
	if i := strings.Index(head, "_"); i >= 0 {
		head = head[:i]
	}
	head = strings.ReplaceAll(head, "-", " ")
	return titleCaser.String(head)
}
