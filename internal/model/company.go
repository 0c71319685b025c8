package model

import (
	"sort"
	"strings"
)

// PdfReference points at one collected report PDF.
type PdfReference struct {
	Path     string `json:"path"`
	Country  string `json:"country"`
	Filename string `json:"filename"`
}

// CompanyRecord accumulates everything produced for one company during a run.
type CompanyRecord struct {
	Name      string         `json:"name"`
	Code      string         `json:"code"`
	Country   string         `json:"country"`
	PDFs      []PdfReference `json:"pdfs"`
	Questions []Question     `json:"questions"`
}

// Categories returns the sorted distinct question categories for this company.
func (c *CompanyRecord) Categories() []string {
	seen := map[string]bool{}
	for _, q := range c.Questions {
		cat := q.Metadata.Category
		if cat == "" {
			cat = "Unknown"
		}
		seen[cat] = true
	}
	out := make([]string, 0, len(seen))
	for cat := range seen {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}

// CodeToName maps filename code prefixes to full company names.
var CodeToName = map[string]string{
	"BBK":  "Bank of Bahrain and Kuwait",
	"NBB":  "National Bank of Bahrain",
	"SIB":  "Sohar International Bank",
	"ABK":  "Al Ahli Bank of Kuwait",
	"NBK":  "National Bank of Kuwait",
	"BM":   "Bank Muscat",
	"EDO":  "Energy Development Oman",
	"ADIB": "Abu Dhabi Islamic Bank",
	"FAB":  "First Abu Dhabi Bank",
	"ENBD": "Emirates NBD",
	"DIB":  "Dubai Islamic Bank",
	"CBD":  "Commercial Bank of Dubai",
	"TAB":  "Tabreed",
}

// nameToCode holds well-known abbreviations that the initials heuristic
// would get wrong (e.g. "Emirates NBD" -> "ENBD", not "EN").
var nameToCode = map[string]string{
	"First Abu Dhabi Bank":       "FAB",
	"Emirates NBD":               "ENBD",
	"Abu Dhabi Commercial Bank":  "ADCB",
	"Dubai Islamic Bank":         "DIB",
	"Emirates Islamic Bank":      "EIB",
	"Commercial Bank of Dubai":   "CBD",
	"Abu Dhabi Islamic Bank":     "ADIB",
	"Tabreed":                    "TAB",
	"Sohar International Bank":   "SIB",
	"EDO":                        "EDO",
	"Commercial Bank":            "CBQ",
	"Bank of Bahrain and Kuwait": "BBK",
	"National Bank of Bahrain":   "NBB",
	"Al Ahli Bank of Kuwait":     "ABK",
	"National Bank of Kuwait":    "NBK",
	"Bank Muscat":                "BM",
}

// GenerateCode derives the short uppercase id prefix for a company name.
// Known names use their registered abbreviation; otherwise the code is
// built from word initials (three or more words) or the first two letters
// of each word, capped at four characters.
func GenerateCode(name string) string {
	if name == "" {
		return "UNK"
	}
	if code, ok := nameToCode[name]; ok {
		return code
	}

	words := strings.Fields(name)
	var code string
	if len(words) >= 3 {
		var b strings.Builder
		for _, w := range words[:3] {
			b.WriteString(w[:1])
		}
		code = b.String()
	} else {
		var b strings.Builder
		for _, w := range words {
			if len(w) >= 2 {
				b.WriteString(w[:2])
			} else {
				b.WriteString(w)
			}
		}
		code = b.String()
		if len(code) > 4 {
			code = code[:4]
		}
	}
	return strings.ToUpper(code)
}
