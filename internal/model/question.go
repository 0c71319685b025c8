package model

// Question is one formatted multiple-choice question ready for the dataset.
type Question struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
	Metadata Metadata `json:"metadata"`
}

// Metadata carries provenance and classification for a question.
type Metadata struct {
	Difficulty    string `json:"difficulty"`
	Company       string `json:"company"`
	ReportYear    string `json:"report_year"`
	SourceFile    string `json:"source_file"`
	SourceChunkID string `json:"source_chunk_id"`
	SourceType    string `json:"source_type"`
	Category      string `json:"category"`
}

// Chunk is a bounded, overlapping slice of extracted document text
// with provenance. IDs are 1-based and local to one document.
type Chunk struct {
	Text       string `json:"text"`
	ID         int    `json:"chunk_id"`
	SourceFile string `json:"source_file"`
	Company    string `json:"company"`
	Country    string `json:"country"`
	ReportYear string `json:"report_year"`
}

// Question categories the generator is instructed to draw from.
const (
	CategoryFinancialPerformance = "Financial Performance"
	CategoryMarketPosition       = "Market Position"
	CategoryRiskFactors          = "Risk Factors"
	CategoryCorporateGovernance  = "Corporate Governance"
	CategoryBusinessStrategy     = "Business Strategy"
	CategoryOperationalMetrics   = "Operational Metrics"
	CategorySustainability       = "Sustainability"
	CategoryKeyPersonnel         = "Key Personnel"
)

// Categories lists every category in prompt order.
var Categories = []string{
	CategoryFinancialPerformance,
	CategoryMarketPosition,
	CategoryRiskFactors,
	CategoryCorporateGovernance,
	CategoryBusinessStrategy,
	CategoryOperationalMetrics,
	CategorySustainability,
	CategoryKeyPersonnel,
}

// SourceTypePersonnel tags questions produced by personnel-mode synthesis.
const SourceTypePersonnel = "personnel_data"

// sourceTypes maps a category to its normalized source_type tag.
var sourceTypes = map[string]string{
	CategoryFinancialPerformance: "financial_data",
	CategoryMarketPosition:       "market_data",
	CategoryRiskFactors:          "risk_data",
	CategoryCorporateGovernance:  "governance_data",
	CategoryBusinessStrategy:     "business_strategy",
	CategoryOperationalMetrics:   "operational_data",
	CategorySustainability:       "sustainability",
	CategoryKeyPersonnel:         SourceTypePersonnel,
}

// SourceType returns the source_type tag for a category,
// falling back to "miscellaneous" for anything unrecognized.
func SourceType(category string) string {
	if st, ok := sourceTypes[category]; ok {
		return st
	}
	return "miscellaneous"
}
