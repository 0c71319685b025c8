// Package store keeps a local ledger of generation runs so past output can
// be audited without re-reading the dataset files.
package store

import (
	"context"
	"time"
)

// Run records one invocation of the generation pipeline.
type Run struct {
	ID          string     `json:"id"`
	InputDir    string     `json:"input_dir"`
	OutputDir   string     `json:"output_dir"`
	Status      string     `json:"status"`
	Companies   int        `json:"companies"`
	Questions   int        `json:"questions"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Run statuses.
const (
	RunStatusRunning  = "running"
	RunStatusComplete = "complete"
)

// CompanyResult records the outcome for one company within a run.
type CompanyResult struct {
	RunID     string `json:"run_id"`
	Company   string `json:"company"`
	Code      string `json:"code"`
	Country   string `json:"country"`
	PDFs      int    `json:"pdfs"`
	Questions int    `json:"questions"`
}

// Store defines the run ledger interface.
type Store interface {
	CreateRun(ctx context.Context, inputDir, outputDir string) (*Run, error)
	CompleteRun(ctx context.Context, runID string, companies, questions int) error
	AddCompanyResult(ctx context.Context, result CompanyResult) error
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	ListCompanyResults(ctx context.Context, runID string) ([]CompanyResult, error)
	Migrate(ctx context.Context) error
	Close() error
}
