package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	input_dir    TEXT NOT NULL,
	output_dir   TEXT NOT NULL,
	status       TEXT NOT NULL DEFAULT 'running',
	companies    INTEGER NOT NULL DEFAULT 0,
	questions    INTEGER NOT NULL DEFAULT 0,
	started_at   DATETIME NOT NULL DEFAULT (datetime('now')),
	completed_at DATETIME
);

CREATE TABLE IF NOT EXISTS company_results (
	run_id    TEXT NOT NULL REFERENCES runs(id),
	company   TEXT NOT NULL,
	code      TEXT NOT NULL,
	country   TEXT NOT NULL,
	pdfs      INTEGER NOT NULL DEFAULT 0,
	questions INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
CREATE INDEX IF NOT EXISTS idx_company_results_run_id ON company_results(run_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, inputDir, outputDir string) (*Run, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, input_dir, output_dir, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		id, inputDir, outputDir, RunStatusRunning, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}

	return &Run{
		ID:        id,
		InputDir:  inputDir,
		OutputDir: outputDir,
		Status:    RunStatusRunning,
		StartedAt: now,
	}, nil
}

func (s *SQLiteStore) CompleteRun(ctx context.Context, runID string, companies, questions int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, companies = ?, questions = ?, completed_at = ? WHERE id = ?`,
		RunStatusComplete, companies, questions, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: complete run %s", runID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Errorf("sqlite: run %s not found", runID)
	}
	return nil
}

func (s *SQLiteStore) AddCompanyResult(ctx context.Context, result CompanyResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO company_results (run_id, company, code, country, pdfs, questions) VALUES (?, ?, ?, ?, ?, ?)`,
		result.RunID, result.Company, result.Code, result.Country, result.PDFs, result.Questions,
	)
	return eris.Wrapf(err, "sqlite: insert company result %s", result.Company)
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input_dir, output_dir, status, companies, questions, started_at, completed_at
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close() //nolint:errcheck

	var runs []Run
	for rows.Next() {
		var r Run
		var completed sql.NullTime
		if err := rows.Scan(&r.ID, &r.InputDir, &r.OutputDir, &r.Status, &r.Companies, &r.Questions, &r.StartedAt, &completed); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		if completed.Valid {
			t := completed.Time
			r.CompletedAt = &t
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: iterate runs")
}

func (s *SQLiteStore) ListCompanyResults(ctx context.Context, runID string) ([]CompanyResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, company, code, country, pdfs, questions FROM company_results WHERE run_id = ?`, runID,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list company results %s", runID)
	}
	defer rows.Close() //nolint:errcheck

	var results []CompanyResult
	for rows.Next() {
		var cr CompanyResult
		if err := rows.Scan(&cr.RunID, &cr.Company, &cr.Code, &cr.Country, &cr.PDFs, &cr.Questions); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan company result")
		}
		results = append(results, cr)
	}
	return results, eris.Wrap(rows.Err(), "sqlite: iterate company results")
}
