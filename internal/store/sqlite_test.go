package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestRunLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "files", "output")
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, RunStatusRunning, run.Status)
	assert.Nil(t, run.CompletedAt)

	require.NoError(t, s.AddCompanyResult(ctx, CompanyResult{
		RunID: run.ID, Company: "First Abu Dhabi Bank", Code: "FAB", Country: "UAE", PDFs: 2, Questions: 50,
	}))
	require.NoError(t, s.AddCompanyResult(ctx, CompanyResult{
		RunID: run.ID, Company: "Bank Muscat", Code: "BM", Country: "Oman", PDFs: 1, Questions: 37,
	}))

	require.NoError(t, s.CompleteRun(ctx, run.ID, 2, 87))

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, RunStatusComplete, runs[0].Status)
	assert.Equal(t, 2, runs[0].Companies)
	assert.Equal(t, 87, runs[0].Questions)
	assert.NotNil(t, runs[0].CompletedAt)

	results, err := s.ListCompanyResults(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "FAB", results[0].Code)
	assert.Equal(t, 37, results[1].Questions)
}

func TestCompleteRun_NotFound(t *testing.T) {
	s := newTestStore(t)
	err := s.CompleteRun(context.Background(), "missing-id", 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListRuns_OrderAndLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.CreateRun(ctx, "files", "output")
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	runs, err = s.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestListRuns_Empty(t *testing.T) {
	s := newTestStore(t)
	runs, err := s.ListRuns(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
