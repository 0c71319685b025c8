package dataset

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/marketbench/quizgen-cli/internal/model"
)

func sampleRecord(name, code, country string, n int) *model.CompanyRecord {
	rec := &model.CompanyRecord{
		Name:    name,
		Code:    code,
		Country: country,
		PDFs:    []model.PdfReference{{Country: country, Filename: code + "_2023.pdf"}},
	}
	for i := 0; i < n; i++ {
		rec.Questions = append(rec.Questions, model.Question{
			ID:       code + "100" + string(rune('1'+i)),
			Question: "Q?",
			Options:  []string{"A. a", "B. b", "C. c", "D. d"},
			Answer:   "A",
			Metadata: model.Metadata{Company: name, Category: model.CategoryFinancialPerformance, SourceType: "financial_data"},
		})
	}
	return rec
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 1024*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	require.NoError(t, sc.Err())
	return lines
}

func TestWriteCompany(t *testing.T) {
	dir := t.TempDir()
	rec := sampleRecord("First Abu Dhabi Bank", "FAB", "UAE", 2)

	path, err := WriteCompany(dir, rec)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "UAE", "First_Abu_Dhabi_Bank_questions.jsonl"), path)

	lines := readLines(t, path)
	require.Len(t, lines, 2)

	var q model.Question
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &q))
	assert.Equal(t, "FAB1001", q.ID)
	assert.Equal(t, "First Abu Dhabi Bank", q.Metadata.Company)
}

func TestWriteCombined_PreservesOrder(t *testing.T) {
	dir := t.TempDir()
	records := []*model.CompanyRecord{
		sampleRecord("First Abu Dhabi Bank", "FAB", "UAE", 2),
		sampleRecord("Bank Muscat", "BM", "Oman", 1),
	}

	path, err := WriteCombined(dir, records)
	require.NoError(t, err)

	lines := readLines(t, path)
	require.Len(t, lines, 3)

	var ids []string
	for _, line := range lines {
		var q model.Question
		require.NoError(t, json.Unmarshal([]byte(line), &q))
		ids = append(ids, q.ID)
	}
	assert.Equal(t, []string{"FAB1001", "FAB1002", "BM1001"}, ids)
}

func TestWriteQuestions_EmptyList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "KSA", "Empty_questions.jsonl")
	require.NoError(t, WriteQuestions(path, nil))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestWriteSummaryCSV(t *testing.T) {
	dir := t.TempDir()
	records := []*model.CompanyRecord{
		sampleRecord("First Abu Dhabi Bank", "FAB", "UAE", 2),
		sampleRecord("Bank Muscat", "BM", "Oman", 1),
	}

	path, err := WriteSummaryCSV(dir, records)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, summaryColumns, rows[0])
	assert.Equal(t, []string{"First Abu Dhabi Bank", "FAB", "UAE", "1", "2", "Financial Performance"}, rows[1])
	assert.Equal(t, []string{"Bank Muscat", "BM", "Oman", "1", "1", "Financial Performance"}, rows[2])
}

func TestWriteSummaryXLSX(t *testing.T) {
	dir := t.TempDir()
	records := []*model.CompanyRecord{sampleRecord("Tabreed", "TAB", "UAE", 1)}

	path, err := WriteSummaryXLSX(dir, records)
	require.NoError(t, err)

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)
	require.Len(t, f.Sheets[0].Rows, 2)

	header := f.Sheets[0].Rows[0]
	assert.Equal(t, "Company", header.Cells[0].Value)
	assert.Equal(t, "Tabreed", f.Sheets[0].Rows[1].Cells[0].Value)
	assert.Equal(t, "1", f.Sheets[0].Rows[1].Cells[4].Value)
}
