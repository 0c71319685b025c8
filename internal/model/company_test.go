package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCode(t *testing.T) {
	t.Parallel()

	t.Run("known abbreviations", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "FAB", GenerateCode("First Abu Dhabi Bank"))
		assert.Equal(t, "ENBD", GenerateCode("Emirates NBD"))
		assert.Equal(t, "BM", GenerateCode("Bank Muscat"))
	})

	t.Run("initials for three or more words", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "GIH", GenerateCode("Gulf Investment House"))
		// Only the first three words contribute.
		assert.Equal(t, "QNI", GenerateCode("Qatar National Insurance Group"))
	})

	t.Run("short names use leading letters", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "RA", GenerateCode("Randomfile"))
		assert.Equal(t, "ALHO", GenerateCode("Alba Holdings"))
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "UNK", GenerateCode(""))
	})
}

func TestCompanyRecordCategories(t *testing.T) {
	t.Parallel()

	rec := CompanyRecord{
		Questions: []Question{
			{Metadata: Metadata{Category: CategoryRiskFactors}},
			{Metadata: Metadata{Category: CategoryFinancialPerformance}},
			{Metadata: Metadata{Category: CategoryRiskFactors}},
			{Metadata: Metadata{Category: ""}},
		},
	}
	assert.Equal(t, []string{"Financial Performance", "Risk Factors", "Unknown"}, rec.Categories())
}

func TestSourceType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "financial_data", SourceType(CategoryFinancialPerformance))
	assert.Equal(t, "personnel_data", SourceType(CategoryKeyPersonnel))
	assert.Equal(t, "miscellaneous", SourceType("Something Else"))
	assert.Equal(t, "miscellaneous", SourceType(""))
}
