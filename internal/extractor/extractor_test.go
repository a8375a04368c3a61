package extractor

import (
	"testing"

	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestExtractor() *Extractor {
	return New(zap.NewNop())
}

func balanceSheetTable() models.Table {
	return models.Table{Rows: [][]string{
		{"", "2023", "2022"},
		{"Total Assets", "5,000", "4,200"},
		{"Total Liabilities", "2,000", "1,900"},
	}}
}

func TestNormalizeBalanceSheet(t *testing.T) {
	e := newTestExtractor()

	mapping := e.Normalize("Consolidated Balance Sheet as of year end", []models.Table{balanceSheetTable()})
	require.Equal(t, 1, mapping.Len())

	set, ok := mapping.Get(models.KindBalanceSheet)
	require.True(t, ok)

	series, ok := set.Get("total assets")
	require.True(t, ok)

	v, ok := series.Get("2023")
	require.True(t, ok)
	assert.Equal(t, 5000.0, v)

	v, ok = series.Get("2022")
	require.True(t, ok)
	assert.Equal(t, 4200.0, v)
}

func TestNormalizeFallbackToExtracted(t *testing.T) {
	e := newTestExtractor()

	// Text matches no statement trigger, but a table row does match the
	// generic keyword set.
	table := models.Table{Rows: [][]string{
		{"Metric", "FY22"},
		{"Total Assets", "9,500"},
	}}
	mapping := e.Normalize("quarterly operational summary", []models.Table{table})

	require.Equal(t, 1, mapping.Len())
	_, ok := mapping.Get(models.KindIncomeStatement)
	assert.False(t, ok)

	set, ok := mapping.Get(models.KindExtracted)
	require.True(t, ok)
	_, ok = set.Get("total assets")
	assert.True(t, ok)
}

func TestNormalizeFallbackNeverSupplements(t *testing.T) {
	e := newTestExtractor()

	// "balance sheet" triggers but its keywords match nothing, so the
	// result stays empty and only then may the generic pass run.
	table := models.Table{Rows: [][]string{
		{"", "2023"},
		{"Revenue", "100"},
	}}
	mapping := e.Normalize("balance sheet", []models.Table{table})

	require.Equal(t, 1, mapping.Len())
	_, ok := mapping.Get(models.KindBalanceSheet)
	assert.False(t, ok)
	_, ok = mapping.Get(models.KindExtracted)
	assert.True(t, ok)
}

func TestNormalizeMultipleKinds(t *testing.T) {
	e := newTestExtractor()

	income := models.Table{Rows: [][]string{
		{"", "2023"},
		{"Revenue", "150"},
		{"Net Income", "30"},
	}}
	text := "Income Statement and Balance Sheet. Total assets grew."
	mapping := e.Normalize(text, []models.Table{income, balanceSheetTable()})

	_, ok := mapping.Get(models.KindIncomeStatement)
	assert.True(t, ok)
	_, ok = mapping.Get(models.KindBalanceSheet)
	assert.True(t, ok)
	_, ok = mapping.Get(models.KindExtracted)
	assert.False(t, ok)
}

func TestNormalizeEmptyDocument(t *testing.T) {
	e := newTestExtractor()
	mapping := e.Normalize("", nil)
	assert.Equal(t, 0, mapping.Len())
}

func TestReduceTablesNoMatchesReturnsNil(t *testing.T) {
	e := newTestExtractor()

	assert.Nil(t, e.ReduceTables(nil, fallbackKeywords))
	assert.Nil(t, e.ReduceTables([]models.Table{}, fallbackKeywords))

	noMatch := models.Table{Rows: [][]string{
		{"Header", "2023"},
		{"Headcount", "120"},
	}}
	assert.Nil(t, e.ReduceTables([]models.Table{noMatch}, fallbackKeywords))
}

func TestReduceTablesUnparsableCellsDropped(t *testing.T) {
	e := newTestExtractor()

	table := models.Table{Rows: [][]string{
		{"", "2023", "2022"},
		{"Revenue", "n/a", "1,000"},
	}}
	set := e.ReduceTables([]models.Table{table}, []string{"revenue"})
	require.NotNil(t, set)

	series, ok := set.Get("revenue")
	require.True(t, ok)
	assert.Equal(t, 1, series.Len())
	_, ok = series.Get("2023")
	assert.False(t, ok)
	v, ok := series.Get("2022")
	require.True(t, ok)
	assert.Equal(t, 1000.0, v)
}

func TestReduceTablesRaggedRowsSyntheticHeadings(t *testing.T) {
	e := newTestExtractor()

	// Row 0 is shorter than the data row; the extra column gets a
	// synthetic heading.
	table := models.Table{Rows: [][]string{
		{"", "2023"},
		{"Revenue", "100", "200"},
	}}
	set := e.ReduceTables([]models.Table{table}, []string{"revenue"})
	require.NotNil(t, set)

	series, _ := set.Get("revenue")
	require.Equal(t, []string{"2023", "col2"}, series.Periods())
}

func TestReduceTablesIdempotent(t *testing.T) {
	e := newTestExtractor()
	tables := []models.Table{balanceSheetTable()}

	first := e.ReduceTables(tables, balanceSheetKeywords)
	second := e.ReduceTables(tables, balanceSheetKeywords)

	require.NotNil(t, first)
	require.NotNil(t, second)
	require.Equal(t, first.Labels(), second.Labels())
	for _, label := range first.Labels() {
		s1, _ := first.Get(label)
		s2, _ := second.Get(label)
		require.Equal(t, s1.Periods(), s2.Periods())
		for _, p := range s1.Periods() {
			v1, _ := s1.Get(p)
			v2, _ := s2.Get(p)
			assert.Equal(t, v1, v2)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	e := newTestExtractor()
	text := "Balance Sheet"
	tables := []models.Table{balanceSheetTable()}

	first := e.Normalize(text, tables)
	second := e.Normalize(text, tables)
	assert.Equal(t, first.Kinds(), second.Kinds())
}
