package estimate_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabular-tools/chunkctl/pkg/estimate"
	"github.com/tabular-tools/chunkctl/pkg/tabular"
)

func writeCSVFixture(t *testing.T, rows int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	content := "id,name,value\n"
	for i := 1; i <= rows; i++ {
		content += fmt.Sprintf("%d,row-%d,%d\n", i, i, i*10)
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestForSizeCSV(t *testing.T) {
	path := writeCSVFixture(t, 200)

	var e estimate.Estimator
	est := e.ForSize(path, tabular.FormatCSV, 1<<20)

	assert.False(t, est.Fallback)
	assert.Positive(t, est.BytesPerRow)
	assert.Equal(t, 200, est.SampledRows)
	assert.GreaterOrEqual(t, est.RowsPerChunk, estimate.MinRows)
	assert.LessOrEqual(t, est.RowsPerChunk, estimate.MaxRowsCSV)
}

func TestForSizeBiasesLow(t *testing.T) {
	path := writeCSVFixture(t, 500)

	var e estimate.Estimator
	est := e.ForSize(path, tabular.FormatCSV, 10<<20)

	// The 0.8 margin keeps the estimate under the unmargined quotient.
	unmargined := int(float64(10<<20) / est.BytesPerRow)
	assert.Less(t, est.RowsPerChunk, unmargined)
}

func TestForSizeFallbackOnMissingFile(t *testing.T) {
	var e estimate.Estimator

	est := e.ForSize("/nonexistent/data.csv", tabular.FormatCSV, 1<<20)
	assert.True(t, est.Fallback)
	assert.GreaterOrEqual(t, est.RowsPerChunk, estimate.MinRows)
	assert.LessOrEqual(t, est.RowsPerChunk, estimate.MaxRowsCSV)

	est = e.ForSize("/nonexistent/data.xlsx", tabular.FormatXLSX, 1<<20)
	assert.True(t, est.Fallback)
	assert.GreaterOrEqual(t, est.RowsPerChunk, estimate.MinRows)
	assert.LessOrEqual(t, est.RowsPerChunk, estimate.MaxRowsExcel)
}

func TestFallbackProportionalToBudget(t *testing.T) {
	var e estimate.Estimator

	small := e.ForSize("/nonexistent/data.csv", tabular.FormatCSV, 400_000)
	large := e.ForSize("/nonexistent/data.csv", tabular.FormatCSV, 4_000_000)
	assert.Equal(t, 2000, small.RowsPerChunk)
	assert.Equal(t, 20000, large.RowsPerChunk)

	// Ceiling applies to huge budgets.
	huge := e.ForSize("/nonexistent/data.csv", tabular.FormatCSV, 1<<40)
	assert.Equal(t, 50000, huge.RowsPerChunk)
}

func TestForSizeExcelHeuristic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.xlsx")
	table := tabular.NewTable([]string{"a", "b", "c"}, [][]string{{"1", "2", "3"}})
	require.NoError(t, tabular.WriteExcel(path, table))

	var e estimate.Estimator
	est := e.ForSize(path, tabular.FormatXLSX, 1<<20)

	// Three columns fall under the 100-byte floor of the heuristic.
	assert.False(t, est.Fallback)
	assert.Equal(t, float64(100), est.BytesPerRow)
	assert.LessOrEqual(t, est.RowsPerChunk, estimate.MaxRowsExcel)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, estimate.MinRows, estimate.Clamp(1, tabular.FormatCSV))
	assert.Equal(t, estimate.MaxRowsCSV, estimate.Clamp(1<<30, tabular.FormatCSV))
	assert.Equal(t, estimate.MaxRowsExcel, estimate.Clamp(1<<30, tabular.FormatXLSX))
	assert.Equal(t, 12345, estimate.Clamp(12345, tabular.FormatCSV))
}

func TestTinyBudgetStaysAtFloor(t *testing.T) {
	path := writeCSVFixture(t, 100)

	var e estimate.Estimator
	est := e.ForSize(path, tabular.FormatCSV, 10)
	assert.Equal(t, estimate.MinRows, est.RowsPerChunk)
}
