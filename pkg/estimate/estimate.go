// Package estimate predicts how many rows of a tabular file fit a byte
// budget. Estimates are deliberately biased low and self-correct later when
// real chunk sizes are observed; estimation never fails, it degrades to a
// budget-proportional guess.
package estimate

import (
	"github.com/tabular-tools/chunkctl/pkg/tabular"
)

// Sample size caps. Workbook sampling has a higher fixed cost per row, so
// fewer rows are read there.
const (
	CSVSampleRows   = 1000
	ExcelSampleRows = 500
)

// Row clamp bounds per format.
const (
	MinRows      = 100
	MaxRowsCSV   = 500000
	MaxRowsExcel = 100000
)

// Safety margins applied to the byte budget before dividing by bytes-per-row.
// The workbook margin is lower because of container overhead.
const (
	csvMargin   = 0.8
	excelMargin = 0.7
)

// Estimate is the outcome of one estimation pass.
type Estimate struct {
	RowsPerChunk int
	BytesPerRow  float64
	SampledRows  int
	// Fallback is set when sampling failed and a budget-proportional
	// heuristic was used instead.
	Fallback bool
}

// Estimator samples file prefixes to derive bytes-per-row. The zero value
// uses the default sample caps.
type Estimator struct {
	CSVSampleRows   int
	ExcelSampleRows int
}

// ForSize estimates the number of rows per chunk for the given byte budget.
// It never returns an error: on any sampling or parsing failure the result
// falls back to a rough budget-proportional guess.
func (e Estimator) ForSize(path string, format tabular.Format, targetBytes int64) Estimate {
	est, err := e.sample(path, format, targetBytes)
	if err != nil {
		return fallback(format, targetBytes)
	}
	return est
}

func (e Estimator) sample(path string, format tabular.Format, targetBytes int64) (Estimate, error) {
	sampleRows := e.CSVSampleRows
	if sampleRows <= 0 {
		sampleRows = CSVSampleRows
	}
	margin := csvMargin
	if !format.Streamable() {
		sampleRows = e.ExcelSampleRows
		if sampleRows <= 0 {
			sampleRows = ExcelSampleRows
		}
		margin = excelMargin
	}

	sample, err := tabular.Sample(path, sampleRows)
	if err != nil {
		return Estimate{}, err
	}

	var bytesPerRow float64
	if format.Streamable() {
		// Serialize the sample back to CSV text and measure it.
		text, err := tabular.MarshalCSV(sample)
		if err != nil || sample.RowCount() == 0 {
			return fallback(format, targetBytes), nil
		}
		bytesPerRow = float64(len(text)) / float64(sample.RowCount())
	} else {
		// The true serialized size of a workbook row is not cheaply
		// knowable before writing; use a conservative per-column cost.
		bytesPerRow = float64(sample.ColumnCount() * 20)
		if bytesPerRow < 100 {
			bytesPerRow = 100
		}
	}

	rows := int(float64(targetBytes) * margin / bytesPerRow)
	return Estimate{
		RowsPerChunk: Clamp(rows, format),
		BytesPerRow:  bytesPerRow,
		SampledRows:  sample.RowCount(),
	}, nil
}

// Clamp bounds a row estimate to the valid range for the format.
func Clamp(rows int, format tabular.Format) int {
	max := MaxRowsCSV
	if !format.Streamable() {
		max = MaxRowsExcel
	}
	if rows < MinRows {
		return MinRows
	}
	if rows > max {
		return max
	}
	return rows
}

// fallback produces a budget-proportional guess with a conservative ceiling.
func fallback(format tabular.Format, targetBytes int64) Estimate {
	var rows int64
	if format.Streamable() {
		rows = targetBytes / 200
		if rows < 1000 {
			rows = 1000
		}
		if rows > 50000 {
			rows = 50000
		}
	} else {
		rows = targetBytes / 500
		if rows < 500 {
			rows = 500
		}
		if rows > 25000 {
			rows = 25000
		}
	}
	return Estimate{RowsPerChunk: int(rows), Fallback: true}
}
