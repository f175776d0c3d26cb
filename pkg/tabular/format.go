// Package tabular reads and writes row/column oriented files (CSV and Excel
// workbooks). CSV is row-streamable; workbook formats must be loaded whole
// because of their ZIP container layout.
package tabular

import (
	"path/filepath"
	"strings"

	"github.com/tabular-tools/chunkctl/pkg/errors"
)

// Format identifies a supported tabular file format.
type Format int

const (
	// FormatCSV is comma-separated text, readable row by row.
	FormatCSV Format = iota
	// FormatXLSX is an Excel workbook.
	FormatXLSX
	// FormatXLS is a legacy-named Excel workbook, handled by the same engine.
	FormatXLS
)

// Detect determines the format of a file from its extension,
// case-insensitively. Unknown extensions yield an UnsupportedFormat error.
func Detect(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".xls":
		return FormatXLS, nil
	default:
		return 0, errors.UnsupportedFormat(ext)
	}
}

// Ext returns the lowercase file extension for the format, without the dot.
func (f Format) Ext() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatXLSX:
		return "xlsx"
	case FormatXLS:
		return "xls"
	default:
		return ""
	}
}

// Streamable reports whether rows can be read incrementally without
// loading the whole file.
func (f Format) Streamable() bool {
	return f == FormatCSV
}

// String returns a human-readable format name.
func (f Format) String() string {
	if f == FormatCSV {
		return "CSV"
	}
	return "Excel"
}

// Read loads an entire file into a Table, dispatching on extension.
func Read(path string) (*Table, error) {
	format, err := Detect(path)
	if err != nil {
		return nil, err
	}
	if format.Streamable() {
		return ReadCSV(path)
	}
	return ReadExcel(path)
}

// Sample reads at most maxRows data rows from the head of a file.
func Sample(path string, maxRows int) (*Table, error) {
	format, err := Detect(path)
	if err != nil {
		return nil, err
	}
	if format.Streamable() {
		return SampleCSV(path, maxRows)
	}
	return SampleExcel(path, maxRows)
}

// Write writes a Table to path, dispatching on the path's extension.
func Write(path string, t *Table) error {
	format, err := Detect(path)
	if err != nil {
		return err
	}
	if format.Streamable() {
		return WriteCSV(path, t)
	}
	return WriteExcel(path, t)
}
