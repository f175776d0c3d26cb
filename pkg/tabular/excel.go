package tabular

import (
	"errors"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// ReadExcel loads the first sheet of a workbook into a Table. The first row
// is the header. Workbooks saved under a legacy .xls name are opened by the
// same engine; true OLE-container workbooks fail at open.
func ReadExcel(path string) (*Table, error) {
	return readExcel(path, -1)
}

// SampleExcel reads at most maxRows data rows from the first sheet.
func SampleExcel(path string, maxRows int) (*Table, error) {
	return readExcel(path, maxRows)
}

func readExcel(path string, maxRows int) (*Table, error) {
	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in workbook %s", path)
	}

	// Only the first sheet carries chunk data.
	iter, err := workbook.Rows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("open rows of sheet %s: %w", sheets[0], err)
	}
	defer iter.Close()

	var (
		header []string
		rows   [][]string
		first  = true
	)
	for iter.Next() {
		row, err := iter.Columns()
		if err != nil {
			return nil, fmt.Errorf("read row in sheet %s: %w", sheets[0], err)
		}
		if first {
			if len(row) == 0 {
				// Skip leading empty rows before the header.
				continue
			}
			header = row
			first = false
			continue
		}
		rows = append(rows, row)
		if maxRows >= 0 && len(rows) >= maxRows {
			break
		}
	}

	if header == nil {
		return nil, errors.New("workbook sheet is empty: " + path)
	}
	return NewTable(header, rows), nil
}

// WriteExcel writes a Table to path as a workbook, header first. The
// workbook bytes are written directly so that chunk files keeping a .xls
// suffix round-trip through the same engine.
func WriteExcel(path string, t *Table) error {
	workbook := excelize.NewFile()
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	stream, err := workbook.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("write workbook %s: %w", path, err)
	}

	if err := writeStreamRow(stream, 1, t.Header); err != nil {
		return fmt.Errorf("write workbook %s: %w", path, err)
	}
	for i, row := range t.Rows {
		if err := writeStreamRow(stream, i+2, row); err != nil {
			return fmt.Errorf("write workbook %s: %w", path, err)
		}
	}
	if err := stream.Flush(); err != nil {
		return fmt.Errorf("write workbook %s: %w", path, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := workbook.WriteTo(file); err != nil {
		file.Close()
		return fmt.Errorf("write workbook %s: %w", path, err)
	}
	return file.Close()
}

func writeStreamRow(stream *excelize.StreamWriter, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return stream.SetRow(cell, cells)
}
