package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// CSVScanner reads a CSV file in bounded row batches. The header row is
// consumed on open and available via Header.
type CSVScanner struct {
	file   *os.File
	reader *csv.Reader
	header []string
	done   bool
}

// OpenCSV opens a CSV file for batched reading and consumes the header row.
func OpenCSV(path string) (*CSVScanner, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		file.Close()
		if err == io.EOF {
			return nil, fmt.Errorf("read header of %s: file is empty", path)
		}
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	return &CSVScanner{file: file, reader: reader, header: header}, nil
}

// Header returns the header row consumed on open.
func (s *CSVScanner) Header() []string {
	return s.header
}

// ReadRows reads up to n data rows. Fewer than n rows (possibly zero) are
// returned once the file is exhausted; that is not an error.
func (s *CSVScanner) ReadRows(n int) ([][]string, error) {
	if s.done {
		return nil, nil
	}

	rows := make([][]string, 0, n)
	for len(rows) < n {
		record, err := s.reader.Read()
		if err == io.EOF {
			s.done = true
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", s.file.Name(), err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// Close releases the underlying file.
func (s *CSVScanner) Close() error {
	return s.file.Close()
}

// ReadCSV loads an entire CSV file into a Table.
func ReadCSV(path string) (*Table, error) {
	scanner, err := OpenCSV(path)
	if err != nil {
		return nil, err
	}
	defer scanner.Close()

	var rows [][]string
	for {
		batch, err := scanner.ReadRows(4096)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		rows = append(rows, batch...)
	}
	return NewTable(scanner.Header(), rows), nil
}

// SampleCSV reads at most maxRows data rows from the head of a CSV file.
func SampleCSV(path string, maxRows int) (*Table, error) {
	scanner, err := OpenCSV(path)
	if err != nil {
		return nil, err
	}
	defer scanner.Close()

	rows, err := scanner.ReadRows(maxRows)
	if err != nil {
		return nil, err
	}
	return NewTable(scanner.Header(), rows), nil
}

// WriteCSV writes a Table to path as CSV, header first.
func WriteCSV(path string, t *Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(t.Header); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			file.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}

// MarshalCSV serializes a Table to its native CSV text form. Used to
// measure the serialized size of a sample without touching the filesystem.
func MarshalCSV(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(t.Header); err != nil {
		return nil, err
	}
	if err := writer.WriteAll(t.Rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
