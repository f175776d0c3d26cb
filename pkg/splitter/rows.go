package splitter

import (
	"fmt"

	"github.com/tabular-tools/chunkctl/pkg/tabular"
)

// ByRows splits a source file into chunks of exactly rowsPerChunk rows
// (the last chunk holds the remainder). Chunks are written into outDir,
// which must already exist.
func (s *Splitter) ByRows(sourcePath string, rowsPerChunk int, outDir string) ([]Chunk, error) {
	if rowsPerChunk <= 0 {
		return nil, fmt.Errorf("rows per chunk must be positive, got %d", rowsPerChunk)
	}
	format, err := tabular.Detect(sourcePath)
	if err != nil {
		return nil, err
	}
	if format.Streamable() {
		return s.rowsStreaming(sourcePath, format, rowsPerChunk, outDir)
	}
	return s.rowsWholeLoad(sourcePath, format, rowsPerChunk, outDir)
}

// rowsStreaming reads and writes incrementally, bounding peak memory to one
// chunk's worth of rows regardless of source size.
func (s *Splitter) rowsStreaming(sourcePath string, format tabular.Format, rowsPerChunk int, outDir string) ([]Chunk, error) {
	scanner, err := tabular.OpenCSV(sourcePath)
	if err != nil {
		return nil, err
	}
	defer scanner.Close()

	guard := s.newGuard()
	base := stem(sourcePath)
	var chunks []Chunk

	for num := 1; ; num++ {
		rows, err := scanner.ReadRows(rowsPerChunk)
		if err != nil {
			return nil, rollback(chunks, "split failed reading "+sourcePath, err)
		}
		if len(rows) == 0 {
			break
		}
		if !guard.allow(num) {
			// Soft stop: the chunks written so far are valid and kept.
			break
		}

		chunk, err := s.writeChunk(outDir, base, format, num, tabular.NewTable(scanner.Header(), rows))
		if err != nil {
			return nil, rollback(chunks, "split failed writing chunk", err)
		}
		chunks = append(chunks, chunk)

		if len(rows) < rowsPerChunk {
			break
		}
	}
	return chunks, nil
}

// rowsWholeLoad materializes the entire source once, then slices by row
// index. An accepted limitation of workbook formats, not an error.
func (s *Splitter) rowsWholeLoad(sourcePath string, format tabular.Format, rowsPerChunk int, outDir string) ([]Chunk, error) {
	table, err := tabular.ReadExcel(sourcePath)
	if err != nil {
		return nil, err
	}

	guard := s.newGuard()
	base := stem(sourcePath)
	total := table.RowCount()
	var chunks []Chunk

	num := 1
	for start := 0; start < total; start += rowsPerChunk {
		if !guard.allow(num) {
			break
		}
		chunk, err := s.writeChunk(outDir, base, format, num, table.Slice(start, start+rowsPerChunk))
		if err != nil {
			return nil, rollback(chunks, "split failed writing chunk", err)
		}
		chunks = append(chunks, chunk)
		num++
	}
	return chunks, nil
}
