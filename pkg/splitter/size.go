package splitter

import (
	"fmt"

	"github.com/tabular-tools/chunkctl/pkg/estimate"
	"github.com/tabular-tools/chunkctl/pkg/tabular"
)

// BySize splits a source file into chunks approximating targetBytes each.
// The row estimate is corrected at most once, after the first chunk is
// materialized, by comparing its realized size against the target. Chunk
// sizes remain approximate, not guaranteed.
func (s *Splitter) BySize(sourcePath string, targetBytes int64, outDir string) ([]Chunk, error) {
	if targetBytes <= 0 {
		return nil, fmt.Errorf("target size must be positive, got %d", targetBytes)
	}
	format, err := tabular.Detect(sourcePath)
	if err != nil {
		return nil, err
	}

	est := s.Estimator.ForSize(sourcePath, format, targetBytes)
	if s.Progress != nil {
		s.Progress.EstimateReady(est)
	}

	if format.Streamable() {
		return s.sizeStreaming(sourcePath, format, targetBytes, est.RowsPerChunk, outDir)
	}
	return s.sizeWholeLoad(sourcePath, format, targetBytes, est.RowsPerChunk, outDir)
}

// sizeStreaming accumulates bounded sub-chunk reads until the working row
// estimate is reached, then writes one output chunk and resets.
func (s *Splitter) sizeStreaming(sourcePath string, format tabular.Format, targetBytes int64, rowsPerChunk int, outDir string) ([]Chunk, error) {
	scanner, err := tabular.OpenCSV(sourcePath)
	if err != nil {
		return nil, err
	}
	defer scanner.Close()

	// Read in sub-chunks of a tenth of the estimate so an over-estimate
	// does not drag a whole oversized chunk into memory at once.
	readRows := rowsPerChunk / 10
	if readRows > 5000 {
		readRows = 5000
	}
	if readRows < 100 {
		readRows = 100
	}

	guard := s.newGuard()
	base := stem(sourcePath)
	var (
		chunks      []Chunk
		accumulated [][]string
		corrected   bool
	)

	num := 1
	for {
		batch, err := scanner.ReadRows(readRows)
		if err != nil {
			return nil, rollback(chunks, "split failed reading "+sourcePath, err)
		}
		accumulated = append(accumulated, batch...)
		exhausted := len(batch) < readRows

		if len(accumulated) >= rowsPerChunk || (exhausted && len(accumulated) > 0) {
			if !guard.allow(num) {
				break
			}
			chunk, err := s.writeChunk(outDir, base, format, num, tabular.NewTable(scanner.Header(), accumulated))
			if err != nil {
				return nil, rollback(chunks, "split failed writing chunk", err)
			}
			chunks = append(chunks, chunk)

			if !corrected {
				rowsPerChunk = s.correctFromRealized(chunk, format, targetBytes, rowsPerChunk)
				corrected = true
			}

			accumulated = nil
			num++
		}
		if exhausted {
			break
		}
	}
	return chunks, nil
}

// sizeWholeLoad materializes the source once and walks forward in strides
// of the working row estimate.
func (s *Splitter) sizeWholeLoad(sourcePath string, format tabular.Format, targetBytes int64, rowsPerChunk int, outDir string) ([]Chunk, error) {
	table, err := tabular.ReadExcel(sourcePath)
	if err != nil {
		return nil, err
	}

	guard := s.newGuard()
	base := stem(sourcePath)
	total := table.RowCount()
	var (
		chunks    []Chunk
		corrected bool
	)

	num := 1
	for current := 0; current < total; {
		if !guard.allow(num) {
			break
		}
		end := current + rowsPerChunk
		if end > total {
			end = total
		}
		chunk, err := s.writeChunk(outDir, base, format, num, table.Slice(current, end))
		if err != nil {
			return nil, rollback(chunks, "split failed writing chunk", err)
		}
		chunks = append(chunks, chunk)

		if !corrected {
			// Workbook serialization overhead is hard to predict, so the
			// correction keys off the realized chunk size band instead of
			// bytes-per-row.
			if chunk.Bytes > 0 && (chunk.Bytes > targetBytes*6/5 || chunk.Bytes*2 < targetBytes) {
				ratio := float64(targetBytes) / float64(chunk.Bytes)
				adjusted := int(float64(rowsPerChunk) * ratio * 0.9)
				remaining := total - current
				if adjusted > remaining {
					adjusted = remaining
				}
				if adjusted < estimate.MinRows {
					adjusted = estimate.MinRows
				}
				if adjusted != rowsPerChunk {
					rowsPerChunk = adjusted
					if s.Progress != nil {
						s.Progress.EstimateAdjusted(rowsPerChunk)
					}
				}
			}
			corrected = true
		}

		current = end
		num++
	}
	return chunks, nil
}

// correctFromRealized recomputes the row estimate from the first chunk's
// actual bytes-per-row. The working estimate is replaced only when the
// revision differs by more than 20%.
func (s *Splitter) correctFromRealized(chunk Chunk, format tabular.Format, targetBytes int64, rowsPerChunk int) int {
	if chunk.Bytes <= 0 || chunk.Rows <= 0 {
		return rowsPerChunk
	}
	bytesPerRow := float64(chunk.Bytes) / float64(chunk.Rows)
	revised := estimate.Clamp(int(float64(targetBytes)*0.8/bytesPerRow), format)

	delta := revised - rowsPerChunk
	if delta < 0 {
		delta = -delta
	}
	if float64(delta) > float64(rowsPerChunk)*0.2 {
		if s.Progress != nil {
			s.Progress.EstimateAdjusted(revised)
		}
		return revised
	}
	return rowsPerChunk
}
