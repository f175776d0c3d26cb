// Package splitter divides a tabular source file into an ordered sequence
// of chunk files, bounded either by row count or by approximate byte size.
//
// Two stop semantics apply during a split: the safety cap yields a soft
// stop (chunks written so far are valid and kept), while an I/O failure
// triggers a full rollback (all chunks from this call are deleted and a
// PartialWrite error is returned).
package splitter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tabular-tools/chunkctl/pkg/errors"
	"github.com/tabular-tools/chunkctl/pkg/estimate"
	"github.com/tabular-tools/chunkctl/pkg/tabular"
)

// Chunk describes one chunk file written by a split call.
type Chunk struct {
	Index int // 1-based part number
	Path  string
	Rows  int
	Bytes int64
}

// Progress receives informational callbacks during a split. Implementations
// must not fail; all methods are advisory.
type Progress interface {
	// EstimateReady reports the initial row estimate for a size-based split.
	EstimateReady(est estimate.Estimate)
	// EstimateAdjusted reports the one-time correction of the row estimate.
	EstimateAdjusted(rowsPerChunk int)
	// ChunkWritten reports one materialized chunk.
	ChunkWritten(c Chunk)
}

// Splitter performs split operations. The zero value uses the default
// chunk cap, declines continuation past the cap (no collaborator), and
// reports no progress.
type Splitter struct {
	// MaxChunks caps the chunks per call; 0 means DefaultMaxChunks,
	// negative disables the cap.
	MaxChunks int
	// Confirm is consulted once when a call reaches the cap.
	Confirm   ConfirmFunc
	Estimator estimate.Estimator
	Progress  Progress
}

// New returns a Splitter with the default safety cap.
func New() *Splitter {
	return &Splitter{MaxChunks: DefaultMaxChunks}
}

// ChunkFileName renders the chunk naming convention:
// <base>_part_<NNN>.<ext>, NNN zero-padded to width 3 starting at 001.
func ChunkFileName(base string, index int, format tabular.Format) string {
	return fmt.Sprintf("%s_part_%03d.%s", base, index, format.Ext())
}

// OutputDir returns the conventional chunk directory for a source file:
// <stem>_chunks/ sibling to the source.
func OutputDir(sourcePath string) string {
	return filepath.Join(filepath.Dir(sourcePath), stem(sourcePath)+"_chunks")
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (s *Splitter) newGuard() *guard {
	max := s.MaxChunks
	if max == 0 {
		max = DefaultMaxChunks
	}
	return &guard{maxChunks: max, confirm: s.Confirm}
}

// writeChunk materializes one chunk file and reports it.
func (s *Splitter) writeChunk(outDir, base string, format tabular.Format, index int, t *tabular.Table) (Chunk, error) {
	path := filepath.Join(outDir, ChunkFileName(base, index, format))
	if err := tabular.Write(path, t); err != nil {
		return Chunk{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return Chunk{}, err
	}
	chunk := Chunk{Index: index, Path: path, Rows: t.RowCount(), Bytes: info.Size()}
	if s.Progress != nil {
		s.Progress.ChunkWritten(chunk)
	}
	return chunk, nil
}

// rollback deletes every chunk written so far in this call and wraps the
// cause as a PartialWrite error. Missing files are ignored.
func rollback(chunks []Chunk, message string, cause error) error {
	for _, c := range chunks {
		os.Remove(c.Path)
	}
	return errors.PartialWrite(message, cause).WithContext("rolled_back_chunks", len(chunks))
}
