// Package merger concatenates an ordered chunk set back into one file.
package merger

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tabular-tools/chunkctl/pkg/discovery"
	"github.com/tabular-tools/chunkctl/pkg/errors"
	"github.com/tabular-tools/chunkctl/pkg/tabular"
)

// partSuffix strips the _part_NNN tail from a chunk file stem.
var partSuffix = regexp.MustCompile(`_part_\d+$`)

// Result describes a completed merge.
type Result struct {
	Path  string
	Rows  int
	Bytes int64
}

// Progress receives an advisory callback per chunk file read.
type Progress interface {
	ChunkRead(name string, index, total int)
}

// Merger performs merge operations. The zero value reports no progress.
type Merger struct {
	Progress Progress
}

// DefaultOutputPath derives the conventional merged file path for a chunk
// set: <base>_merged.<ext> in the parent of the chunk directory, with the
// base taken from the first chunk's name.
func DefaultOutputPath(set *discovery.ChunkSet) string {
	first := set.Files[0]
	stem := strings.TrimSuffix(first.Name, filepath.Ext(first.Name))
	base := partSuffix.ReplaceAllString(stem, "")
	return filepath.Join(filepath.Dir(set.Dir), base+"_merged"+strings.ToLower(filepath.Ext(first.Name)))
}

// Merge reads every chunk in order and writes their row concatenation to
// outputPath (derived by DefaultOutputPath when empty). Rows keep exact
// chunk-sequence order; nothing is reordered or deduplicated. Chunk files
// are never modified or deleted. On failure a partially written output is
// removed before the error is returned.
func (m *Merger) Merge(set *discovery.ChunkSet, outputPath string) (*Result, error) {
	if len(set.Files) == 0 {
		return nil, errors.NoChunksFound(set.Dir)
	}
	if outputPath == "" {
		outputPath = DefaultOutputPath(set)
	}

	var merged *tabular.Table
	for i, file := range set.Files {
		if m.Progress != nil {
			m.Progress.ChunkRead(file.Name, i+1, len(set.Files))
		}
		table, err := tabular.Read(file.Path)
		if err != nil {
			return nil, fmt.Errorf("read chunk %s: %w", file.Name, err)
		}
		if merged == nil {
			merged = table
			continue
		}
		// Schema consistency is assumed; only the column count is checked.
		if table.ColumnCount() != merged.ColumnCount() {
			return nil, fmt.Errorf("chunk %s has %d columns, expected %d",
				file.Name, table.ColumnCount(), merged.ColumnCount())
		}
		merged.Rows = append(merged.Rows, table.Rows...)
	}

	if err := tabular.Write(outputPath, merged); err != nil {
		// Remove a partial output; the chunks themselves are untouched.
		os.Remove(outputPath)
		return nil, errors.PartialWrite("merge failed writing "+outputPath, err)
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return nil, err
	}
	return &Result{Path: outputPath, Rows: merged.RowCount(), Bytes: info.Size()}, nil
}
