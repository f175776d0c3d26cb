// Package manifest persists an advisory record of a split operation next to
// its chunks. Chunk discovery works from filenames alone; the manifest only
// lets a later merge warn when the directory no longer matches what the
// split wrote.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/tabular-tools/chunkctl/pkg/splitter"
	"github.com/tabular-tools/chunkctl/pkg/tabular"
)

// FileName is the manifest file written into the chunk directory.
const FileName = "manifest.yaml"

// ChunkEntry records one chunk as written at split time.
type ChunkEntry struct {
	Name  string `yaml:"name"`
	Rows  int    `yaml:"rows"`
	Bytes int64  `yaml:"bytes"`
}

// Manifest records one split operation.
type Manifest struct {
	OperationID string       `yaml:"operation_id"`
	Source      string       `yaml:"source"`
	Format      string       `yaml:"format"`
	TotalRows   int          `yaml:"total_rows"`
	CreatedAt   time.Time    `yaml:"created_at"`
	Chunks      []ChunkEntry `yaml:"chunks"`
}

// Write records the chunks of a completed split in dir.
func Write(dir, sourceName string, format tabular.Format, chunks []splitter.Chunk) (*Manifest, error) {
	m := &Manifest{
		OperationID: uuid.New().String(),
		Source:      sourceName,
		Format:      format.Ext(),
		CreatedAt:   time.Now().UTC(),
	}
	for _, c := range chunks {
		m.TotalRows += c.Rows
		m.Chunks = append(m.Chunks, ChunkEntry{
			Name:  filepath.Base(c.Path),
			Rows:  c.Rows,
			Bytes: c.Bytes,
		})
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), data, 0o644); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}
	return m, nil
}

// Load reads the manifest from dir. A missing manifest is not an error;
// both return values are nil.
func Load(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// Mismatches compares the recorded chunk list against the file names found
// in the directory and describes every difference.
func (m *Manifest) Mismatches(found []string) []string {
	recorded := make(map[string]bool, len(m.Chunks))
	for _, c := range m.Chunks {
		recorded[c.Name] = true
	}
	present := make(map[string]bool, len(found))
	for _, name := range found {
		present[name] = true
	}

	var diffs []string
	for _, c := range m.Chunks {
		if !present[c.Name] {
			diffs = append(diffs, fmt.Sprintf("recorded chunk missing from directory: %s", c.Name))
		}
	}
	for _, name := range found {
		if !recorded[name] {
			diffs = append(diffs, fmt.Sprintf("chunk not recorded at split time: %s", name))
		}
	}
	return diffs
}
