// Package discovery reconstructs an ordered chunk set from a directory by
// parsing filenames. The naming convention is the persisted state: there is
// no required manifest, and ordering comes from the embedded part number,
// never from lexicographic filename order.
package discovery

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/tabular-tools/chunkctl/pkg/errors"
	"github.com/tabular-tools/chunkctl/pkg/manifest"
	"github.com/tabular-tools/chunkctl/pkg/tabular"
)

// chunkPattern matches <base>_part_<digits>.<ext>, case-insensitive on the
// extension only.
var chunkPattern = regexp.MustCompile(`^(.+)_part_(\d+)\.((?i:csv|xlsx|xls))$`)

// ChunkFile is one discovered chunk.
type ChunkFile struct {
	Path   string
	Name   string
	Base   string
	Part   int
	Format tabular.Format
}

// ChunkSet is the ordered chunk sequence found in one directory.
type ChunkSet struct {
	Dir   string
	Files []ChunkFile
	// Bases holds the distinct inferred base names, sorted. More than one
	// base means the directory mixes chunks from different sources.
	Bases []string
	// Manifest is the split-time record, when one is present and readable.
	Manifest *manifest.Manifest
}

// Discover scans dir for chunk files and returns them ordered by part
// number. It fails with NoChunksFound when nothing matches.
func Discover(dir string) (*ChunkSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	set := &ChunkSet{Dir: dir}
	bases := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := chunkPattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		part, err := strconv.Atoi(match[2])
		if err != nil {
			continue
		}
		format, err := tabular.Detect(entry.Name())
		if err != nil {
			continue
		}
		bases[match[1]] = true
		set.Files = append(set.Files, ChunkFile{
			Path:   filepath.Join(dir, entry.Name()),
			Name:   entry.Name(),
			Base:   match[1],
			Part:   part,
			Format: format,
		})
	}

	if len(set.Files) == 0 {
		return nil, errors.NoChunksFound(dir)
	}

	// Numeric order: part_2 sorts before part_10.
	sort.Slice(set.Files, func(i, j int) bool {
		if set.Files[i].Part != set.Files[j].Part {
			return set.Files[i].Part < set.Files[j].Part
		}
		return set.Files[i].Name < set.Files[j].Name
	})

	for base := range bases {
		set.Bases = append(set.Bases, base)
	}
	sort.Strings(set.Bases)

	// The manifest is advisory; an unreadable one is treated as absent.
	if m, err := manifest.Load(dir); err == nil {
		set.Manifest = m
	}

	return set, nil
}

// Ambiguous reports whether the directory mixes chunks from more than one
// inferred source. Merging still proceeds; callers should warn.
func (s *ChunkSet) Ambiguous() bool {
	return len(s.Bases) > 1
}

// ManifestMismatches describes differences between the split-time manifest
// and the files actually found. Empty when no manifest is present.
func (s *ChunkSet) ManifestMismatches() []string {
	if s.Manifest == nil {
		return nil
	}
	names := make([]string, len(s.Files))
	for i, f := range s.Files {
		names[i] = f.Name
	}
	return s.Manifest.Mismatches(names)
}
