package discovery_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabular-tools/chunkctl/pkg/discovery"
	"github.com/tabular-tools/chunkctl/pkg/errors"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("id\n1\n"), 0o644))
}

func TestDiscoverNumericOrdering(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "data_part_010.csv")
	touch(t, dir, "data_part_001.csv")
	touch(t, dir, "data_part_002.csv")
	touch(t, dir, "notes.txt")

	set, err := discovery.Discover(dir)
	require.NoError(t, err)
	require.Len(t, set.Files, 3)

	// part_2 sorts before part_10, not lexicographically.
	assert.Equal(t, []int{1, 2, 10}, []int{set.Files[0].Part, set.Files[1].Part, set.Files[2].Part})
	assert.Equal(t, "data_part_001.csv", set.Files[0].Name)
	assert.Equal(t, "data", set.Files[0].Base)
	assert.False(t, set.Ambiguous())
	assert.Equal(t, []string{"data"}, set.Bases)
}

func TestDiscoverCaseInsensitiveExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "data_part_001.CSV")
	touch(t, dir, "data_part_002.XlSx")

	set, err := discovery.Discover(dir)
	require.NoError(t, err)
	assert.Len(t, set.Files, 2)
}

func TestDiscoverIgnoresNonChunkNames(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "data_part_001.csv")
	touch(t, dir, "data_part_.csv")
	touch(t, dir, "data_part_002.pdf")
	touch(t, dir, "part_003.csv")
	touch(t, dir, "data.csv")

	set, err := discovery.Discover(dir)
	require.NoError(t, err)
	assert.Len(t, set.Files, 1)
}

func TestDiscoverAmbiguousBases(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "alpha_part_001.csv")
	touch(t, dir, "beta_part_001.csv")

	set, err := discovery.Discover(dir)
	require.NoError(t, err)

	// Multiple sources is a warning, not a rejection.
	assert.True(t, set.Ambiguous())
	assert.Equal(t, []string{"alpha", "beta"}, set.Bases)
	assert.Len(t, set.Files, 2)
}

func TestDiscoverEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "notes.txt")

	_, err := discovery.Discover(dir)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNoChunksFound))
}

func TestDiscoverMissingDirectory(t *testing.T) {
	_, err := discovery.Discover(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
