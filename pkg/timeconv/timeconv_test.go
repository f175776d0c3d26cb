package timeconv_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabular-tools/chunkctl/pkg/timeconv"
)

func TestParseEpochAutoUnits(t *testing.T) {
	want := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)

	// Seconds and the same instant in milliseconds.
	got, err := timeconv.Parse("1700000000", timeconv.UnitAuto, time.UTC)
	require.NoError(t, err)
	assert.True(t, got.Equal(want), got)

	got, err = timeconv.Parse("1700000000000", timeconv.UnitAuto, time.UTC)
	require.NoError(t, err)
	assert.True(t, got.Equal(want), got)
}

func TestParseExplicitUnits(t *testing.T) {
	want := time.Date(1970, 1, 12, 13, 46, 40, 0, time.UTC)

	got, err := timeconv.Parse("1000000", timeconv.UnitSeconds, time.UTC)
	require.NoError(t, err)
	assert.True(t, got.Equal(want), got)

	got, err = timeconv.Parse("1000000", timeconv.UnitMillis, time.UTC)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(1970, 1, 1, 0, 16, 40, 0, time.UTC)), got)

	_, err = timeconv.Parse("1000000", timeconv.Unit("days"), time.UTC)
	require.Error(t, err)
}

func TestParseText(t *testing.T) {
	eastern, err := timeconv.Eastern()
	require.NoError(t, err)

	// Explicit offset wins over the supplied location.
	got, err := timeconv.Parse("2024-01-15T12:00:00Z", timeconv.UnitAuto, eastern)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)))

	// Zone-less input is interpreted in the supplied location.
	got, err = timeconv.Parse("2024-01-15 12:00:00", timeconv.UnitAuto, eastern)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 1, 15, 17, 0, 0, 0, time.UTC)))

	_, err = timeconv.Parse("not-a-time", timeconv.UnitAuto, time.UTC)
	require.Error(t, err)
}

func TestUTCToEasternDST(t *testing.T) {
	winter := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	summer := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)

	got, err := timeconv.UTCToEastern(winter)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Hour()) // EST, UTC-5
	assert.Equal(t, "EST", got.Format("MST"))

	got, err = timeconv.UTCToEastern(summer)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Hour()) // EDT, UTC-4
	assert.Equal(t, "EDT", got.Format("MST"))
}

func TestEasternToUTC(t *testing.T) {
	eastern, err := timeconv.Eastern()
	require.NoError(t, err)

	noon := time.Date(2024, 1, 15, 12, 0, 0, 0, eastern)
	got := timeconv.EasternToUTC(noon)
	assert.Equal(t, 17, got.Hour())
	assert.Equal(t, time.UTC, got.Location())
}

func TestFormat(t *testing.T) {
	ts := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-15 12:00:00 UTC", timeconv.Format(ts, ""))
	assert.Equal(t, "2024-01-15", timeconv.Format(ts, "2006-01-02"))
}
