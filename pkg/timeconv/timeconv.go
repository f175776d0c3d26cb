// Package timeconv converts timestamps between UTC and US Eastern time.
// Numeric input is epoch seconds or milliseconds, with automatic unit
// detection for large values; textual input is RFC 3339 or a handful of
// common date-time shapes.
package timeconv

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

// Unit selects how numeric timestamps are interpreted.
type Unit string

const (
	// UnitAuto treats values at or above 1e12 as milliseconds.
	UnitAuto    Unit = "auto"
	UnitSeconds Unit = "s"
	UnitMillis  Unit = "ms"
)

// DefaultLayout is the default output format.
const DefaultLayout = "2006-01-02 15:04:05 MST"

// autoMillisThreshold: epoch seconds will not reach 1e12 for millennia.
const autoMillisThreshold = 1_000_000_000_000

var (
	easternOnce sync.Once
	easternLoc  *time.Location
	easternErr  error
)

// Eastern returns the America/New_York location, loaded once.
func Eastern() (*time.Location, error) {
	easternOnce.Do(func() {
		easternLoc, easternErr = time.LoadLocation("America/New_York")
	})
	return easternLoc, easternErr
}

// textLayouts are tried in order for non-numeric input. Layouts without a
// zone are interpreted in the caller-supplied location.
var textLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse turns raw input into an instant. Numeric input is an epoch in the
// given unit; textual input without an explicit offset is interpreted in loc.
func Parse(raw string, unit Unit, loc *time.Location) (time.Time, error) {
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return fromEpoch(v, unit)
	}
	for _, layout := range textLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp: %s", raw)
}

func fromEpoch(v float64, unit Unit) (time.Time, error) {
	switch unit {
	case UnitAuto:
		if v >= autoMillisThreshold {
			unit = UnitMillis
		} else {
			unit = UnitSeconds
		}
	case UnitSeconds, UnitMillis:
	default:
		return time.Time{}, fmt.Errorf("units must be %q, %q, or %q", UnitAuto, UnitMillis, UnitSeconds)
	}

	seconds := v
	if unit == UnitMillis {
		seconds = v / 1000
	}
	return time.Unix(0, int64(seconds*float64(time.Second))).UTC(), nil
}

// UTCToEastern converts an instant to Eastern wall time.
func UTCToEastern(t time.Time) (time.Time, error) {
	loc, err := Eastern()
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}

// EasternToUTC converts an instant to UTC wall time.
func EasternToUTC(t time.Time) time.Time {
	return t.UTC()
}

// Format renders t with the given layout, or DefaultLayout when empty.
func Format(t time.Time, layout string) string {
	if layout == "" {
		layout = DefaultLayout
	}
	return t.Format(layout)
}
