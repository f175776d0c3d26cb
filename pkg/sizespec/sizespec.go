// Package sizespec parses human-entered byte size strings like "50MB" or "1.5GB".
package sizespec

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tabular-tools/chunkctl/pkg/errors"
)

// Byte size multipliers.
const (
	KB = 1024
	MB = 1024 * 1024
	GB = 1024 * 1024 * 1024
)

// specPattern accepts a decimal number with an optional KB/MB/GB unit.
var specPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(KB|MB|GB)?$`)

// Parse converts a size string into a byte count. The unit defaults to MB
// when omitted; parsing is case-insensitive and whitespace-tolerant.
func Parse(spec string) (int64, error) {
	normalized := strings.ToUpper(strings.TrimSpace(spec))

	match := specPattern.FindStringSubmatch(normalized)
	if match == nil {
		return 0, errors.InvalidSizeSpec(spec)
	}

	number, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, errors.InvalidSizeSpec(spec)
	}

	unit := match[2]
	if unit == "" {
		unit = "MB"
	}

	multipliers := map[string]int64{
		"KB": KB,
		"MB": MB,
		"GB": GB,
	}

	return int64(number * float64(multipliers[unit])), nil
}
