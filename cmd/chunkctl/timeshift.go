package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tabular-tools/chunkctl/pkg/output"
	"github.com/tabular-tools/chunkctl/pkg/timeconv"
)

// timeshiftCmd represents the timeshift command
var timeshiftCmd = &cobra.Command{
	Use:   "timeshift <timestamp>...",
	Short: "Convert timestamps between UTC and US Eastern",
	Long: `Convert timestamps between UTC and US Eastern time.

Input is either an epoch (seconds or milliseconds, auto-detected by
magnitude) or an RFC 3339 date-time. The default direction is UTC to
Eastern; pass --to-utc for the inverse. Failures are reported per
timestamp and do not stop the remaining conversions.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTimeshift,
}

// timeshiftFlags holds the flags for the timeshift command
type timeshiftFlags struct {
	toUTC  bool
	units  string
	layout string
}

var timeshiftOpts timeshiftFlags

func init() {
	rootCmd.AddCommand(timeshiftCmd)

	timeshiftCmd.Flags().BoolVar(&timeshiftOpts.toUTC, "to-utc", false, "Convert from Eastern to UTC (default is UTC to Eastern)")
	timeshiftCmd.Flags().StringVar(&timeshiftOpts.units, "units", "auto", "Numeric input units: auto, s, or ms")
	timeshiftCmd.Flags().StringVar(&timeshiftOpts.layout, "fmt", "", "Output time layout (Go reference time)")
}

func runTimeshift(cmd *cobra.Command, args []string) error {
	reporter := output.NewReporter(cmd.OutOrStdout())

	eastern, err := timeconv.Eastern()
	if err != nil {
		return fmt.Errorf("load Eastern time zone: %w", err)
	}

	// Zone-less text input is interpreted in the direction's source zone.
	sourceLoc := time.UTC
	direction := "UTC to ET"
	if timeshiftOpts.toUTC {
		sourceLoc = eastern
		direction = "ET to UTC"
	}

	reporter.Infof("Converting (%s):", direction)
	unit := timeconv.Unit(timeshiftOpts.units)
	for _, raw := range args {
		parsed, err := timeconv.Parse(raw, unit, sourceLoc)
		if err != nil {
			reporter.Warnf("  %s: %v", raw, err)
			continue
		}
		var converted time.Time
		if timeshiftOpts.toUTC {
			converted = timeconv.EasternToUTC(parsed)
		} else {
			converted, err = timeconv.UTCToEastern(parsed)
			if err != nil {
				return err
			}
		}
		reporter.Infof("  %s -> %s", raw, timeconv.Format(converted, timeshiftOpts.layout))
	}
	return nil
}
