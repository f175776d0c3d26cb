package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tabular-tools/chunkctl/pkg/discovery"
	"github.com/tabular-tools/chunkctl/pkg/merger"
	"github.com/tabular-tools/chunkctl/pkg/output"
)

// mergeCmd represents the merge command
var mergeCmd = &cobra.Command{
	Use:   "merge [dir]",
	Short: "Merge chunk files back together",
	Long: `Merge all chunk files in a directory back into a single file.

Chunks are matched by the <base>_part_NNN.<ext> naming convention and
concatenated in part-number order. When no output path is given the merged
file is written as <base>_merged.<ext> next to the chunk directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMerge,
}

// mergeFlags holds the flags for the merge command
type mergeFlags struct {
	output string
}

var mergeOpts mergeFlags

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringVarP(&mergeOpts.output, "output", "o", "", "Output file path")
}

func runMerge(cmd *cobra.Command, args []string) error {
	reporter := output.NewReporter(cmd.OutOrStdout())

	var dir string
	if len(args) > 0 {
		dir = args[0]
	} else {
		var err error
		dir, err = interactive.SelectDirectory("Select chunk folder:")
		if err != nil {
			return err
		}
	}
	if dir == "" {
		return fmt.Errorf("no folder selected")
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("directory not found: %s", dir)
	}

	set, err := discovery.Discover(dir)
	if err != nil {
		return err
	}
	if set.Ambiguous() {
		reporter.Warnf("found chunks from multiple files: %s", strings.Join(set.Bases, ", "))
		reporter.Warnf("ensure the directory contains chunks from only one split operation")
	}
	for _, diff := range set.ManifestMismatches() {
		reporter.Warnf("%s", diff)
	}

	reporter.Infof("Merging %d chunk files from %s", len(set.Files), dir)
	m := &merger.Merger{Progress: reporter}
	result, err := m.Merge(set, mergeOpts.output)
	if err != nil {
		return err
	}

	reporter.MergeSummary(result)
	return nil
}
