package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tabular-tools/chunkctl/pkg/output"
	"github.com/tabular-tools/chunkctl/pkg/sqliteload"
)

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load [file...]",
	Short: "Load tabular files into SQLite tables",
	Long: `Load CSV/Excel files into SQLite tables, one table per file.

The destination defaults to <stem>.db next to each source, with the table
named after the source stem. Columns are stored as TEXT; an existing table
of the same name is replaced.`,
	RunE: runLoad,
}

// loadFlags holds the flags for the load command
type loadFlags struct {
	db    string
	table string
}

var loadOpts loadFlags

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVar(&loadOpts.db, "db", "", "Destination database file (default <stem>.db)")
	loadCmd.Flags().StringVar(&loadOpts.table, "table", "", "Table name (default derived from file name)")
}

func runLoad(cmd *cobra.Command, args []string) error {
	reporter := output.NewReporter(cmd.OutOrStdout())

	files := args
	if len(files) == 0 {
		path, err := interactive.SelectFile("Select file to load:")
		if err != nil {
			return err
		}
		if path == "" {
			return fmt.Errorf("no file selected")
		}
		files = []string{path}
	}
	if len(files) > 1 && loadOpts.table != "" {
		return fmt.Errorf("--table applies to a single file, got %d", len(files))
	}

	for _, file := range files {
		reporter.Infof("Loading %s ...", file)
		result, err := sqliteload.Load(file, sqliteload.Options{
			DBPath:    loadOpts.db,
			TableName: loadOpts.table,
		})
		if err != nil {
			return err
		}
		reporter.Infof("  %s rows read", humanize.Comma(int64(result.Rows)))
		reporter.Successf("  Wrote table %q to %s", result.TableName, result.DBPath)
	}
	return nil
}
