package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tabular-tools/chunkctl/pkg/config"
	"github.com/tabular-tools/chunkctl/pkg/estimate"
	"github.com/tabular-tools/chunkctl/pkg/manifest"
	"github.com/tabular-tools/chunkctl/pkg/output"
	"github.com/tabular-tools/chunkctl/pkg/sizespec"
	"github.com/tabular-tools/chunkctl/pkg/splitter"
	"github.com/tabular-tools/chunkctl/pkg/tabular"
)

// splitCmd represents the split command
var splitCmd = &cobra.Command{
	Use:   "split [file]",
	Short: "Split a large file into chunks",
	Long: `Split a large CSV/Excel file into chunks.

Chunks are written to a <stem>_chunks/ directory next to the source file,
named <stem>_part_001.<ext>, <stem>_part_002.<ext>, and so on. Splitting by
size is approximate: the row count per chunk is estimated from a sample and
corrected once after the first chunk is written.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSplit,
}

// splitFlags holds the flags for the split command
type splitFlags struct {
	rows   int
	size   string
	config string
}

var splitOpts splitFlags

func init() {
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().IntVarP(&splitOpts.rows, "rows", "r", 0, "Chunk by number of rows")
	splitCmd.Flags().StringVarP(&splitOpts.size, "size", "s", "", "Chunk by file size (e.g. 50MB, 1.5GB)")
	splitCmd.Flags().StringVarP(&splitOpts.config, "config", "c", "", "Path to configuration file")
	splitCmd.MarkFlagsMutuallyExclusive("rows", "size")
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(splitOpts.config)
	if err != nil {
		return err
	}
	reporter := output.NewReporter(cmd.OutOrStdout())

	source, err := pickSource(args)
	if err != nil {
		return err
	}
	format, err := tabular.Detect(source)
	if err != nil {
		return err
	}

	// Parse the size spec before any I/O so a malformed spec aborts clean.
	var targetBytes int64
	if splitOpts.rows <= 0 {
		spec := splitOpts.size
		if spec == "" {
			spec = cfg.DefaultSize
		}
		targetBytes, err = sizespec.Parse(spec)
		if err != nil {
			return err
		}
	}

	outDir := splitter.OutputDir(source)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	reporter.Infof("Output directory: %s", outDir)

	sp := &splitter.Splitter{
		MaxChunks: cfg.MaxChunks,
		Confirm: func(chunkCount int) bool {
			reporter.Warnf("reached %d chunks limit", chunkCount)
			return interactive.Confirm("Continue splitting? This may indicate an issue.")
		},
		Estimator: estimate.Estimator{
			CSVSampleRows:   cfg.Sample.CSVRows,
			ExcelSampleRows: cfg.Sample.ExcelRows,
		},
		Progress: reporter,
	}

	var chunks []splitter.Chunk
	if splitOpts.rows > 0 {
		reporter.Infof("Splitting %s into chunks of %s rows...",
			filepath.Base(source), humanize.Comma(int64(splitOpts.rows)))
		chunks, err = sp.ByRows(source, splitOpts.rows, outDir)
	} else {
		reporter.Infof("Splitting %s into chunks of ~%s each...",
			filepath.Base(source), humanize.IBytes(uint64(targetBytes)))
		chunks, err = sp.BySize(source, targetBytes, outDir)
	}
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		reporter.Warnf("no chunks were written")
		return nil
	}

	if _, err := manifest.Write(outDir, filepath.Base(source), format, chunks); err != nil {
		// The manifest is advisory; merging works from filenames alone.
		reporter.Warnf("could not write manifest: %v", err)
	}

	reporter.SplitSummary(chunks, outDir)
	return nil
}

func pickSource(args []string) (string, error) {
	var source string
	if len(args) > 0 {
		source = args[0]
	} else {
		var err error
		source, err = interactive.SelectFile("Select file to split:")
		if err != nil {
			return "", err
		}
	}
	if source == "" {
		return "", fmt.Errorf("no file selected")
	}
	if _, err := os.Stat(source); err != nil {
		return "", fmt.Errorf("file not found: %s", source)
	}
	return source, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadFromEnv()
}
