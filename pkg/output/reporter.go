// Package output renders user-facing status lines for the CLI. Everything
// here is informational; core packages return data and errors, they do not
// print.
package output

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/tabular-tools/chunkctl/pkg/estimate"
	"github.com/tabular-tools/chunkctl/pkg/merger"
	"github.com/tabular-tools/chunkctl/pkg/splitter"
)

var (
	warnColor    = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
)

// Reporter writes progress and summary lines. It implements the splitter
// and merger progress interfaces.
type Reporter struct {
	out io.Writer
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{out: w}
}

// Infof writes one informational line.
func (r *Reporter) Infof(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Warnf writes one highlighted warning line.
func (r *Reporter) Warnf(format string, args ...interface{}) {
	warnColor.Fprintf(r.out, "Warning: "+format+"\n", args...)
}

// Successf writes one highlighted success line.
func (r *Reporter) Successf(format string, args ...interface{}) {
	successColor.Fprintf(r.out, format+"\n", args...)
}

// EstimateReady reports the initial row estimate of a size-based split.
func (r *Reporter) EstimateReady(est estimate.Estimate) {
	if est.Fallback {
		r.Warnf("could not estimate chunk size, using defaults (%s rows per chunk)",
			humanize.Comma(int64(est.RowsPerChunk)))
		return
	}
	r.Infof("  Estimated ~%.1f bytes/row, %s rows per chunk",
		est.BytesPerRow, humanize.Comma(int64(est.RowsPerChunk)))
}

// EstimateAdjusted reports the one-time correction of the row estimate.
func (r *Reporter) EstimateAdjusted(rowsPerChunk int) {
	r.Infof("  Adjusted to ~%s rows per chunk", humanize.Comma(int64(rowsPerChunk)))
}

// ChunkWritten reports one materialized chunk.
func (r *Reporter) ChunkWritten(c splitter.Chunk) {
	r.Infof("  Created part %03d (%s rows, %s)",
		c.Index, humanize.Comma(int64(c.Rows)), humanize.IBytes(uint64(c.Bytes)))
}

// ChunkRead reports one chunk file read during a merge.
func (r *Reporter) ChunkRead(name string, index, total int) {
	r.Infof("  Reading %s (%d/%d)", name, index, total)
}

// SplitSummary writes the final count/size summary of a split.
func (r *Reporter) SplitSummary(chunks []splitter.Chunk, outDir string) {
	var totalBytes int64
	for _, c := range chunks {
		totalBytes += c.Bytes
	}
	r.Successf("Created %d chunk files in %s", len(chunks), outDir)
	r.Infof("Total size: %s", humanize.IBytes(uint64(totalBytes)))
}

// MergeSummary writes the final summary of a merge.
func (r *Reporter) MergeSummary(res *merger.Result) {
	r.Successf("Merge complete: %s", res.Path)
	r.Infof("Total rows: %s", humanize.Comma(int64(res.Rows)))
	r.Infof("File size: %s", humanize.IBytes(uint64(res.Bytes)))
}
