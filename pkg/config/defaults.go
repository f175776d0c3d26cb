package config

import (
	"github.com/tabular-tools/chunkctl/pkg/estimate"
	"github.com/tabular-tools/chunkctl/pkg/splitter"
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxChunks:   splitter.DefaultMaxChunks,
		DefaultSize: "50MB",
		Sample: SampleConfig{
			CSVRows:   estimate.CSVSampleRows,
			ExcelRows: estimate.ExcelSampleRows,
		},
	}
}

// applyDefaults fills unset fields with the built-in values.
func applyDefaults(cfg *Config) {
	defaults := DefaultConfig()
	if cfg.MaxChunks == 0 {
		cfg.MaxChunks = defaults.MaxChunks
	}
	if cfg.DefaultSize == "" {
		cfg.DefaultSize = defaults.DefaultSize
	}
	if cfg.Sample.CSVRows == 0 {
		cfg.Sample.CSVRows = defaults.Sample.CSVRows
	}
	if cfg.Sample.ExcelRows == 0 {
		cfg.Sample.ExcelRows = defaults.Sample.ExcelRows
	}
}
