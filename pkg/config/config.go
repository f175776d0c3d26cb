// Package config handles configuration loading and validation
package config

import (
	"fmt"

	"github.com/tabular-tools/chunkctl/pkg/errors"
	"github.com/tabular-tools/chunkctl/pkg/sizespec"
)

// Config holds the chunkctl configuration.
type Config struct {
	// MaxChunks caps the chunks one split call may produce before the
	// safety prompt fires.
	MaxChunks int `yaml:"max_chunks"`
	// DefaultSize is the size spec used when split is run without
	// --rows or --size.
	DefaultSize string `yaml:"default_size"`
	// Sample bounds the prefix rows read for size estimation.
	Sample SampleConfig `yaml:"sample"`
}

// SampleConfig bounds estimation sampling per format.
type SampleConfig struct {
	CSVRows   int `yaml:"csv_rows"`
	ExcelRows int `yaml:"excel_rows"`
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.MaxChunks < 0 {
		return fmt.Errorf("max_chunks must not be negative, got %d", c.MaxChunks)
	}
	if c.Sample.CSVRows < 0 || c.Sample.ExcelRows < 0 {
		return fmt.Errorf("sample row counts must not be negative")
	}
	if c.DefaultSize != "" {
		if _, err := sizespec.Parse(c.DefaultSize); err != nil {
			return errors.ConfigError("invalid default_size", err)
		}
	}
	return nil
}
