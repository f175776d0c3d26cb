// Package main provides the chunkctl CLI application.
package main

import (
	"github.com/spf13/cobra"

	"github.com/tabular-tools/chunkctl/pkg/prompt"
	"github.com/tabular-tools/chunkctl/pkg/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chunkctl",
	Short: "Split large tabular files into chunks and merge them back",
	Long: `chunkctl splits large CSV/Excel files into smaller chunks, bounded
either by row count or by approximate file size, and merges a directory of
chunks back into one file.

Chunks follow the <base>_part_NNN.<ext> naming convention; a merge
reconstructs their order from the part numbers alone.`,
	Version:      version.FullString(),
	SilenceUsage: true,
}

// interactive is the prompt collaborator used when a command needs input
// the arguments did not supply. Swapped out in tests.
var interactive prompt.Prompter = prompt.Terminal{}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}
