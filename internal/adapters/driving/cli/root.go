// Package cli implements the docvec command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docvec-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docvec-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services wired in by main before Execute.
var (
	ingestService   driving.IngestService
	searchService   driving.SearchService
	documentService driving.DocumentService
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "docvec",
	Short: "Ingest markdown documents and search them semantically",
	Long: `docvec cleans markdown files, splits them into overlapping chunks,
embeds the chunks and stores the vectors in a local index that can be
searched by meaning rather than by keyword.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices wires the application services into the commands.
func SetServices(
	ingest driving.IngestService,
	search driving.SearchService,
	documents driving.DocumentService,
) {
	ingestService = ingest
	searchService = search
	documentService = documents
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
