package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docvec-cli/internal/core/domain"
)

var ingestJSON bool

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Ingest markdown files into the index",
	Long: `Cleans, chunks, embeds and indexes each file. Files are processed
independently: a failing file is reported and skipped without
aborting the rest of the batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestJSON, "json", false, "output the batch result as JSON")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	result := ingestService.ProcessFiles(context.Background(), args)

	if ingestJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
	} else {
		outputIngestSummary(cmd, result)
	}

	if result.Status == domain.IngestStatusError {
		return fmt.Errorf("no files were indexed (%d failure(s))", len(result.Failures))
	}
	return nil
}

func outputIngestSummary(cmd *cobra.Command, result domain.IngestResult) {
	cmd.Printf("Batch %s\n", result.BatchID)
	cmd.Printf("  Indexed: %d file(s), %d chunk(s)\n", result.SuccessCount, result.TotalChunks)

	for _, name := range result.Successes {
		cmd.Printf("  ok   %s\n", name)
	}
	for _, failure := range result.Failures {
		cmd.Printf("  skip %s: %s\n", failure.Filename, failure.Reason)
	}
}
