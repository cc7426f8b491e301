package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var previewLength int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed documents",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [filename]",
	Short: "Remove a document from the index",
	Long: `Removes every indexed chunk of the named document. Deleting a
document that is not in the index is not an error.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Show the cleaning effect on a file without ingesting it",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().IntVar(&previewLength, "length", 500, "preview truncation length (0 for unlimited)")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(previewCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(context.Background())
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents in the index.")
		return nil
	}

	for _, name := range docs {
		cmd.Println(name)
	}
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Delete(context.Background(), args[0]); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	cmd.Printf("Deleted %s\n", args[0])
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	preview, err := documentService.Preview(args[0], previewLength)
	if err != nil {
		return fmt.Errorf("preview failed: %w", err)
	}

	cmd.Println("--- Original ---")
	cmd.Println(preview.OriginalPreview)
	cmd.Println()
	cmd.Println("--- Cleaned ---")
	cmd.Println(preview.CleanedPreview)
	cmd.Println()
	cmd.Printf("Length: %d -> %d characters (%.1f%% reduction)\n",
		preview.Stats.OriginalLength, preview.Stats.CleanedLength,
		preview.Stats.ReductionRatio*100)
	cmd.Printf("Lines:  %d -> %d\n", preview.Stats.OriginalLines, preview.Stats.CleanedLines)
	return nil
}
