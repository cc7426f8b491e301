package domain

// IngestStatus summarises a batch ingestion outcome.
type IngestStatus string

// Batch outcome values.
const (
	// IngestStatusSuccess means at least one file was indexed.
	IngestStatusSuccess IngestStatus = "success"

	// IngestStatusError means no file in the batch was indexed.
	IngestStatusError IngestStatus = "error"
)

// FileFailure records why a single file was skipped during ingestion.
// A failed file never aborts processing of its siblings.
type FileFailure struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// IngestResult is the accumulated outcome of a batch ingestion.
type IngestResult struct {
	// Status is success if at least one file was indexed.
	Status IngestStatus `json:"status"`

	// BatchID correlates log lines for one ingestion run.
	BatchID string `json:"batch_id"`

	// SuccessCount is the number of files indexed.
	SuccessCount int `json:"success_count"`

	// TotalChunks is the number of chunks indexed across all files.
	TotalChunks int `json:"total_chunks"`

	// Successes lists the filenames that were indexed.
	Successes []string `json:"successes"`

	// Failures lists each skipped file with its reason.
	Failures []FileFailure `json:"failures"`
}
