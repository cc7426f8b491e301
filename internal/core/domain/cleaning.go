package domain

// CleaningStats summarises the effect of markdown cleaning on one document.
type CleaningStats struct {
	OriginalLength int `json:"original_length"`
	CleanedLength  int `json:"cleaned_length"`
	OriginalLines  int `json:"original_lines"`
	CleanedLines   int `json:"cleaned_lines"`

	// ReductionRatio is 1 - cleaned/original, or 0 for empty input.
	ReductionRatio float64 `json:"reduction_ratio"`
}

// CleaningPreview shows the effect of cleaning without committing to
// ingestion. Previews longer than the requested length are truncated
// with an ellipsis.
type CleaningPreview struct {
	OriginalPreview string        `json:"original_preview"`
	CleanedPreview  string        `json:"cleaned_preview"`
	Stats           CleaningStats `json:"stats"`
}
