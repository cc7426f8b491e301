package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

const bytesPerMB = 1024 * 1024

// FileValidator checks candidate files against an extension allow-list
// and a byte-size ceiling before ingestion.
type FileValidator struct {
	// AllowedExtensions are lower-case extensions including the dot.
	AllowedExtensions []string

	// MaxFileSizeBytes is the per-file ceiling in bytes.
	MaxFileSizeBytes int64
}

// NewFileValidator creates a validator from settings. An empty
// extension list falls back to markdown only.
func NewFileValidator(allowedExtensions []string, maxFileSizeMB float64) FileValidator {
	if len(allowedExtensions) == 0 {
		allowedExtensions = []string{".md"}
	}
	if maxFileSizeMB <= 0 {
		maxFileSizeMB = DefaultMaxFileSizeMB
	}
	return FileValidator{
		AllowedExtensions: allowedExtensions,
		MaxFileSizeBytes:  int64(maxFileSizeMB * bytesPerMB),
	}
}

// Validate reports whether the file may be ingested. On rejection the
// returned reason names the offending extension or size.
func (v FileValidator) Validate(filename string, size int64) (bool, string) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !v.extensionAllowed(ext) {
		return false, fmt.Sprintf("unsupported file type: %s (allowed: %s)",
			ext, strings.Join(v.AllowedExtensions, ", "))
	}

	if size > v.MaxFileSizeBytes {
		return false, fmt.Sprintf("file too large: %.2fMB (limit: %.2fMB)",
			float64(size)/bytesPerMB, float64(v.MaxFileSizeBytes)/bytesPerMB)
	}

	return true, ""
}

func (v FileValidator) extensionAllowed(ext string) bool {
	for _, allowed := range v.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}
