package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileValidator_Validate(t *testing.T) {
	v := NewFileValidator([]string{".md"}, 5.0)

	t.Run("accepts markdown within limit", func(t *testing.T) {
		ok, reason := v.Validate("readme.md", 1024)
		assert.True(t, ok)
		assert.Empty(t, reason)
	})

	t.Run("extension match is case-insensitive", func(t *testing.T) {
		ok, _ := v.Validate("README.MD", 1024)
		assert.True(t, ok)
	})

	t.Run("rejects unsupported extension with reason naming it", func(t *testing.T) {
		ok, reason := v.Validate("notes.txt", 1024)
		require.False(t, ok)
		assert.Contains(t, reason, ".txt")
		assert.Contains(t, reason, ".md")
	})

	t.Run("rejects file without extension", func(t *testing.T) {
		ok, reason := v.Validate("Makefile", 10)
		require.False(t, ok)
		assert.Contains(t, reason, "unsupported file type")
	})

	t.Run("rejects oversize file with sizes in reason", func(t *testing.T) {
		ok, reason := v.Validate("big.md", 6*1024*1024)
		require.False(t, ok)
		assert.Contains(t, reason, "6.00MB")
		assert.Contains(t, reason, "5.00MB")
	})

	t.Run("accepts file exactly at the ceiling", func(t *testing.T) {
		ok, _ := v.Validate("edge.md", 5*1024*1024)
		assert.True(t, ok)
	})
}

func TestNewFileValidator_Defaults(t *testing.T) {
	v := NewFileValidator(nil, 0)
	assert.Equal(t, []string{".md"}, v.AllowedExtensions)
	assert.Equal(t, int64(DefaultMaxFileSizeMB*bytesPerMB), v.MaxFileSizeBytes)
}
