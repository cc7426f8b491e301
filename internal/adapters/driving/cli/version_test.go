package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
}

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	SetVersion("test-version-1.0.0")
	defer SetVersion(originalVersion)

	out, err := execute("version")

	assert.NoError(t, err)
	assert.Contains(t, out, "docvec version test-version-1.0.0")
}
