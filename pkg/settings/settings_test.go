package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCliParams(t *testing.T) {
	params := NewCliParams()

	assert.Equal(t, int8(0), params.MinLogLevel)
	assert.False(t, params.IsQuiet)
	assert.False(t, params.NoColor)
	assert.True(t, params.ExitOnError)
	assert.False(t, params.Input.FromStdin)
	assert.Empty(t, params.Input.Path)
}

func TestVersionInformationDefaults(t *testing.T) {
	// Until ldflags override them, the defaults identify an untagged build.
	assert.Equal(t, "unknown", VersionInformation.Commit)
	assert.Equal(t, "v0.0.0-nightly", VersionInformation.BuildVersion)
	assert.Equal(t, "unknown", VersionInformation.BuildTime)
}
