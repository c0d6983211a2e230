package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextRoundTrip(t *testing.T) {
	run := NewCliParams()
	run.NoColor = true

	ctx := IntoContext(context.Background(), run)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, run, got)
	assert.True(t, got.NoColor)
}

func TestFromContextMissing(t *testing.T) {
	got, ok := FromContext(context.Background())
	assert.False(t, ok)
	assert.Nil(t, got)
}
