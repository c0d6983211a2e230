package celfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileRejectsBadExpressions(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{name: "syntax error", expr: "_.a &&"},
		{name: "unknown variable", expr: "rows.size() > 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.expr)
			assert.Error(t, err)
		})
	}
}

func TestMatches(t *testing.T) {
	p, err := Compile(`_.severity >= 3 && _.status == "OPEN"`)
	require.NoError(t, err)

	ok, err := p.Matches(map[string]any{"severity": 4, "status": "OPEN"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Matches(map[string]any{"severity": 2, "status": "OPEN"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMatchesNonBoolResult(t *testing.T) {
	p, err := Compile(`_.severity`)
	require.NoError(t, err)

	_, err = p.Matches(map[string]any{"severity": 4})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want bool")
}

func TestMatchesStringExtensions(t *testing.T) {
	p, err := Compile(`_.name.lowerAscii().contains("pump")`)
	require.NoError(t, err)

	ok, err := p.Matches(map[string]any{"name": "Fire Pump A"})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFilterPreservesOrderAndFailsFast(t *testing.T) {
	p, err := Compile(`_.rating > 2`)
	require.NoError(t, err)

	records := []map[string]any{
		{"id": "a", "rating": 5},
		{"id": "b", "rating": 1},
		{"id": "c", "rating": 3},
	}
	got, err := p.Filter(records)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0]["id"])
	assert.Equal(t, "c", got[1]["id"])

	// A record missing the field aborts the pass.
	_, err = p.Filter([]map[string]any{{"id": "x"}})
	assert.Error(t, err)
}
