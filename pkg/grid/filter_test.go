package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var riskFilters = []FilterDef{
	{Key: "search", Kind: KindText, Label: "Search"},
	{Key: "status", Kind: KindSelect, Label: "Status", Options: []Option{
		{Value: "OPEN", Label: "Open"},
		{Value: "MITIGATED", Label: "Mitigated"},
	}},
	{Key: "critical", Kind: KindBool, Label: "Critical only"},
}

func TestActiveCount(t *testing.T) {
	tests := []struct {
		name   string
		values Values
		want   int
	}{
		{name: "nil values", values: nil, want: 0},
		{name: "empty string is not active", values: Values{"search": ""}, want: 0},
		{name: "one active", values: Values{"search": "fire"}, want: 1},
		{name: "all active", values: Values{"search": "fire", "status": "OPEN", "critical": "true"}, want: 3},
		{name: "unknown keys ignored", values: Values{"nope": "x"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ActiveCount(riskFilters, tt.values))
		})
	}
}

func TestClearingFilterDecrementsCountAndRemovesChip(t *testing.T) {
	values := Values{"search": "fire", "status": "OPEN"}
	require.Equal(t, 2, ActiveCount(riskFilters, values))
	require.Len(t, Chips(riskFilters, values), 2)

	// Clearing to the empty string is exactly what chip removal emits.
	values["status"] = ""
	assert.Equal(t, 1, ActiveCount(riskFilters, values))

	chips := Chips(riskFilters, values)
	require.Len(t, chips, 1)
	assert.Equal(t, "search", chips[0].Key)
}

func TestChipsSelectLabelResolution(t *testing.T) {
	chips := Chips(riskFilters, Values{"status": "OPEN"})
	require.Len(t, chips, 1)
	assert.Equal(t, "Status", chips[0].Label)
	assert.Equal(t, "Open", chips[0].Display)

	// Unknown raw value falls back to the value itself.
	chips = Chips(riskFilters, Values{"status": "ARCHIVED"})
	require.Len(t, chips, 1)
	assert.Equal(t, "ARCHIVED", chips[0].Display)
}

func TestChipsFallBackToKeyWhenLabelMissing(t *testing.T) {
	defs := []FilterDef{{Key: "owner", Kind: KindText}}
	chips := Chips(defs, Values{"owner": "alice"})
	require.Len(t, chips, 1)
	assert.Equal(t, "owner", chips[0].Label)
	assert.Equal(t, "alice", chips[0].Display)
}

func TestChipsPreserveDefinitionOrder(t *testing.T) {
	values := Values{"critical": "true", "search": "fire"}
	chips := Chips(riskFilters, values)
	require.Len(t, chips, 2)
	assert.Equal(t, "search", chips[0].Key)
	assert.Equal(t, "critical", chips[1].Key)
}
