package power

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/powerrank/core"
)

func TestAssemble(t *testing.T) {
	tests := []struct {
		name    string
		catalog []string
		scores  ScoreVector
		want    []core.RankedItem
	}{
		{
			name:    "empty catalog",
			catalog: nil,
			scores:  ScoreVector{"a": 1},
			want:    []core.RankedItem{},
		},
		{
			name:    "missing scores default to zero",
			catalog: []string{"x", "a", "y"},
			scores:  ScoreVector{"a": 1},
			want: []core.RankedItem{
				{ItemID: "a", Power: 1},
				{ItemID: "x", Power: 0},
				{ItemID: "y", Power: 0},
			},
		},
		{
			name:    "ties keep catalog order",
			catalog: []string{"c", "b", "a", "d"},
			scores:  ScoreVector{"a": 0.25, "b": 0.25, "c": 0.25, "d": 0.25},
			want: []core.RankedItem{
				{ItemID: "c", Power: 0.25},
				{ItemID: "b", Power: 0.25},
				{ItemID: "a", Power: 0.25},
				{ItemID: "d", Power: 0.25},
			},
		},
		{
			name:    "descending by power",
			catalog: []string{"a", "b", "c"},
			scores:  ScoreVector{"a": 0.2, "b": 0.5, "c": 0.3},
			want: []core.RankedItem{
				{ItemID: "b", Power: 0.5},
				{ItemID: "c", Power: 0.3},
				{ItemID: "a", Power: 0.2},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Assemble(tt.catalog, tt.scores)
			assert.Equal(t, tt.want, r.Entries())
			assert.Equal(t, len(tt.catalog), r.Len())
		})
	}
}

func TestAssemble_DoesNotMutateCatalog(t *testing.T) {
	catalog := []string{"a", "b"}
	Assemble(catalog, ScoreVector{"b": 1})
	assert.Equal(t, []string{"a", "b"}, catalog)
}

func TestRanking_MarshalJSON(t *testing.T) {
	r := Assemble([]string{"a", "b"}, ScoreVector{"a": 0.25, "b": 0.75})
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"itemId":"b","power":0.75},{"itemId":"a","power":0.25}]`, string(data))
}

func TestRanking_IsParticipant(t *testing.T) {
	r := Assemble([]string{"a", "b", "c"}, ScoreVector{"a": 0.4, "b": 0.6})
	assert.True(t, r.IsParticipant("a"))
	assert.True(t, r.IsParticipant("b"))
	assert.False(t, r.IsParticipant("c"))
	assert.Equal(t, 2, r.Participants())
}

func TestRanking_Power(t *testing.T) {
	r := Assemble([]string{"c", "a", "b", "a", "x"}, ScoreVector{"a": 0.5, "b": 0.3, "c": 0.2, "e": 0.1})

	tests := []struct {
		id    string
		power float64
		ok    bool
	}{
		{"a", 0.5, true},
		{"b", 0.3, true},
		{"c", 0.2, true},
		{"x", 0, true},  // 目录条目，未参与比较
		{"e", 0, false}, // 参与了比较，但不在目录中
		{"missing", 0, false},
	}
	for _, tt := range tests {
		got, ok := r.Power(tt.id)
		assert.Equal(t, tt.ok, ok, tt.id)
		assert.Equal(t, tt.power, got, tt.id)
	}
	assert.Equal(t, 5, r.Len())
}
