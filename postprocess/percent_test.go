package postprocess

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/powerrank/core"
)

func TestPercentNode(t *testing.T) {
	a, b, c := core.NewItem("a"), core.NewItem("b"), core.NewItem("c")
	a.Score = 0.649122807
	b.Score = 0.350877193
	items := []*core.Item{a, b, nil, c}

	tests := []struct {
		precision int
		want      []float64
	}{
		{0, []float64{65, 35, 0}},
		{2, []float64{64.91, 35.09, 0}},
		{-1, []float64{64.9122807, 35.0877193, 0}},
	}
	for _, tt := range tests {
		out, err := (&PercentNode{Precision: tt.precision}).Process(context.Background(), nil, items)
		require.NoError(t, err)
		require.Len(t, out, 4)

		got := []float64{}
		ranks := []int{}
		for _, it := range out {
			if it == nil {
				continue
			}
			got = append(got, it.Meta["power_percent"].(float64))
			ranks = append(ranks, it.Meta["rank"].(int))
		}
		assert.InDeltaSlice(t, tt.want, got, 1e-9, "precision=%d", tt.precision)
		assert.Equal(t, []int{1, 2, 3}, ranks)
	}
}
