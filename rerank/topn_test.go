package rerank

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/powerrank/core"
)

func TestTopNNode(t *testing.T) {
	tests := []struct {
		n    int
		want []string
	}{
		{0, []string{"a", "b", "c"}},
		{-1, []string{"a", "b", "c"}},
		{2, []string{"a", "b"}},
		{3, []string{"a", "b", "c"}},
		{10, []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		node := &TopNNode{N: tt.n}
		out, err := node.Process(context.Background(), nil, core.ItemsFromIDs([]string{"a", "b", "c"}))
		require.NoError(t, err)
		assert.Equal(t, tt.want, core.ItemIDs(out), "n=%d", tt.n)
	}
}
