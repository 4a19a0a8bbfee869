package rerank

import (
	"context"

	"github.com/rushteam/powerrank/core"
	"github.com/rushteam/powerrank/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，在排序之后只保留前 N 个条目（例如榜单卡片只展示前几名）。
// 截断只影响展示；power 已在完整目录上计算完毕。
//
// 示例：
//
//	p := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &rank.PowerNode{},
//	        &rerank.TopNNode{N: 3},
//	    },
//	}
type TopNNode struct {
	// N <= 0 或 N >= len(items) 时不截断
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RankContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 || len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}

var _ pipeline.Node = (*TopNNode)(nil)
