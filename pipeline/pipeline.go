package pipeline

import (
	"context"
	"fmt"

	"github.com/rushteam/powerrank/core"
)

// Pipeline 把排名逻辑拆成可组合的 Node 链：Recall（目录）→ Filter → Rank（power）→ ReRank → PostProcess。
type Pipeline struct {
	Name  string
	Nodes []Node
}

// Run 依次执行各 Node；任一 Node 返回错误即中止，不返回部分结果。
func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RankContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", node.Name(), err)
		}
		cur = next
	}
	return cur, nil
}

// Prepend 返回在头部插入 nodes 后的新 Pipeline，原 Pipeline 不变。
func (p *Pipeline) Prepend(nodes ...Node) *Pipeline {
	out := &Pipeline{Name: p.Name, Nodes: make([]Node, 0, len(nodes)+len(p.Nodes))}
	out.Nodes = append(out.Nodes, nodes...)
	out.Nodes = append(out.Nodes, p.Nodes...)
	return out
}

// HasKind 报告 Pipeline 中是否存在指定阶段的 Node。
func (p *Pipeline) HasKind(kind Kind) bool {
	for _, n := range p.Nodes {
		if n.Kind() == kind {
			return true
		}
	}
	return false
}
