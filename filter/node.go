package filter

import (
	"context"
	"fmt"

	"github.com/rushteam/powerrank/core"
	"github.com/rushteam/powerrank/pipeline"
	"github.com/rushteam/powerrank/pkg/utils"
)

// FilterNode 是过滤 Node，可以组合多个过滤器。
// 任何一个过滤器返回 true，该条目就会被移除；过滤器出错时整个请求失败，
// 避免把残缺列表当成真实排名返回。
//
// 放在 rank 之前会缩小参与排名的目录；放在 rank 之后只影响展示。
type FilterNode struct {
	Filters []Filter
}

func (n *FilterNode) Name() string {
	return "filter.node"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RankContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	filters := make([]Filter, 0, len(n.Filters))
	for _, f := range n.Filters {
		if p, ok := f.(Preparer); ok {
			bound, err := p.Prepare(ctx, rctx)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", f.Name(), err)
			}
			f = bound
		}
		filters = append(filters, f)
	}

	out := make([]*core.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}

		reason := ""
		for _, f := range filters {
			ok, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				return nil, fmt.Errorf("%s on item %s: %w", f.Name(), item.ID, err)
			}
			if ok {
				reason = f.Name()
				break
			}
		}

		if reason != "" {
			// 记录过滤原因，用于调试/观测
			item.PutLabel("filtered", utils.Label{Value: "true", Source: reason})
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

var _ pipeline.Node = (*FilterNode)(nil)
