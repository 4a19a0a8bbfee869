// Package postprocess 提供排名结果的展示加工节点。
package postprocess

import (
	"context"
	"math"

	"github.com/rushteam/powerrank/core"
	"github.com/rushteam/powerrank/pipeline"
)

// PercentNode 把 power 转换成百分比并记录名次，供榜单展示：
//   - Meta["power_percent"] = Score * 100，按 Precision 位小数四舍五入（Precision < 0 表示不舍入）
//   - Meta["rank"] 为 1 起的名次，即当前顺序中的位置
//
// 只写 Meta，不改变 Score 与顺序。
type PercentNode struct {
	Precision int
}

func (n *PercentNode) Name() string        { return "postprocess.percent" }
func (n *PercentNode) Kind() pipeline.Kind { return pipeline.KindPostProcess }

func (n *PercentNode) Process(
	_ context.Context,
	_ *core.RankContext,
	items []*core.Item,
) ([]*core.Item, error) {
	rank := 0
	for _, it := range items {
		if it == nil {
			continue
		}
		rank++
		if it.Meta == nil {
			it.Meta = make(map[string]any)
		}
		it.Meta["power_percent"] = round(it.Score*100, n.Precision)
		it.Meta["rank"] = rank
	}
	return items, nil
}

func round(v float64, precision int) float64 {
	if precision < 0 {
		return v
	}
	p := math.Pow(10, float64(precision))
	return math.Round(v*p) / p
}

var _ pipeline.Node = (*PercentNode)(nil)
