package rank

import (
	"context"
	"sort"

	"github.com/rushteam/powerrank/core"
	"github.com/rushteam/powerrank/pipeline"
	"github.com/rushteam/powerrank/pkg/utils"
	"github.com/rushteam/powerrank/power"
)

// PowerNode 是基于两两偏好投票的排序 Node。
// - 输入 items 即完整目录，顺序作为并列时的次序
// - 使用 rctx.Votes 与 rctx.DampingFactor 运行 power 引擎
// - 写入 item.Score 与 labels：rank_model、participant
// - 写入 rctx.Stats 与请求级 label insufficient_data
type PowerNode struct {
	// Ranker 为空时使用默认配置
	Ranker *power.Ranker
}

func (n *PowerNode) Name() string        { return "rank.power" }
func (n *PowerNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *PowerNode) Process(
	_ context.Context,
	rctx *core.RankContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if rctx == nil {
		rctx = &core.RankContext{}
	}
	ranker := n.Ranker
	if ranker == nil {
		ranker = power.NewRanker()
	}

	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it != nil {
			out = append(out, it)
		}
	}

	ranking, err := ranker.Rank(core.ItemIDs(out), rctx.Votes, rctx.DampingFactor)
	if err != nil {
		return nil, err
	}

	for _, it := range out {
		it.Score, _ = ranking.Power(it.ID)
		participant := "false"
		if ranking.IsParticipant(it.ID) {
			participant = "true"
		}
		it.PutLabel("rank_model", utils.Label{Value: "power", Source: "rank"})
		it.PutLabel("participant", utils.Label{Value: participant, Source: "rank"})
	}

	// 与 power.Assemble 相同的稳定降序排序，并列时保持目录顺序
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	stats := ranking.Stats()
	rctx.Stats = &core.RankStats{
		Participants:     ranking.Participants(),
		Iterations:       stats.Iterations,
		Converged:        stats.Converged,
		Delta:            stats.Delta,
		InsufficientData: ranking.InsufficientData(),
	}
	if ranking.InsufficientData() {
		rctx.PutLabel("insufficient_data", utils.Label{Value: "true", Source: "rank"})
	}
	return out, nil
}

var _ pipeline.Node = (*PowerNode)(nil)
