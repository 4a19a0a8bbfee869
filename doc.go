// Package powerrank 根据两两偏好投票计算候选条目的 power 排名（PageRank 家族算法）。
//
// 设计要点：
// - Engine-first: power 包是无 I/O 的纯函数引擎，可单独使用
// - Pipeline: 服务场景通过 Node 串联（Recall → Filter → Rank → ReRank → PostProcess）
// - Labels: 是否参与比较、排名模型等解释信息随条目透传
package powerrank

import (
	"github.com/rushteam/powerrank/core"
	"github.com/rushteam/powerrank/pipeline"
	"github.com/rushteam/powerrank/power"
)

// 轻量 facade：便于直接 import "powerrank" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

type Comparison = core.Comparison
type Preference = core.Preference
type RankedItem = core.RankedItem
type Ranking = power.Ranking

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)

const (
	Abstain   = core.Abstain
	AlphaWins = core.AlphaWins
	BetaWins  = core.BetaWins
)

// ComputeRanking 见 power.ComputeRanking。
func ComputeRanking(itemIDs []string, votes []Comparison, dampingFactor float64, opts ...power.Option) (*Ranking, error) {
	return power.ComputeRanking(itemIDs, votes, dampingFactor, opts...)
}
