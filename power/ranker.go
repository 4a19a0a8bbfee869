// Package power 实现基于两两偏好投票的 power 排名引擎（PageRank 家族算法）。
//
// 数据流：比较记录 -> 偏好图（BuildGraph）-> 转移模型（NewTransitionModel）
// -> 幂迭代（Iterate）-> 排名组装（Assemble）。
//
// 引擎无 I/O、无状态，所有函数都是输入的纯函数，可在任意 goroutine 上并发调用。
package power

import (
	"github.com/rushteam/powerrank/core"
)

// MinParticipants 是运行迭代所需的最少参与者数量。
const MinParticipants = 2

var defaultConfig = &core.DefaultRankConfig{}

// Option 用于配置 Ranker。
type Option func(*Ranker)

// WithMaxIterations 设置迭代轮数上限。
func WithMaxIterations(n int) Option {
	return func(r *Ranker) {
		r.opts.MaxIterations = n
	}
}

// WithTolerance 设置收敛阈值（L1 距离）。
func WithTolerance(tol float64) Option {
	return func(r *Ranker) {
		r.opts.Tolerance = tol
	}
}

// Ranker 是一份不可变的引擎配置，可被多个请求并发复用。
type Ranker struct {
	opts IterateOptions
}

// NewRanker 创建 Ranker；未指定的参数使用 core.DefaultRankConfig 的默认值。
func NewRanker(opts ...Option) *Ranker {
	r := &Ranker{
		opts: IterateOptions{
			MaxIterations: defaultConfig.DefaultMaxIterations(),
			Tolerance:     defaultConfig.DefaultTolerance(),
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Options 返回 Ranker 的迭代参数。
func (r *Ranker) Options() IterateOptions {
	return r.opts
}

// Rank 计算排名：
//   - 阻尼系数或迭代参数非法时，在构图之前返回 InvalidParameter
//   - 参与者不足 2 个时返回全 0 排名（目录顺序），InsufficientData() 为 true
//   - 迭代出现非有限值时返回 FailedConvergence，不返回部分结果
func (r *Ranker) Rank(itemIDs []string, votes []core.Comparison, dampingFactor float64) (*Ranking, error) {
	if err := ValidateDampingFactor(dampingFactor); err != nil {
		return nil, err
	}
	if err := r.opts.Validate(); err != nil {
		return nil, err
	}

	g, err := BuildGraph(votes)
	if err != nil {
		return nil, err
	}
	if g.Len() < MinParticipants {
		ranking := Assemble(itemIDs, nil)
		ranking.insufficient = true
		return ranking, nil
	}

	m, err := NewTransitionModel(g, dampingFactor)
	if err != nil {
		return nil, err
	}
	scores, stats, err := Iterate(m, r.opts)
	if err != nil {
		return nil, err
	}

	ranking := Assemble(itemIDs, scores)
	ranking.stats = stats
	return ranking, nil
}

// ComputeRanking 是引擎的主入口：对完整目录 itemIDs 按 votes 计算 power 排名。
// 输出长度恒等于 len(itemIDs)，按 power 降序，并列时保持目录顺序。
func ComputeRanking(itemIDs []string, votes []core.Comparison, dampingFactor float64, opts ...Option) (*Ranking, error) {
	return NewRanker(opts...).Rank(itemIDs, votes, dampingFactor)
}
