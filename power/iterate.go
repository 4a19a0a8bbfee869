package power

import (
	"fmt"
	"math"

	"github.com/rushteam/powerrank/core"
)

// ScoreVector 是参与者到 power 分数的映射，所有值之和为 1。
type ScoreVector map[string]float64

// Sum 返回所有分数之和。
func (s ScoreVector) Sum() float64 {
	total := 0.0
	for _, v := range s {
		total += v
	}
	return total
}

// IterateOptions 控制幂迭代的终止条件。
type IterateOptions struct {
	// MaxIterations 轮数上限，必须 >= 1
	MaxIterations int
	// Tolerance 相邻两轮分数向量的 L1 距离低于该值即视为收敛，必须为非负有限值
	Tolerance float64
}

// Validate 校验迭代参数。
func (o IterateOptions) Validate() error {
	if o.MaxIterations < 1 {
		return core.NewInvalidParameter(fmt.Sprintf("max iterations %d < 1", o.MaxIterations))
	}
	if math.IsNaN(o.Tolerance) || math.IsInf(o.Tolerance, 0) || o.Tolerance < 0 {
		return core.NewInvalidParameter(fmt.Sprintf("tolerance %v must be a non-negative finite number", o.Tolerance))
	}
	return nil
}

// Stats 记录一次迭代的过程信息，用于观测。
type Stats struct {
	Iterations int     `json:"iterations"`
	Converged  bool    `json:"converged"`
	Delta      float64 `json:"delta"`
}

// Iterate 在转移模型上做幂迭代：
//
//	new(v) = (1-d)/N + d * ( Σ_{u->v} score(u) * w(u,v)/out(u) + danglingMass/N )
//
// 直到 L1 距离低于 Tolerance 或达到 MaxIterations。出现 NaN/Inf 时返回 FailedConvergence，
// 不返回部分结果。返回前把分数重新归一化到和为 1。
func Iterate(m *TransitionModel, opts IterateOptions) (ScoreVector, Stats, error) {
	if err := opts.Validate(); err != nil {
		return nil, Stats{}, err
	}
	if m == nil || m.Len() == 0 {
		return ScoreVector{}, Stats{Converged: true}, nil
	}

	scores, stats, err := iterate(m, opts)
	if err != nil {
		return nil, stats, err
	}

	out := make(ScoreVector, len(scores))
	for i, id := range m.participants {
		out[id] = scores[i]
	}
	return out, stats, nil
}

func iterate(m *TransitionModel, opts IterateOptions) ([]float64, Stats, error) {
	var (
		n    = m.Len()
		nf   = float64(n)
		d    = m.damping
		base = (1 - d) / nf
		cur  = make([]float64, n)
		next = make([]float64, n)
	)
	for i := range cur {
		cur[i] = 1 / nf
	}

	var stats Stats
	for round := 1; round <= opts.MaxIterations; round++ {
		danglingMass := 0.0
		for _, u := range m.dangling {
			danglingMass += cur[u]
		}
		spread := danglingMass / nf

		delta := 0.0
		for v := 0; v < n; v++ {
			received := 0.0
			for _, c := range m.incoming[v] {
				received += cur[c.From] * c.Share
			}
			s := base + d*(received+spread)
			if !isFinite(s) {
				return nil, stats, core.NewFailedConvergence(
					fmt.Sprintf("non-finite score for %q at round %d", m.participants[v], round))
			}
			next[v] = s
			delta += math.Abs(s - cur[v])
		}

		cur, next = next, cur
		stats.Iterations = round
		stats.Delta = delta
		if delta < opts.Tolerance {
			stats.Converged = true
			break
		}
	}

	total := 0.0
	for _, s := range cur {
		total += s
	}
	if !isFinite(total) || total <= 0 {
		return nil, stats, core.NewFailedConvergence(fmt.Sprintf("score mass %v cannot be normalized", total))
	}
	for i := range cur {
		cur[i] /= total
	}
	return cur, stats, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
