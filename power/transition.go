package power

import (
	"fmt"
	"math"

	"github.com/rushteam/powerrank/core"
)

// Contribution 表示节点从 From 接收到的转移份额 weight(From, v) / out(From)。
type Contribution struct {
	From  int
	Share float64
}

// TransitionModel 是带阻尼的随机转移模型。
// 出度为 0 的悬挂节点不单独存边，其质量在每轮迭代中均匀分给所有参与者。
type TransitionModel struct {
	damping      float64
	participants []string
	incoming     [][]Contribution
	outWeight    []float64
	dangling     []int
}

// ValidateDampingFactor 校验阻尼系数位于 [0,1]。
func ValidateDampingFactor(d float64) error {
	if math.IsNaN(d) || d < 0 || d > 1 {
		return core.NewInvalidParameter(fmt.Sprintf("damping factor %v outside [0, 1]", d))
	}
	return nil
}

// NewTransitionModel 由偏好图和阻尼系数构造转移模型。
func NewTransitionModel(g *Graph, d float64) (*TransitionModel, error) {
	if err := ValidateDampingFactor(d); err != nil {
		return nil, err
	}
	if g == nil {
		return nil, core.NewInvalidParameter("nil graph")
	}

	n := g.Len()
	m := &TransitionModel{
		damping:      d,
		participants: g.Participants(),
		incoming:     make([][]Contribution, n),
		outWeight:    make([]float64, n),
	}
	for _, e := range g.edges {
		m.outWeight[e.From] += e.Weight
	}
	for _, e := range g.edges {
		m.incoming[e.To] = append(m.incoming[e.To], Contribution{
			From:  e.From,
			Share: e.Weight / m.outWeight[e.From],
		})
	}
	for u, w := range m.outWeight {
		if w == 0 {
			m.dangling = append(m.dangling, u)
		}
	}
	return m, nil
}

// Len 返回参与者数量。
func (m *TransitionModel) Len() int {
	return len(m.participants)
}

// DampingFactor 返回模型使用的阻尼系数。
func (m *TransitionModel) DampingFactor() float64 {
	return m.damping
}

// Incoming 返回节点 v 接收的转移份额副本。
func (m *TransitionModel) Incoming(v int) []Contribution {
	out := make([]Contribution, len(m.incoming[v]))
	copy(out, m.incoming[v])
	return out
}

// OutWeight 返回节点 u 的总出权重。
func (m *TransitionModel) OutWeight(u int) float64 {
	return m.outWeight[u]
}

// Dangling 返回悬挂节点下标的副本。
func (m *TransitionModel) Dangling() []int {
	out := make([]int, len(m.dangling))
	copy(out, m.dangling)
	return out
}
