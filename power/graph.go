package power

import (
	"fmt"

	"github.com/rushteam/powerrank/core"
)

// Edge 是偏好图中的一条有向边：From（败者）指向 To（胜者），Weight 为累积票数。
type Edge struct {
	From   int
	To     int
	Weight float64
}

// Graph 是由两两比较构造的加权有向多重图。
// 节点下标按首次出现顺序分配，保证同一输入得到同一结构。
type Graph struct {
	participants []string
	index        map[string]int
	edges        []Edge
	edgeIndex    map[[2]int]int
}

// BuildGraph 把比较记录转换为偏好图。
//   - 弃权记录被丢弃
//   - AlphaWins 产生 beta -> alpha，BetaWins 产生 alpha -> beta
//   - 相同方向的重复记录累加权重；a->b 与 b->a 分别记录，不做抵消
//   - 缺失 ID 或 alpha == beta 的记录不携带比较信息，被跳过
func BuildGraph(comparisons []core.Comparison) (*Graph, error) {
	g := &Graph{
		index:     make(map[string]int),
		edgeIndex: make(map[[2]int]int),
	}
	for i, c := range comparisons {
		if !c.Preference.Valid() {
			return nil, core.NewInvalidParameter(fmt.Sprintf("comparison #%d: %s", i, c.Preference))
		}
		winner, loser, ok := c.Outcome()
		if !ok {
			continue
		}
		g.addEdge(g.node(loser), g.node(winner), 1)
	}
	return g, nil
}

func (g *Graph) node(id string) int {
	if idx, ok := g.index[id]; ok {
		return idx
	}
	idx := len(g.participants)
	g.index[id] = idx
	g.participants = append(g.participants, id)
	return idx
}

func (g *Graph) addEdge(from, to int, w float64) {
	key := [2]int{from, to}
	if pos, ok := g.edgeIndex[key]; ok {
		g.edges[pos].Weight += w
		return
	}
	g.edgeIndex[key] = len(g.edges)
	g.edges = append(g.edges, Edge{From: from, To: to, Weight: w})
}

// Len 返回参与者数量。
func (g *Graph) Len() int {
	return len(g.participants)
}

// Participants 返回参与者 ID（按下标顺序）的副本。
func (g *Graph) Participants() []string {
	out := make([]string, len(g.participants))
	copy(out, g.participants)
	return out
}

// Index 返回参与者的下标。
func (g *Graph) Index(id string) (int, bool) {
	idx, ok := g.index[id]
	return idx, ok
}

// Edges 返回所有边（按首次出现顺序）的副本。
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Weight 返回 loser -> winner 方向的累积权重，不存在时为 0。
func (g *Graph) Weight(loser, winner string) float64 {
	from, ok := g.index[loser]
	if !ok {
		return 0
	}
	to, ok := g.index[winner]
	if !ok {
		return 0
	}
	if pos, ok := g.edgeIndex[[2]int{from, to}]; ok {
		return g.edges[pos].Weight
	}
	return 0
}
