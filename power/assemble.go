package power

import (
	"encoding/json"
	"sort"

	"github.com/rushteam/powerrank/core"
)

// Ranking 是一次排名计算的不可变结果：按 power 降序排列，每个目录条目恰好一项。
type Ranking struct {
	entries      []core.RankedItem
	index        map[string]int // itemID -> entries 中首次出现的位置
	scores       ScoreVector
	participants int
	stats        Stats
	insufficient bool
}

// Assemble 把分数映射回完整目录：
//   - 目录中的每一项都有输出（重复 ID 原样保留），不在 scores 中的记为 0
//   - 按分数降序稳定排序，并列时保持目录顺序
func Assemble(catalog []string, scores ScoreVector) *Ranking {
	entries := make([]core.RankedItem, len(catalog))
	for i, id := range catalog {
		entries[i] = core.RankedItem{ItemID: id, Power: scores[id]}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Power > entries[j].Power
	})
	index := make(map[string]int, len(entries))
	for i, e := range entries {
		if _, ok := index[e.ItemID]; !ok {
			index[e.ItemID] = i
		}
	}
	return &Ranking{
		entries:      entries,
		index:        index,
		scores:       scores,
		participants: len(scores),
	}
}

// Len 返回条目数，等于输入目录长度。
func (r *Ranking) Len() int { return len(r.entries) }

// At 返回第 i 名（0 起）。
func (r *Ranking) At(i int) core.RankedItem { return r.entries[i] }

// Entries 返回排名结果的副本。
func (r *Ranking) Entries() []core.RankedItem {
	out := make([]core.RankedItem, len(r.entries))
	copy(out, r.entries)
	return out
}

// Power 返回指定条目的分数；重复 ID 时返回首个。
func (r *Ranking) Power(itemID string) (float64, bool) {
	i, ok := r.index[itemID]
	if !ok {
		return 0, false
	}
	return r.entries[i].Power, true
}

// IsParticipant 报告 itemID 是否参与了迭代（至少出现在一条有效比较中）。
func (r *Ranking) IsParticipant(itemID string) bool {
	_, ok := r.scores[itemID]
	return ok
}

// Participants 返回参与迭代的条目数。
func (r *Ranking) Participants() int { return r.participants }

// Stats 返回迭代统计；InsufficientData 时为零值。
func (r *Ranking) Stats() Stats { return r.stats }

// InsufficientData 表示参与者少于 2 个，未运行迭代，所有分数为 0。
// 这是"还没有足够投票"的正常状态，不是错误。
func (r *Ranking) InsufficientData() bool { return r.insufficient }

// MarshalJSON 输出 [{itemId, power}, ...]。
func (r *Ranking) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.entries)
}
