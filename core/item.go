package core

import "github.com/rushteam/powerrank/pkg/utils"

// Item 是 Pipeline 中的统一承载结构：待排名的条目（提案、项目等）、分数、元信息、标签。
// Score 即 power 分数；Labels 用于解释（是否参与比较、排名模型等）。
// 展示用元数据由调用方在下游挂到 Meta 上，引擎本身只关心 ID。
type Item struct {
	ID     string
	Score  float64
	Meta   map[string]any
	Labels map[string]utils.Label
}

func NewItem(id string) *Item {
	return &Item{
		ID:     id,
		Score:  0,
		Meta:   make(map[string]any),
		Labels: make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// RankedItem 是排名结果中的一项：条目 ID 与其 power 分数。
type RankedItem struct {
	ItemID string  `json:"itemId"`
	Power  float64 `json:"power"`
}

// ItemsFromIDs 按给定顺序为每个 ID 构造一个 Item（保留重复项）。
func ItemsFromIDs(ids []string) []*Item {
	out := make([]*Item, 0, len(ids))
	for _, id := range ids {
		out = append(out, NewItem(id))
	}
	return out
}

// ItemIDs 返回 items 的 ID 序列，跳过 nil。
func ItemIDs(items []*Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		out = append(out, it.ID)
	}
	return out
}
