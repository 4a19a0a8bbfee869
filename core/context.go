package core

import "github.com/rushteam/powerrank/pkg/utils"

// RankContext 承载一次排名请求的范围、投票快照与参数，贯穿整个 Pipeline 透传。
// 每次请求新建，Node 不应跨请求持有它。
type RankContext struct {
	// Scope 是排名范围（例如一个预算箱 / 一轮投票）
	Scope string

	// DampingFactor 是 [0,1] 内的阻尼系数
	DampingFactor float64

	// Votes 是本次请求使用的投票快照
	Votes []Comparison

	// Labels 是请求级标签，可驱动 Pipeline 行为
	Labels map[string]utils.Label

	// Params 请求级参数（例如 debug、调用方附加信息）
	Params map[string]any

	// Stats 由排序 Node 写入，记录本次引擎运行的统计信息
	Stats *RankStats
}

// RankStats 是一次引擎运行的统计信息，用于日志与监控。
type RankStats struct {
	Participants     int     `json:"participants"`
	Iterations       int     `json:"iterations"`
	Converged        bool    `json:"converged"`
	Delta            float64 `json:"delta"`
	InsufficientData bool    `json:"insufficientData"`
}

// PutLabel 写入请求级 Label。
func (rctx *RankContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RankContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
