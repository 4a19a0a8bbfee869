package pipeline

import (
	"context"

	"github.com/rushteam/powerrank/core"
)

// Kind 用于标记 Node 类型，方便观测/治理/编排（例如按阶段打点）。
type Kind string

const (
	KindRecall      Kind = "recall"      // 召回阶段：加载候选目录
	KindFilter      Kind = "filter"      // 过滤阶段：剔除不符合约束的条目
	KindRank        Kind = "rank"        // 排序阶段：计算 power 并排序
	KindReRank      Kind = "rerank"      // 重排阶段：截断等展示调整
	KindPostProcess Kind = "postprocess" // 后处理阶段：补充展示字段
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用"输入 items -> 输出 items"的形态。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RankContext,
		items []*core.Item,
	) ([]*core.Item, error)
}

// NodeBuilder 根据配置构建 Node。
type NodeBuilder func(config map[string]any) (Node, error)
