package core

import "context"

// VoteStore 是投票数据的领域接口。
//
// 引擎只消费已校验的比较记录快照；VoteStore 负责按范围提供这份快照并接收新的 ballot。
// 一人一票、资格白名单等提交规则不在此接口内。
//
// 实现：
//   - store.VoteAdapter 实现此接口（基于 core.KeyValueStore）
type VoteStore interface {
	// Comparisons 返回范围内全部比较记录，顺序稳定（同一快照多次读取顺序一致）
	Comparisons(ctx context.Context, scope string) ([]Comparison, error)

	// SaveBallot 保存（或覆盖同 ID 的）ballot
	SaveBallot(ctx context.Context, scope string, ballot Ballot) error
}

// CatalogProvider 提供范围内的完整候选条目列表（包括从未被投票的条目）。
// 返回顺序即排名并列时的次序依据。
type CatalogProvider interface {
	Catalog(ctx context.Context, scope string) ([]string, error)
}

// ScopeSettingsProvider 提供范围级设置。
type ScopeSettingsProvider interface {
	// DampingFactor 返回范围配置的阻尼系数；未配置时实现应返回默认值
	DampingFactor(ctx context.Context, scope string) (float64, error)
}

// RankingPublisher 把计算好的排名发布给展示层。
type RankingPublisher interface {
	PublishRanking(ctx context.Context, scope string, ranked []RankedItem) error
}
