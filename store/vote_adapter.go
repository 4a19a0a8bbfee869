package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/rushteam/powerrank/core"
	"github.com/rushteam/powerrank/power"
)

const (
	defaultKeyPrefix   = "powerrank"
	fieldDampingFactor = "damping_factor"
)

// sortedSetReplacer 是可选能力：原子地重写整个有序集合（RedisStore 实现）。
type sortedSetReplacer interface {
	ReplaceSortedSet(ctx context.Context, key string, members []core.ScoredMember) error
}

// VoteAdapter 把 core.KeyValueStore 适配为投票领域的各个接口。
//
// Key 布局（prefix 默认 powerrank）：
//
//	{prefix}:ballots:{scope}   Hash，field 为 ballot ID，value 为 JSON ballot
//	{prefix}:catalog:{scope}   JSON 数组，候选条目的有序列表
//	{prefix}:scope:{scope}     Hash，field damping_factor
//	{prefix}:ranking:{scope}   Sorted Set，已发布的排名
type VoteAdapter struct {
	kv       core.KeyValueStore
	prefix   string
	defaults core.RankConfig
}

// VoteAdapterOption 配置 VoteAdapter。
type VoteAdapterOption func(*VoteAdapter)

// WithKeyPrefix 设置 key 前缀。
func WithKeyPrefix(prefix string) VoteAdapterOption {
	return func(a *VoteAdapter) {
		if prefix != "" {
			a.prefix = prefix
		}
	}
}

// WithRankConfig 设置默认值来源（未配置阻尼系数时使用）。
func WithRankConfig(cfg core.RankConfig) VoteAdapterOption {
	return func(a *VoteAdapter) {
		if cfg != nil {
			a.defaults = cfg
		}
	}
}

func NewVoteAdapter(kv core.KeyValueStore, opts ...VoteAdapterOption) *VoteAdapter {
	a := &VoteAdapter{
		kv:       kv,
		prefix:   defaultKeyPrefix,
		defaults: &core.DefaultRankConfig{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *VoteAdapter) ballotsKey(scope string) string { return a.prefix + ":ballots:" + scope }
func (a *VoteAdapter) catalogKey(scope string) string { return a.prefix + ":catalog:" + scope }
func (a *VoteAdapter) scopeKey(scope string) string   { return a.prefix + ":scope:" + scope }
func (a *VoteAdapter) rankingKey(scope string) string { return a.prefix + ":ranking:" + scope }

// Ballots 返回范围内全部 ballot，按 ballot ID 排序。
func (a *VoteAdapter) Ballots(ctx context.Context, scope string) ([]core.Ballot, error) {
	raw, err := a.kv.HGetAll(ctx, a.ballotsKey(scope))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	ballots := make([]core.Ballot, 0, len(ids))
	for _, id := range ids {
		var b core.Ballot
		if err := json.Unmarshal(raw[id], &b); err != nil {
			return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput,
				fmt.Sprintf("decode ballot %s in scope %s", id, scope)).Wrap(err)
		}
		if b.ID == "" {
			b.ID = id
		}
		ballots = append(ballots, b)
	}
	return ballots, nil
}

// Comparisons 实现 core.VoteStore。
func (a *VoteAdapter) Comparisons(ctx context.Context, scope string) ([]core.Comparison, error) {
	ballots, err := a.Ballots(ctx, scope)
	if err != nil {
		return nil, err
	}
	return core.FlattenBallots(ballots), nil
}

// SaveBallot 实现 core.VoteStore；同 ID 的 ballot 会被覆盖。
func (a *VoteAdapter) SaveBallot(ctx context.Context, scope string, ballot core.Ballot) error {
	if err := ballot.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(ballot)
	if err != nil {
		return err
	}
	return a.kv.HSet(ctx, a.ballotsKey(scope), ballot.ID, data)
}

// Catalog 实现 core.CatalogProvider；目录不存在时返回空列表。
func (a *VoteAdapter) Catalog(ctx context.Context, scope string) ([]string, error) {
	data, err := a.kv.Get(ctx, a.catalogKey(scope))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return []string{}, nil
		}
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput,
			"decode catalog for scope "+scope).Wrap(err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// SaveCatalog 覆盖范围的目录，顺序即并列次序。
func (a *VoteAdapter) SaveCatalog(ctx context.Context, scope string, itemIDs []string) error {
	if itemIDs == nil {
		itemIDs = []string{}
	}
	data, err := json.Marshal(itemIDs)
	if err != nil {
		return err
	}
	return a.kv.Set(ctx, a.catalogKey(scope), data)
}

// DampingFactor 实现 core.ScopeSettingsProvider。
// 存储值不在 [0,1] 时原样返回，由引擎拒绝。
func (a *VoteAdapter) DampingFactor(ctx context.Context, scope string) (float64, error) {
	data, err := a.kv.HGet(ctx, a.scopeKey(scope), fieldDampingFactor)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return a.defaults.DefaultDampingFactor(), nil
		}
		return 0, err
	}
	d, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return 0, core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput,
			"decode damping factor for scope "+scope).Wrap(err)
	}
	return d, nil
}

// SetDampingFactor 校验并保存范围的阻尼系数。
func (a *VoteAdapter) SetDampingFactor(ctx context.Context, scope string, d float64) error {
	if err := power.ValidateDampingFactor(d); err != nil {
		return err
	}
	return a.kv.HSet(ctx, a.scopeKey(scope), fieldDampingFactor, []byte(strconv.FormatFloat(d, 'g', -1, 64)))
}

// PublishRanking 实现 core.RankingPublisher：整体替换范围的已发布排名。
func (a *VoteAdapter) PublishRanking(ctx context.Context, scope string, ranked []core.RankedItem) error {
	key := a.rankingKey(scope)
	members := make([]core.ScoredMember, len(ranked))
	for i, r := range ranked {
		members[i] = core.ScoredMember{Member: r.ItemID, Score: r.Power}
	}

	if rep, ok := a.kv.(sortedSetReplacer); ok {
		return rep.ReplaceSortedSet(ctx, key, members)
	}
	if err := a.kv.Delete(ctx, key); err != nil {
		return err
	}
	for _, m := range members {
		if err := a.kv.ZAdd(ctx, key, m.Score, m.Member); err != nil {
			return err
		}
	}
	return nil
}

// TopRanked 读取已发布排名的前 n 个（n <= 0 表示全部）。
// 同分条目按成员名降序，与 Redis ZREVRANGE 一致。
func (a *VoteAdapter) TopRanked(ctx context.Context, scope string, n int) ([]core.RankedItem, error) {
	stop := int64(-1)
	if n > 0 {
		stop = int64(n) - 1
	}
	scored, err := a.kv.ZRangeWithScores(ctx, a.rankingKey(scope), 0, stop)
	if err != nil {
		return nil, err
	}
	out := make([]core.RankedItem, len(scored))
	for i, s := range scored {
		out[i] = core.RankedItem{ItemID: s.Member, Power: s.Score}
	}
	return out, nil
}

var (
	_ core.VoteStore             = (*VoteAdapter)(nil)
	_ core.CatalogProvider       = (*VoteAdapter)(nil)
	_ core.ScopeSettingsProvider = (*VoteAdapter)(nil)
	_ core.RankingPublisher      = (*VoteAdapter)(nil)
)
