package filter

import (
	"context"
	"encoding/json"

	"github.com/rushteam/powerrank/core"
)

// ExcludeFilter 排除指定条目（例如已撤回的提案）。
type ExcludeFilter struct {
	// ItemIDs 是内存中的排除列表
	ItemIDs []string

	// Store 与 Key 可选：从存储读取 JSON 数组形式的排除列表，key 不存在视为空
	Store core.Store
	Key   string

	set map[string]struct{}
}

// NewExcludeFilter 创建一个排除过滤器。
func NewExcludeFilter(itemIDs []string, store core.Store, key string) *ExcludeFilter {
	return &ExcludeFilter{ItemIDs: itemIDs, Store: store, Key: key, set: toSet(itemIDs)}
}

func (f *ExcludeFilter) Name() string {
	return "filter.exclude"
}

// Prepare 读取一次存储中的排除列表，返回只含内存集合的过滤器供本次请求使用。
func (f *ExcludeFilter) Prepare(ctx context.Context, _ *core.RankContext) (Filter, error) {
	stored, err := f.loadStored(ctx)
	if err != nil {
		return nil, err
	}
	set := toSet(f.ItemIDs)
	for _, id := range stored {
		set[id] = struct{}{}
	}
	return &ExcludeFilter{ItemIDs: f.ItemIDs, set: set}, nil
}

func (f *ExcludeFilter) ShouldFilter(
	ctx context.Context,
	_ *core.RankContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	if f.excludedStatic(item.ID) {
		return true, nil
	}

	stored, err := f.loadStored(ctx)
	if err != nil {
		return false, err
	}
	for _, id := range stored {
		if item.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *ExcludeFilter) excludedStatic(id string) bool {
	if f.set != nil {
		_, ok := f.set[id]
		return ok
	}
	for _, x := range f.ItemIDs {
		if x == id {
			return true
		}
	}
	return false
}

func (f *ExcludeFilter) loadStored(ctx context.Context) ([]string, error) {
	if f.Store == nil || f.Key == "" {
		return nil, nil
	}
	data, err := f.Store.Get(ctx, f.Key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var excluded []string
	if err := json.Unmarshal(data, &excluded); err != nil {
		return nil, core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, "decode exclude list "+f.Key).Wrap(err)
	}
	return excluded, nil
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

var (
	_ Filter   = (*ExcludeFilter)(nil)
	_ Preparer = (*ExcludeFilter)(nil)
)
