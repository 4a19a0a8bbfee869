package recall

import (
	"context"
	"fmt"

	"github.com/rushteam/powerrank/core"
	"github.com/rushteam/powerrank/pipeline"
	"github.com/rushteam/powerrank/pkg/utils"
)

// Catalog 是目录召回：加载范围内的完整候选条目（包括尚未被投票的条目），保持提供方给出的顺序。
// - 配置了 Provider 时按 rctx.Scope 读取
// - 否则使用静态 IDs（测试或离线计算）
// Catalog 同时实现了 Source 和 Node 接口，可以直接在 Pipeline 中使用。
type Catalog struct {
	Provider core.CatalogProvider
	IDs      []string
}

func (r *Catalog) Name() string        { return "recall.catalog" }
func (r *Catalog) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口；目录即排名的全集，因此忽略上游 items。
func (r *Catalog) Process(
	ctx context.Context,
	rctx *core.RankContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *Catalog) Recall(ctx context.Context, rctx *core.RankContext) ([]*core.Item, error) {
	ids := r.IDs
	if r.Provider != nil {
		scope := ""
		if rctx != nil {
			scope = rctx.Scope
		}
		loaded, err := r.Provider.Catalog(ctx, scope)
		if err != nil {
			return nil, fmt.Errorf("load catalog %q: %w", scope, err)
		}
		ids = loaded
	}

	items := core.ItemsFromIDs(ids)
	for _, it := range items {
		it.PutLabel("recall_source", utils.Label{Value: "catalog", Source: "recall"})
	}
	return items, nil
}

var (
	_ Source        = (*Catalog)(nil)
	_ pipeline.Node = (*Catalog)(nil)
)
