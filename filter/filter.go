package filter

import (
	"context"

	"github.com/rushteam/powerrank/core"
)

// Filter 是过滤器的抽象接口，用于判断一个 Item 是否应该被过滤掉。
// 返回 true 表示应该过滤（移除），false 表示保留。
type Filter interface {
	// Name 返回过滤器名称
	Name() string

	// ShouldFilter 判断 item 是否应该被过滤
	ShouldFilter(ctx context.Context, rctx *core.RankContext, item *core.Item) (bool, error)
}

// Preparer 是可选接口：需要请求级数据（例如存储中的列表）的过滤器在 Process 开始时加载一次，
// 返回绑定到本次请求的 Filter，原过滤器不被修改，可在并发请求间共享。
type Preparer interface {
	Prepare(ctx context.Context, rctx *core.RankContext) (Filter, error)
}
