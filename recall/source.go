package recall

import (
	"context"

	"github.com/rushteam/powerrank/core"
)

// Source 表示一个候选目录来源。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RankContext) ([]*core.Item, error)
}
