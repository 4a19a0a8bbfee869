package filter

import (
	"context"
	"sync"

	"github.com/rushteam/powerrank/core"
	"github.com/rushteam/powerrank/pkg/dsl"
)

// ExprFilter 使用 CEL 表达式过滤：表达式为 true 的条目被保留。
//
// 示例：
//
//	&ExprFilter{Expr: `label.participant == "true"`}  // 只展示参与过比较的条目
//	&ExprFilter{Expr: `item.score >= 0.05`}
type ExprFilter struct {
	Expr string

	once sync.Once
	prg  *dsl.Program
	err  error
}

// NewExprFilter 编译表达式并创建过滤器。
func NewExprFilter(expr string) (*ExprFilter, error) {
	prg, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &ExprFilter{Expr: expr, prg: prg}, nil
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RankContext,
	item *core.Item,
) (bool, error) {
	prg, err := f.program()
	if err != nil {
		return false, err
	}
	keep, err := prg.Evaluate(item, rctx)
	if err != nil {
		return false, err
	}
	return !keep, nil
}

// program 返回编译结果；字面量构造的过滤器在首次使用时编译一次，可并发调用。
func (f *ExprFilter) program() (*dsl.Program, error) {
	f.once.Do(func() {
		if f.prg == nil {
			f.prg, f.err = dsl.Compile(f.Expr)
		}
	})
	return f.prg, f.err
}

var _ Filter = (*ExprFilter)(nil)
