package filter

import (
	"context"

	"github.com/rushteam/tripkit/core"
	"github.com/rushteam/tripkit/pkg/dsl"
)

// ExprFilter 使用 CEL 表达式过滤记录，表达式为 true 时过滤。
// 用于运营侧临时下架规则，例如：
//
//	listing.name.startsWith("Closed") || listing.price < 1.0
type ExprFilter struct {
	program *dsl.Program
}

// NewExprFilter 编译表达式；表达式在启动时编译一次，之后并发只读。
func NewExprFilter(expr string) (*ExprFilter, error) {
	prg, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &ExprFilter{program: prg}, nil
}

func (f *ExprFilter) Name() string { return "filter.expr" }

// Expr 返回原始表达式
func (f *ExprFilter) Expr() string { return f.program.Expr() }

func (f *ExprFilter) ShouldFilter(_ context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error) {
	return f.program.Eval(item, rctx)
}
