package filter

import (
	"context"

	"github.com/rushteam/itemrank/core"
	"github.com/rushteam/itemrank/pkg/dsl"
)

// ExprFilter 用 CEL 表达式选择要保留的行：表达式为 true 的行保留，其余过滤。
type ExprFilter struct {
	eval *dsl.Eval
}

// NewExprFilter 编译表达式；语法错误在构建阶段即返回。
func NewExprFilter(expr string) (*ExprFilter, error) {
	eval, err := dsl.Compile(expr)
	if err != nil {
		return nil, core.Errorf(core.ModuleConfig, core.ErrorCodeInvalidInput, "filter %q: %v", expr, err)
	}
	return &ExprFilter{eval: eval}, nil
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RankContext,
	item *core.Item,
) (bool, error) {
	keep, err := f.eval.Evaluate(item, rctx)
	if err != nil {
		return false, err
	}
	return !keep, nil
}
