package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/itemrank/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("params", cel.DynType),
	)
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = initCELEnv()
	})
	return celEnv, celEnvErr
}

// Eval 是行级表达式解释器，使用 CEL (Common Expression Language) 实现。
// 表达式编译一次，可对多行重复求值。
//
// 可用变量：
//   - item.id / item.score
//   - item.features.<列名>   分数列数值（rank 之前为空，除非已归一化）
//   - item.fields.<列名>     原始文本
//   - label.<key>            Label 的 Value
//   - params.<key>           运行级参数
//
// 示例：
//   - `double(item.fields.score_cost) > 0.1`
//   - `item.score >= 0.5 && item.fields.category == "A"`
//   - `label.normalized == "minmax"`
type Eval struct {
	expr string
	prg  cel.Program
}

// Compile 编译表达式；表达式必须返回 bool。
func Compile(expr string) (*Eval, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}
	if ot := ast.OutputType(); !ot.IsExactType(cel.BoolType) && !ot.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("expression must return bool, got %s", ot)
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Eval{expr: expr, prg: prg}, nil
}

// Expr 返回原始表达式文本
func (e *Eval) Expr() string { return e.expr }

// Evaluate 对一行求值。
// 访问不存在的 key 时 CEL 返回错误，可用 has(item.fields.xxx) 先判断。
func (e *Eval) Evaluate(item *core.Item, rctx *core.RankContext) (bool, error) {
	out, _, err := e.prg.Eval(buildInput(item, rctx))
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func buildInput(it *core.Item, rctx *core.RankContext) map[string]any {
	fields := make(map[string]any, len(it.Fields))
	for k, v := range it.Fields {
		fields[k] = v
	}
	features := make(map[string]any, len(it.Features))
	for k, v := range it.Features {
		features[k] = v
	}
	labels := make(map[string]any, len(it.Labels))
	for k, v := range it.Labels {
		labels[k] = v.Value
	}

	params := map[string]any{}
	if rctx != nil {
		for k, v := range rctx.Params {
			params[k] = v
		}
	}

	return map[string]any{
		"item": map[string]any{
			"id":       it.ID,
			"score":    it.Score,
			"fields":   fields,
			"features": features,
		},
		"label":  labels,
		"params": params,
	}
}
