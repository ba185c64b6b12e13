package builders

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rushteam/itemrank/config"
	"github.com/rushteam/itemrank/core"
	"github.com/rushteam/itemrank/feature"
	"github.com/rushteam/itemrank/filter"
	"github.com/rushteam/itemrank/pipeline"
	"github.com/rushteam/itemrank/pkg/conv"
	"github.com/rushteam/itemrank/rank"
	"github.com/rushteam/itemrank/rerank"
	"github.com/rushteam/itemrank/weight"
)

func init() {
	config.Register("rank.weighted", BuildWeightedNode)
	config.Register("feature.minmax", BuildMinMaxNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("rerank.diversity", BuildDiversityNode)
	config.Register("filter.expr", BuildExprFilterNode)
	config.Register("filter.blacklist", BuildBlacklistNode)
}

// BuildWeightedNode 配置项：
//   - id_field: 标识列（默认 item_id）
//   - fields: 分数列，列表或逗号分隔字符串（默认三列）
//   - weights: 权重描述字符串，或 {field: weight} 映射；缺省等权
//   - normalize: 是否先做 Min-Max 归一化
//   - score_column: 综合分列名（默认 final_score）
func BuildWeightedNode(cfg map[string]interface{}) (pipeline.Node, error) {
	fields := scoreFields(cfg)

	spec, err := weightSpec(cfg["weights"])
	if err != nil {
		return nil, err
	}
	weights, err := weight.Parse(fields, spec)
	if err != nil {
		return nil, err
	}

	return &rank.WeightedNode{
		IDField:     conv.ConfigGet(cfg, "id_field", core.DefaultIDField),
		Fields:      fields,
		Weights:     weights,
		Normalize:   conv.ConfigGet(cfg, "normalize", false),
		ScoreColumn: conv.ConfigGet(cfg, "score_column", core.DefaultScoreColumn),
	}, nil
}

func BuildMinMaxNode(cfg map[string]interface{}) (pipeline.Node, error) {
	return &feature.MinMaxNode{Fields: scoreFields(cfg)}, nil
}

func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	n := conv.ConfigGetInt64(cfg, "n", core.DefaultTopN)
	if n < 0 {
		return nil, fmt.Errorf("n must be >= 0, got %d", n)
	}
	return &rerank.TopNNode{N: int(n)}, nil
}

// BuildDiversityNode 配置项：field（默认 category）、max_per_group（默认 1）。
func BuildDiversityNode(cfg map[string]interface{}) (pipeline.Node, error) {
	maxPer := conv.ConfigGetInt64(cfg, "max_per_group", 1)
	if maxPer < 1 {
		return nil, fmt.Errorf("max_per_group must be >= 1, got %d", maxPer)
	}
	return &rerank.Diversity{
		Field:       conv.ConfigGet(cfg, "field", "category"),
		MaxPerGroup: int(maxPer),
	}, nil
}

func BuildExprFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	expr := strings.TrimSpace(conv.ConfigGet(cfg, "expr", ""))
	if expr == "" {
		return nil, fmt.Errorf("expr not found")
	}
	f, err := filter.NewExprFilter(expr)
	if err != nil {
		return nil, err
	}
	return &filter.FilterNode{Filters: []filter.Filter{f}}, nil
}

func BuildBlacklistNode(cfg map[string]interface{}) (pipeline.Node, error) {
	ids := conv.SliceAnyToString(cfg["ids"])
	return &filter.FilterNode{Filters: []filter.Filter{filter.NewBlacklistFilter(ids)}}, nil
}

func scoreFields(cfg map[string]interface{}) []string {
	if fields := conv.SliceAnyToString(cfg["fields"]); len(fields) > 0 {
		return fields
	}
	return core.DefaultScoreFields()
}

// weightSpec 把配置中的 weights 统一成描述字符串，交给 weight.Parse 做同样的校验。
// 映射形式按字段名排序拼接，结果与顺序无关。
func weightSpec(v any) (string, error) {
	switch w := v.(type) {
	case nil:
		return "", nil
	case string:
		return w, nil
	case map[string]interface{}:
		keys := make([]string, 0, len(w))
		for k := range w {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			f, ok := conv.ToFloat64(w[k])
			if !ok {
				return "", core.Errorf(core.ModuleWeight, core.ErrorCodeFormat, "weight for %q is not a number: %v", k, w[k])
			}
			parts = append(parts, k+"="+strconv.FormatFloat(f, 'g', -1, 64))
		}
		return strings.Join(parts, ","), nil
	default:
		return "", core.Errorf(core.ModuleWeight, core.ErrorCodeFormat, "weights must be a string or a mapping, got %T", v)
	}
}
