package rank

import (
	"context"
	"sort"

	"github.com/rushteam/itemrank/core"
	"github.com/rushteam/itemrank/feature"
	"github.com/rushteam/itemrank/model"
	"github.com/rushteam/itemrank/pipeline"
	"github.com/rushteam/itemrank/weight"
)

// WeightedNode 是加权综合分排序 Node：
//   - 校验标识列与全部分数列存在（缺失时返回 SCHEMA_ERROR，列出全部缺失列）
//   - Normalize 为 true 时先对分数列做 Min-Max 归一化
//   - 按 Weights 计算综合分写入 ScoreColumn，并稳定降序排序（同分保持输入顺序）
//   - 写入 labels：rank_model
//
// 不修改输入表。
type WeightedNode struct {
	IDField     string
	Fields      []string
	Weights     *weight.Map // 为 nil 时等权
	Normalize   bool
	ScoreColumn string
}

func (n *WeightedNode) Name() string        { return "rank.weighted" }
func (n *WeightedNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *WeightedNode) Process(
	_ context.Context,
	_ *core.RankContext,
	tbl *core.Table,
) (*core.Table, error) {
	idField := n.IDField
	if idField == "" {
		idField = core.DefaultIDField
	}
	scoreColumn := n.ScoreColumn
	if scoreColumn == "" {
		scoreColumn = core.DefaultScoreColumn
	}

	required := append([]string{idField}, n.Fields...)
	if missing := tbl.MissingColumns(required...); len(missing) > 0 {
		return nil, core.NewDomainError(core.ModuleRank, core.ErrorCodeSchema,
			"input table is missing required columns", missing...)
	}

	weights, err := n.resolveWeights()
	if err != nil {
		return nil, err
	}

	working := tbl.Clone()
	if err := working.BindFeatures(core.ModuleRank, n.Fields...); err != nil {
		return nil, err
	}
	if n.Normalize {
		working, err = feature.NormalizeTable(working, n.Fields)
		if err != nil {
			return nil, err
		}
	}

	m := model.NewWeightedSumModel(weights)
	for _, it := range working.Items {
		if it == nil {
			continue
		}
		it.ID = it.Fields[idField]
		score, err := m.Predict(it.Features)
		if err != nil {
			return nil, err
		}
		it.Score = score
		it.Fields[scoreColumn] = core.FormatFloat(score)
		it.PutLabel("rank_model", core.Label{Value: m.Name(), Source: "rank"})
	}
	working.EnsureColumn(scoreColumn)

	SortByScore(working.Items)
	return working, nil
}

// resolveWeights 返回覆盖全部分数列的权重；未配置时等权。
func (n *WeightedNode) resolveWeights() (*weight.Map, error) {
	if n.Weights == nil {
		return weight.Equal(n.Fields)
	}
	var missing []string
	for _, f := range n.Fields {
		if _, ok := n.Weights.Values[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, core.NewDomainError(core.ModuleWeight, core.ErrorCodeMissingField,
			"missing weights for score fields", missing...)
	}
	// 按本节点的分数列顺序累加
	return &weight.Map{Fields: n.Fields, Values: n.Weights.Values}, nil
}

// SortByScore 按 Score 稳定降序排序；nil 排在最后。
func SortByScore(items []*core.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i] == nil {
			return false
		}
		if items[j] == nil {
			return true
		}
		return items[i].Score > items[j].Score
	})
}
