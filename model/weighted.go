package model

import (
	"github.com/rushteam/itemrank/core"
	"github.com/rushteam/itemrank/weight"
)

// WeightedSumModel 是加权求和模型：
//
//	score = sum(Weight_f * Feature_f), f ∈ Weights.Fields
//
// 按 Weights.Fields 的声明顺序累加（只影响浮点舍入，不影响数学结果）。
// 与 LR 不同，这里不做 Sigmoid 变换，输出就是综合分。
type WeightedSumModel struct {
	Weights *weight.Map
}

func NewWeightedSumModel(weights *weight.Map) *WeightedSumModel {
	return &WeightedSumModel{Weights: weights}
}

func (m *WeightedSumModel) Name() string { return "weighted_sum" }

// Predict 计算综合分；缺少任一分数特征时返回 INVALID_VALUE。
func (m *WeightedSumModel) Predict(features map[string]float64) (float64, error) {
	if m.Weights == nil {
		return 0, core.NewDomainError(core.ModuleRank, core.ErrorCodeInvalidInput, "weighted model has no weights")
	}
	score := 0.0
	for _, f := range m.Weights.Fields {
		v, ok := features[f]
		if !ok {
			return 0, core.NewDomainError(core.ModuleRank, core.ErrorCodeInvalidValue, "missing feature", f)
		}
		score += v * m.Weights.Values[f]
	}
	return score, nil
}
