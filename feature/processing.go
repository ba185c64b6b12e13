package feature

import (
	"math"

	"github.com/rushteam/itemrank/core"
)

// MinMaxNormalizer Min-Max 归一化
// 公式: x' = (x - min) / (max - min)
// 特点: 将值缩放到 [0, 1] 区间；min == max 时该列全部为 0
type MinMaxNormalizer struct {
	Min map[string]float64 // 特征最小值
	Max map[string]float64 // 特征最大值
}

// NewMinMaxNormalizer 创建 Min-Max 归一化器
func NewMinMaxNormalizer(min, max map[string]float64) *MinMaxNormalizer {
	return &MinMaxNormalizer{
		Min: min,
		Max: max,
	}
}

// FitMinMax 根据表中各列的观测值拟合归一化器（单次遍历取最小/最大值）。
// 任一列不在表的 schema 中时返回 FIELD_NOT_FOUND（列出全部缺失列）。
// 表中的行必须已通过 BindFeatures 填充这些列。
func FitMinMax(tbl *core.Table, fields []string) (*MinMaxNormalizer, error) {
	if missing := tbl.MissingColumns(fields...); len(missing) > 0 {
		return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeFieldNotFound,
			"cannot normalize columns absent from the table", missing...)
	}

	n := NewMinMaxNormalizer(make(map[string]float64, len(fields)), make(map[string]float64, len(fields)))
	for _, f := range fields {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, it := range tbl.Items {
			if it == nil {
				continue
			}
			v := it.Features[f]
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		if lo > hi {
			lo, hi = 0, 0
		}
		n.Min[f] = lo
		n.Max[f] = hi
	}
	return n, nil
}

// NormalizeValueWithKey 归一化单个值（指定特征名），结果限定在 [0,1]。
// max-min 超出 float64 范围时先各自减半再相除。
func (n *MinMaxNormalizer) NormalizeValueWithKey(key string, value float64) float64 {
	min := n.Min[key]
	max := n.Max[key]
	if max == min {
		return 0
	}
	var v float64
	if span := max - min; math.IsInf(span, 0) {
		v = (value/2 - min/2) / (max/2 - min/2)
	} else {
		v = (value - min) / span
	}
	return math.Max(0, math.Min(1, v))
}

// NormalizeTable 返回一张新表：fields 中的列被缩放到 [0,1]，其余列原样保留。
// 不修改输入表。Features 与 Fields（文本）同步更新，输出 CSV 时写出的是归一化后的值。
func NormalizeTable(tbl *core.Table, fields []string) (*core.Table, error) {
	out := tbl.Clone()
	if missing := out.MissingColumns(fields...); len(missing) > 0 {
		return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeFieldNotFound,
			"cannot normalize columns absent from the table", missing...)
	}
	if err := out.BindFeatures(core.ModuleFeature, fields...); err != nil {
		return nil, err
	}

	n, err := FitMinMax(out, fields)
	if err != nil {
		return nil, err
	}
	for _, it := range out.Items {
		if it == nil {
			continue
		}
		for _, f := range fields {
			v := n.NormalizeValueWithKey(f, it.Features[f])
			it.Features[f] = v
			it.Fields[f] = core.FormatFloat(v)
		}
		it.PutLabel("normalized", core.Label{Value: "minmax", Source: "feature"})
	}
	return out, nil
}
