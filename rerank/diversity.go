package rerank

import (
	"context"

	"github.com/rushteam/itemrank/core"
	"github.com/rushteam/itemrank/pipeline"
)

// Diversity 是按分组打散的 ReRank：同一分组最多保留 MaxPerGroup 行（按当前顺序取前几行）。
// 分组来源优先级：
// - label[Field].Value
// - fields[Field]
//
// 取不到分组值的行原样保留。
type Diversity struct {
	Field       string // 默认 "category"
	MaxPerGroup int    // <= 0 时按 1 处理
}

func (n *Diversity) Name() string {
	return "rerank.diversity"
}

func (n *Diversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *Diversity) Process(
	_ context.Context,
	_ *core.RankContext,
	tbl *core.Table,
) (*core.Table, error) {
	if tbl.Len() == 0 {
		return tbl, nil
	}

	key := n.Field
	if key == "" {
		key = "category"
	}
	limit := n.MaxPerGroup
	if limit <= 0 {
		limit = 1
	}

	seen := make(map[string]int, 32)
	out := core.NewTable(tbl.Columns)
	out.Items = make([]*core.Item, 0, tbl.Len())

	for _, it := range tbl.Items {
		if it == nil {
			continue
		}

		group := ""
		if lbl, ok := it.Labels[key]; ok {
			group = lbl.Value
		}
		if group == "" {
			group = it.Fields[key]
		}

		if group == "" {
			out.Items = append(out.Items, it)
			continue
		}
		if seen[group] >= limit {
			continue
		}
		seen[group]++
		out.Items = append(out.Items, it)
	}

	return out, nil
}
