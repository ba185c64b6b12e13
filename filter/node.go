package filter

import (
	"context"
	"fmt"

	"github.com/rushteam/itemrank/core"
	"github.com/rushteam/itemrank/pipeline"
)

// FilterNode 是过滤 Node，可以组合多个过滤器。
// 任一过滤器返回 true，该行即被移除；过滤器出错时整个运行失败，不产生部分结果。
// 保留的行写入 label filtered（通过的过滤器名，多个以 '|' 连接）。
type FilterNode struct {
	Filters []Filter
}

func (n *FilterNode) Name() string {
	return "filter.node"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RankContext,
	tbl *core.Table,
) (*core.Table, error) {
	if len(n.Filters) == 0 || tbl.Len() == 0 {
		return tbl, nil
	}

	out := core.NewTable(tbl.Columns)
	out.Items = make([]*core.Item, 0, tbl.Len())

	for row, item := range tbl.Items {
		if item == nil {
			continue
		}

		drop := false
		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d (id %q): %w", f.Name(), row+1, item.ID, err)
			}
			if ok {
				drop = true
				break
			}
		}
		if drop {
			continue
		}

		kept := item.Clone()
		for _, f := range n.Filters {
			kept.PutLabel("filtered", core.Label{Value: f.Name(), Source: "filter"})
		}
		out.Items = append(out.Items, kept)
	}

	return out, nil
}
