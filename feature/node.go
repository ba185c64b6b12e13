package feature

import (
	"context"

	"github.com/rushteam/itemrank/core"
	"github.com/rushteam/itemrank/pipeline"
)

// MinMaxNode 是独立的归一化 Node，用于配置驱动的 Pipeline：
// 在 rank 之前把 Fields 缩放到 [0,1]。
type MinMaxNode struct {
	Fields []string
}

func (n *MinMaxNode) Name() string        { return "feature.minmax" }
func (n *MinMaxNode) Kind() pipeline.Kind { return pipeline.KindFeature }

func (n *MinMaxNode) Process(
	_ context.Context,
	_ *core.RankContext,
	tbl *core.Table,
) (*core.Table, error) {
	if len(n.Fields) == 0 {
		return tbl, nil
	}
	return NormalizeTable(tbl, n.Fields)
}
