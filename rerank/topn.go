package rerank

import (
	"context"

	"github.com/rushteam/itemrank/core"
	"github.com/rushteam/itemrank/pipeline"
)

// TopNNode 是 Top-N 截断节点，在排序节点之后截取前 N 行。
// 控制台摘要使用它取前 10 行；完整结果不经过该节点。
//
// 示例：
//
//	p := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        &rank.WeightedNode{...},  // 排序
//	        &rerank.TopNNode{N: 10},  // 截取 Top 10
//	    },
//	}
type TopNNode struct {
	// N 要保留的行数
	// 如果 N <= 0，则返回所有行（不截断）
	// 如果 N > 行数，则返回所有行
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RankContext,
	tbl *core.Table,
) (*core.Table, error) {
	if n.N <= 0 || tbl.Len() <= n.N {
		return tbl, nil
	}

	// 只截断行切片，行本身共享（截断不修改行内容）
	out := core.NewTable(tbl.Columns)
	out.Items = append(out.Items, tbl.Items[:n.N]...)
	return out, nil
}
