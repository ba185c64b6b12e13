package pipeline

import (
	"context"

	"github.com/rushteam/itemrank/core"
)

// Kind 用于标记 Node 类型，方便观测/编排（例如按阶段打日志）。
type Kind string

const (
	KindFilter      Kind = "filter"      // 过滤阶段：剔除不符合条件的行
	KindFeature     Kind = "feature"     // 特征阶段：归一化等列变换
	KindRank        Kind = "rank"        // 排序阶段：打分并排序
	KindReRank      Kind = "rerank"      // 重排阶段：在排序结果上截断/调整
	KindPostProcess Kind = "postprocess" // 后处理阶段
)

// Node 是 Pipeline 的最小可扩展单元，统一采用“输入表 -> 输出表”的形态。
//
// 约定：Node 不得修改传入的表，需要改动时先 Clone。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RankContext,
		tbl *core.Table,
	) (*core.Table, error)
}

// NodeBuilder 根据配置构建 Node，供配置驱动使用。
type NodeBuilder func(config map[string]interface{}) (Node, error)
