// Package itemrank 对表格中的候选条目按多个分数列的加权综合分排序。
//
// 设计要点：
// - Pipeline-first: 排序逻辑通过 Node 串联（Filter → Feature → Rank → ReRank）
// - Labels-first: 每行携带 labels（rank_model、normalized 等），便于解释与过滤
// - 不修改输入: Node 只读输入表，输出新表
package itemrank

import "github.com/rushteam/itemrank/pipeline"

// 轻量 facade：便于直接 import "itemrank" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindFilter      = pipeline.KindFilter
	KindFeature     = pipeline.KindFeature
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
