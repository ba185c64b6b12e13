package core

// RankContext 承载一次排序运行的上下文，贯穿整个 Pipeline 透传。
type RankContext struct {
	// RunID 唯一标识一次运行，写入日志与 Redis 排行榜
	RunID string

	// Source 是输入表的来源（通常为 CSV 路径），用于日志与解释
	Source string

	// Labels 是运行级标签，可驱动 Pipeline 行为
	Labels map[string]Label

	// Params 运行级参数，可在过滤表达式中以 params.xxx 访问
	Params map[string]any
}

// PutLabel 写入运行级 Label。
func (rctx *RankContext) PutLabel(key string, lbl Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取运行级 Label。
func (rctx *RankContext) GetLabel(key string) (Label, bool) {
	if rctx == nil || rctx.Labels == nil {
		return Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
