package core

// Label 是排序链路中的可解释标记：记录某一行经过了哪些处理。
// Value 与 Source 的语义由节点自定义；这里只提供合并规则。
type Label struct {
	Value  string `json:"value"`
	Source string `json:"source"` // rank / feature / filter ...
}

// MergeLabel 合并同名 Label，保留历史：
// - Value: 以 '|' 累积
// - Source: 以 ',' 累积
func MergeLabel(existing Label, incoming Label) Label {
	if existing.Value == "" {
		return incoming
	}
	if incoming.Value == "" {
		return existing
	}

	merged := existing
	merged.Value = existing.Value + "|" + incoming.Value
	switch {
	case existing.Source == "":
		merged.Source = incoming.Source
	case incoming.Source == "":
		merged.Source = existing.Source
	default:
		merged.Source = existing.Source + "," + incoming.Source
	}
	return merged
}
