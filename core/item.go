package core

// Item 是表格中的一行，也是排序链路中的统一承载结构。
//
//   - ID: 标识列的值（不要求唯一）
//   - Fields: 该行全部原始单元格（列名 -> 文本）
//   - Features: 分数列的数值视图，参与加权求和
//   - Score: 加权综合分
//   - Labels: 解释/观测用标记
type Item struct {
	ID       string
	Score    float64
	Fields   map[string]string
	Features map[string]float64
	Labels   map[string]Label
}

func NewItem(id string) *Item {
	return &Item{
		ID:       id,
		Fields:   make(map[string]string),
		Features: make(map[string]float64),
		Labels:   make(map[string]Label),
	}
}

// Clone 深拷贝一行，节点处理前调用以保证不修改调用方数据。
func (it *Item) Clone() *Item {
	if it == nil {
		return nil
	}
	out := &Item{
		ID:       it.ID,
		Score:    it.Score,
		Fields:   make(map[string]string, len(it.Fields)),
		Features: make(map[string]float64, len(it.Features)),
		Labels:   make(map[string]Label, len(it.Labels)),
	}
	for k, v := range it.Fields {
		out.Fields[k] = v
	}
	for k, v := range it.Features {
		out.Features[k] = v
	}
	for k, v := range it.Labels {
		out.Labels[k] = v
	}
	return out
}

// PutLabel 写入 Label；若已存在同名 key，则按 MergeLabel 规则累积。
func (it *Item) PutLabel(key string, lbl Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}
