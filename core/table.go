package core

import (
	"math"
	"strconv"
	"strings"
)

// Table 是一次排序运行中流转的数据：列顺序（schema）+ 行顺序。
// 所有行共享同一组列；Table 只在一次运行内存在，不做持久化。
type Table struct {
	Columns []string
	Items   []*Item
}

func NewTable(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Items)
}

// Clone 深拷贝整张表（列与每一行）。
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := NewTable(t.Columns)
	out.Items = make([]*Item, 0, len(t.Items))
	for _, it := range t.Items {
		out.Items = append(out.Items, it.Clone())
	}
	return out
}

// HasColumn 判断列是否存在于 schema 中。
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// MissingColumns 按给定顺序返回所有不存在的列（不是只返回第一个）。
func (t *Table) MissingColumns(names ...string) []string {
	var missing []string
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		if !t.HasColumn(n) {
			missing = append(missing, n)
		}
	}
	return missing
}

// EnsureColumn 在 schema 末尾追加列（已存在则不变）。
func (t *Table) EnsureColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// BindFeatures 把指定列的文本解析为数值写入 Item.Features。
// 任一单元格为空、不可解析或非有限值时返回 INVALID_VALUE 错误。
// 会修改表中的行，调用方应先 Clone。
func (t *Table) BindFeatures(module string, fields ...string) error {
	for row, it := range t.Items {
		if it == nil {
			continue
		}
		if it.Features == nil {
			it.Features = make(map[string]float64, len(fields))
		}
		for _, f := range fields {
			raw := strings.TrimSpace(it.Fields[f])
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return Errorf(module, ErrorCodeInvalidValue,
					"row %d (id %q): column %q has non-numeric value %q", row+1, it.ID, f, raw)
			}
			it.Features[f] = v
		}
	}
	return nil
}

// FormatFloat 统一的数值输出格式：最短可往返表示。
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
