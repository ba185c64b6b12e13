// Package weight 解析并归一化分数列的权重描述。
//
// 权重描述形如 "score_quality=2,score_cost=1,score_reliability=1"：
//   - 逗号分隔的 field=number 对，字段名与数值两侧空白忽略，空段忽略
//   - 每个分数列必须出现；不在分数列集合中的多余条目被忽略（不参与求和）
//   - 分数列权重之和必须 > 0，结果按该和归一化，保证权重和为 1
//
// 未给出描述时使用等权 1/N。
package weight

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/rushteam/itemrank/core"
)

// Tolerance 是权重和为 1 的浮点容差。
const Tolerance = 1e-9

// Map 是分数列到权重的映射；Fields 保持声明顺序，决定加权求和的累加顺序。
type Map struct {
	Fields []string
	Values map[string]float64
}

// Get 返回字段权重，不存在时为 0。
func (m *Map) Get(field string) float64 {
	if m == nil {
		return 0
	}
	return m.Values[field]
}

// Sum 按声明顺序累加全部权重。
func (m *Map) Sum() float64 {
	if m == nil {
		return 0
	}
	sum := 0.0
	for _, f := range m.Fields {
		sum += m.Values[f]
	}
	return sum
}

// String 输出可再次被 Parse 解析的描述。
func (m *Map) String() string {
	if m == nil {
		return ""
	}
	parts := make([]string, 0, len(m.Fields))
	for _, f := range m.Fields {
		parts = append(parts, f+"="+strconv.FormatFloat(m.Values[f], 'g', -1, 64))
	}
	return strings.Join(parts, ",")
}

// Equal 为每个字段分配 1/len(fields) 的权重。
func Equal(fields []string) (*Map, error) {
	if len(fields) == 0 {
		return nil, core.NewDomainError(core.ModuleWeight, core.ErrorCodeInvalidInput, "no score fields configured")
	}
	w := 1.0 / float64(len(fields))
	m := &Map{
		Fields: append([]string(nil), fields...),
		Values: make(map[string]float64, len(fields)),
	}
	for _, f := range fields {
		m.Values[f] = w
	}
	return m, nil
}

// Parse 解析权重描述；spec 为空串时等价于 Equal(fields)。
//
// 错误：
//   - FORMAT_ERROR: 某段缺少 '='，或数值不可解析/非有限
//   - MISSING_FIELD: 某个分数列没有权重（列出全部缺失项）
//   - NON_POSITIVE_SUM: 分数列权重之和 <= 0
func Parse(fields []string, spec string) (*Map, error) {
	if spec == "" {
		return Equal(fields)
	}
	if len(fields) == 0 {
		return nil, core.NewDomainError(core.ModuleWeight, core.ErrorCodeInvalidInput, "no score fields configured")
	}

	parsed, err := parsePairs(spec)
	if err != nil {
		return nil, err
	}

	required := make(map[string]bool, len(fields))
	var missing []string
	for _, f := range fields {
		required[f] = true
		if _, ok := parsed[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, core.NewDomainError(core.ModuleWeight, core.ErrorCodeMissingField,
			"missing weights for score fields", missing...)
	}

	for k := range parsed {
		if !required[k] {
			slog.Debug("ignoring weight for field outside the score set", "field", k)
		}
	}

	total := 0.0
	for _, f := range fields {
		total += parsed[f]
	}
	if !(total > 0) {
		return nil, core.Errorf(core.ModuleWeight, core.ErrorCodeNonPositiveSum,
			"sum of weights must be > 0, got %s", strconv.FormatFloat(total, 'g', -1, 64))
	}

	m := &Map{
		Fields: append([]string(nil), fields...),
		Values: make(map[string]float64, len(fields)),
	}
	for _, f := range fields {
		m.Values[f] = parsed[f] / total
	}
	return m, nil
}

// parsePairs 把描述拆成 field -> 原始权重；同名字段后者覆盖前者。
func parsePairs(spec string) (map[string]float64, error) {
	out := make(map[string]float64)
	for _, seg := range strings.Split(spec, ",") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		name, raw, ok := strings.Cut(seg, "=")
		if !ok {
			return nil, formatError(seg, "use field=weight")
		}
		name = strings.TrimSpace(name)
		raw = strings.TrimSpace(raw)
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, formatError(seg, fmt.Sprintf("%q is not a number", raw))
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, formatError(seg, "weight must be finite")
		}
		out[name] = v
	}
	return out, nil
}

func formatError(seg, reason string) error {
	return core.Errorf(core.ModuleWeight, core.ErrorCodeFormat, "invalid weights format near %q: %s", seg, reason)
}
