package core

import "strings"

// 默认配置。这些值只作为 DefaultRankConfig 的初始值，运行时一律通过 RankConfig 传递。
const (
	DefaultIDField     = "item_id"
	DefaultScoreColumn = "final_score"
	DefaultInputPath   = "data/sample_data.csv"
	DefaultOutputPath  = "ranked_output.csv"
	DefaultTopN        = 10
)

// DefaultScoreFields 返回默认的分数列（顺序即加权求和的累加顺序）。
func DefaultScoreFields() []string {
	return []string{"score_quality", "score_cost", "score_reliability"}
}

// RankConfig 是一次排序运行的完整配置。
type RankConfig struct {
	InputPath   string   `koanf:"input" yaml:"input"`
	OutputPath  string   `koanf:"output" yaml:"output"`
	IDField     string   `koanf:"id_field" yaml:"id_field"`
	ScoreFields []string `koanf:"score_fields" yaml:"score_fields"`
	ScoreColumn string   `koanf:"score_column" yaml:"score_column"`

	// Weights 是权重描述，如 "score_quality=2,score_cost=1,score_reliability=1"；为空表示等权
	Weights   string `koanf:"weights" yaml:"weights"`
	Normalize bool   `koanf:"normalize" yaml:"normalize"`
	TopN      int    `koanf:"top" yaml:"top"`

	// Filter 是可选的 CEL 过滤表达式，结果为 true 的行保留
	Filter string `koanf:"filter" yaml:"filter"`

	// PipelineFile 非空时按 YAML 定义构建 Pipeline，忽略 Weights/Normalize/Filter
	PipelineFile string `koanf:"pipeline" yaml:"pipeline"`

	// RedisAddr/RedisKey 同时非空时，结果额外写入 Redis 排行榜
	RedisAddr string `koanf:"redis_addr" yaml:"redis_addr"`
	RedisKey  string `koanf:"redis_key" yaml:"redis_key"`

	LogLevel string `koanf:"log_level" yaml:"log_level"`
}

// DefaultRankConfig 返回带默认值的配置。
func DefaultRankConfig() *RankConfig {
	return &RankConfig{
		InputPath:   DefaultInputPath,
		OutputPath:  DefaultOutputPath,
		IDField:     DefaultIDField,
		ScoreFields: DefaultScoreFields(),
		ScoreColumn: DefaultScoreColumn,
		TopN:        DefaultTopN,
		LogLevel:    "info",
	}
}

// Validate 校验配置，返回全部问题（而不是第一个）。
func (c *RankConfig) Validate() []error {
	var errs []error
	if strings.TrimSpace(c.IDField) == "" {
		errs = append(errs, NewDomainError(ModuleConfig, ErrorCodeInvalidInput, "id field must not be empty"))
	}
	if len(c.ScoreFields) == 0 {
		errs = append(errs, NewDomainError(ModuleConfig, ErrorCodeInvalidInput, "at least one score field is required"))
	}
	seen := make(map[string]bool, len(c.ScoreFields))
	for _, f := range c.ScoreFields {
		if strings.TrimSpace(f) == "" {
			errs = append(errs, NewDomainError(ModuleConfig, ErrorCodeInvalidInput, "score field names must not be empty"))
			continue
		}
		if seen[f] {
			errs = append(errs, NewDomainError(ModuleConfig, ErrorCodeInvalidInput, "duplicate score field", f))
		}
		seen[f] = true
	}
	if strings.TrimSpace(c.ScoreColumn) == "" {
		errs = append(errs, NewDomainError(ModuleConfig, ErrorCodeInvalidInput, "score column must not be empty"))
	}
	if seen[c.ScoreColumn] || c.ScoreColumn == c.IDField {
		errs = append(errs, NewDomainError(ModuleConfig, ErrorCodeInvalidInput, "score column collides with an input field", c.ScoreColumn))
	}
	if c.TopN < 0 {
		errs = append(errs, NewDomainError(ModuleConfig, ErrorCodeInvalidInput, "top must be >= 0"))
	}
	if (c.RedisAddr == "") != (c.RedisKey == "") {
		errs = append(errs, NewDomainError(ModuleConfig, ErrorCodeInvalidInput, "redis_addr and redis_key must be set together"))
	}
	return errs
}
