// Package runner 串起一次完整的排序运行：读取输入表、解析权重、构建并执行 Pipeline、交给各 Sink 输出。
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rushteam/itemrank/config"
	_ "github.com/rushteam/itemrank/config/builders"
	"github.com/rushteam/itemrank/core"
	"github.com/rushteam/itemrank/csvio"
	"github.com/rushteam/itemrank/filter"
	"github.com/rushteam/itemrank/pipeline"
	"github.com/rushteam/itemrank/rank"
	"github.com/rushteam/itemrank/sink"
	"github.com/rushteam/itemrank/weight"
)

// Loader 提供输入表。
type Loader func(ctx context.Context) (*core.Table, error)

// CSVLoader 从 CSV 文件读取输入表。
func CSVLoader(path, idField string) Loader {
	return func(context.Context) (*core.Table, error) {
		return csvio.ReadFile(path, idField)
	}
}

// Runner 执行一次排序。任何一步失败都不会调用 Sink，不产生部分输出。
type Runner struct {
	Config *core.RankConfig
	Loader Loader // 为 nil 时读取 Config.InputPath
	Sinks  []sink.Sink
	Logger *slog.Logger
}

// Run 返回排好序的完整结果表。
func (r *Runner) Run(ctx context.Context) (*core.Table, error) {
	cfg := r.Config
	if cfg == nil {
		cfg = core.DefaultRankConfig()
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	runID := uuid.New().String()
	logger = logger.With("run_id", runID)

	p, err := r.buildPipeline(cfg)
	if err != nil {
		return nil, err
	}
	p.Logger = logger

	load := r.Loader
	if load == nil {
		load = CSVLoader(cfg.InputPath, cfg.IDField)
	}
	tbl, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load input: %w", err)
	}
	logger.Info("input loaded", "source", cfg.InputPath, "rows", tbl.Len(), "columns", len(tbl.Columns))

	rctx := &core.RankContext{
		RunID:  runID,
		Source: cfg.InputPath,
		Params: map[string]any{"top": cfg.TopN, "run_id": runID},
	}
	ranked, err := p.Run(ctx, rctx, tbl)
	if err != nil {
		return nil, err
	}

	for _, s := range r.Sinks {
		if err := s.Write(ctx, rctx, ranked); err != nil {
			return nil, fmt.Errorf("sink %s: %w", s.Name(), err)
		}
		logger.Debug("sink done", "sink", s.Name(), "rows", ranked.Len())
	}
	return ranked, nil
}

// buildPipeline 组装 Pipeline：
//   - 未指定 PipelineFile 时为 rank.weighted，权重取自 Config.Weights
//   - 指定时按文件构建，Config.Weights 不再生效
//
// Config.Filter 非空时在末尾追加一个表达式过滤节点，此时综合分与特征均已可用。
func (r *Runner) buildPipeline(cfg *core.RankConfig) (*pipeline.Pipeline, error) {
	var p *pipeline.Pipeline
	if cfg.PipelineFile != "" {
		pc, err := pipeline.Load(cfg.PipelineFile)
		if err != nil {
			return nil, fmt.Errorf("load pipeline %s: %w", cfg.PipelineFile, err)
		}
		if err := config.ValidatePipelineConfig(pc); err != nil {
			return nil, err
		}
		if p, err = pc.BuildPipeline(config.DefaultFactory()); err != nil {
			return nil, err
		}
	} else {
		weights, err := weight.Parse(cfg.ScoreFields, cfg.Weights)
		if err != nil {
			return nil, err
		}
		p = &pipeline.Pipeline{Nodes: []pipeline.Node{&rank.WeightedNode{
			IDField:     cfg.IDField,
			Fields:      cfg.ScoreFields,
			Weights:     weights,
			Normalize:   cfg.Normalize,
			ScoreColumn: cfg.ScoreColumn,
		}}}
	}

	if cfg.Filter != "" {
		f, err := filter.NewExprFilter(cfg.Filter)
		if err != nil {
			return nil, err
		}
		p.Nodes = append(p.Nodes, &filter.FilterNode{Filters: []filter.Filter{f}})
	}
	return p, nil
}
