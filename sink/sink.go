// Package sink 定义排序结果的输出端：CSV 文件、控制台摘要、Redis 排行榜。
package sink

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rushteam/itemrank/core"
	"github.com/rushteam/itemrank/csvio"
	"github.com/rushteam/itemrank/rerank"
)

// Sink 接收完整的排序结果表。Sink 不得修改传入的表。
type Sink interface {
	Name() string
	Write(ctx context.Context, rctx *core.RankContext, ranked *core.Table) error
}

// ConsoleSink 打印前 TopN 行的标识与综合分。
type ConsoleSink struct {
	Out         io.Writer
	TopN        int
	IDField     string
	ScoreColumn string
}

func (s *ConsoleSink) Name() string { return "console" }

func (s *ConsoleSink) Write(ctx context.Context, rctx *core.RankContext, ranked *core.Table) error {
	top, err := (&rerank.TopNNode{N: s.TopN}).Process(ctx, rctx, ranked)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprint(s.Out, "\nTop ranked items:\n\n"); err != nil {
		return err
	}
	return csvio.PrintSummary(s.Out, top, s.IDField, s.ScoreColumn)
}

// CSVSink 把完整结果写入 Path，成功后向 Out（可选）报告绝对路径。
type CSVSink struct {
	Path string
	Out  io.Writer
}

func (s *CSVSink) Name() string { return "csv" }

func (s *CSVSink) Write(_ context.Context, _ *core.RankContext, ranked *core.Table) error {
	abs, err := filepath.Abs(s.Path)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	if err := csvio.WriteFile(abs, ranked); err != nil {
		return err
	}
	if s.Out != nil {
		fmt.Fprintf(s.Out, "\nSaved full ranked results to: %s\n\n", abs)
	}
	return nil
}
