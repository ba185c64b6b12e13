// Command itemrank 读取 CSV 中的候选条目，按加权综合分排序，打印 Top N 并保存完整结果。
//
//	itemrank --input data/sample_data.csv --weights "score_quality=2,score_cost=1,score_reliability=1" --normalize
//
// 配置优先级：命令行参数 > 环境变量（ITEMRANK_*） > --config 指定的 YAML > 默认值。
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rushteam/itemrank/config"
	"github.com/rushteam/itemrank/core"
	"github.com/rushteam/itemrank/pkg/conv"
	"github.com/rushteam/itemrank/runner"
	"github.com/rushteam/itemrank/sink"
	"github.com/rushteam/itemrank/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := parseConfig(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	logger := newLogger(stderr, cfg.LogLevel)
	if errs := cfg.Validate(); len(errs) > 0 {
		fmt.Fprintf(stderr, "error: %v\n", errors.Join(errs...))
		return 1
	}

	output, err := filepath.Abs(cfg.OutputPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: resolve output path: %v\n", err)
		return 1
	}

	var kv core.KeyValueStore
	if cfg.RedisAddr != "" {
		rs, err := store.NewRedisStore(ctx, cfg.RedisAddr, 0)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		defer rs.Close()
		kv = rs
	}
	sinks := buildSinks(cfg, output, stdout, kv)

	r := &runner.Runner{Config: cfg, Sinks: sinks, Logger: logger}
	ranked, err := r.Run(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	logger.Info("ranking finished", "rows", ranked.Len(), "output", output)
	return 0
}

// buildSinks 决定输出顺序：Redis 排行榜（事务写入）在前，CSV 文件最后，
// 任一前置输出失败时不会留下输出文件。
func buildSinks(cfg *core.RankConfig, output string, stdout io.Writer, kv core.KeyValueStore) []sink.Sink {
	var sinks []sink.Sink
	if kv != nil {
		sinks = append(sinks, &sink.RedisSink{Store: kv, Key: cfg.RedisKey})
	}
	return append(sinks,
		&sink.ConsoleSink{Out: stdout, TopN: cfg.TopN, IDField: cfg.IDField, ScoreColumn: cfg.ScoreColumn},
		&sink.CSVSink{Path: output, Out: stdout},
	)
}

// parseConfig 先解析命令行，再加载 --config 与环境变量，最后只用显式给出的参数覆盖。
func parseConfig(args []string, stderr io.Writer) (*core.RankConfig, error) {
	def := core.DefaultRankConfig()
	fs := flag.NewFlagSet("itemrank", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		settings    = fs.String("config", "", "settings YAML file")
		input       = fs.String("input", def.InputPath, "input CSV path")
		output      = fs.String("output", def.OutputPath, "output CSV path")
		weights     = fs.String("weights", "", `weights, e.g. "score_quality=2,score_cost=1,score_reliability=1" (default: equal)`)
		normalize   = fs.Bool("normalize", false, "min-max normalize score fields before weighting")
		top         = fs.Int("top", def.TopN, "number of rows to print")
		idField     = fs.String("id-field", def.IDField, "identifier column")
		scoreFields = fs.String("score-fields", strings.Join(def.ScoreFields, ","), "comma separated score columns")
		scoreColumn = fs.String("score-column", def.ScoreColumn, "composite score column name")
		filterExpr  = fs.String("filter", "", "CEL expression; rows evaluating to false are dropped after scoring")
		pipelineF   = fs.String("pipeline", "", "pipeline YAML/JSON file (overrides --weights/--normalize)")
		redisAddr   = fs.String("redis-addr", "", "redis address for the leaderboard sink")
		redisKey    = fs.String("redis-key", "", "redis key for the leaderboard sink")
		logLevel    = fs.String("log-level", def.LogLevel, "debug, info, warn or error")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg, err := config.LoadSettings(*settings)
	if err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.InputPath = *input
		case "output":
			cfg.OutputPath = *output
		case "weights":
			cfg.Weights = *weights
		case "normalize":
			cfg.Normalize = *normalize
		case "top":
			cfg.TopN = *top
		case "id-field":
			cfg.IDField = *idField
		case "score-fields":
			cfg.ScoreFields = conv.SplitList(*scoreFields)
		case "score-column":
			cfg.ScoreColumn = *scoreColumn
		case "filter":
			cfg.Filter = *filterExpr
		case "pipeline":
			cfg.PipelineFile = *pipelineF
		case "redis-addr":
			cfg.RedisAddr = *redisAddr
		case "redis-key":
			cfg.RedisKey = *redisKey
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	return cfg, nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
