package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rushteam/itemrank/core"
)

// Pipeline 把排序逻辑拆成可组合的 Node 链，按顺序同步执行。
type Pipeline struct {
	Nodes  []Node
	Logger *slog.Logger
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RankContext,
	tbl *core.Table,
) (*core.Table, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cur := tbl
	for _, node := range p.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", node.Name(), err)
		}
		logger.Debug("node done",
			"node", node.Name(),
			"kind", string(node.Kind()),
			"rows_in", cur.Len(),
			"rows_out", next.Len())
		cur = next
	}
	return cur, nil
}
