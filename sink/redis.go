package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rushteam/itemrank/core"
)

// RedisSink 把结果写成排行榜：
//   - <Key>:        zset，member 为标识，score 为综合分
//   - <Key>:rows:   hash，field 为标识，value 为该行全部列的 JSON
//   - <Key>:meta:   hash，run_id / source / rows
//
// 写入前先删除这些 key，保证排行榜只反映本次运行。
// 标识重复时后写入的行覆盖前者（zset/hash 以标识为主键）。
type RedisSink struct {
	Store core.KeyValueStore
	Key   string
}

func (s *RedisSink) Name() string { return "redis" }

// RowsKey 返回存放行数据的 hash key。
func (s *RedisSink) RowsKey() string { return s.Key + ":rows" }

// MetaKey 返回存放运行信息的 hash key。
func (s *RedisSink) MetaKey() string { return s.Key + ":meta" }

// Write 在一个事务中清空旧 key 并写入全部数据；失败时排行榜保持原样。
func (s *RedisSink) Write(ctx context.Context, rctx *core.RankContext, ranked *core.Table) error {
	rows := make(map[string][]byte, ranked.Len())
	for _, it := range ranked.Items {
		if it == nil {
			continue
		}
		row, err := json.Marshal(it.Fields)
		if err != nil {
			return err
		}
		rows[it.ID] = row
	}

	meta := map[string]string{"rows": strconv.Itoa(ranked.Len())}
	if rctx != nil {
		meta["run_id"] = rctx.RunID
		meta["source"] = rctx.Source
	}

	err := s.Store.Atomic(ctx, func(tx core.KeyValueTx) error {
		tx.Delete(s.Key)
		tx.Delete(s.RowsKey())
		tx.Delete(s.MetaKey())
		for _, it := range ranked.Items {
			if it == nil {
				continue
			}
			tx.ZAdd(s.Key, it.Score, it.ID)
			tx.HSet(s.RowsKey(), it.ID, rows[it.ID])
		}
		for field, value := range meta {
			tx.HSet(s.MetaKey(), field, []byte(value))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: write leaderboard %s: %w", s.Store.Name(), s.Key, err)
	}
	return nil
}
