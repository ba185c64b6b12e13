package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/itemrank/core"
	"github.com/rushteam/itemrank/store"
)

func rankedTable(n int) *core.Table {
	tbl := core.NewTable([]string{"item_id", "final_score"})
	for i := 0; i < n; i++ {
		id := "item" + strconv.Itoa(i)
		it := core.NewItem(id)
		it.Score = float64(n-i) / float64(n)
		it.Fields["item_id"] = id
		it.Fields["final_score"] = core.FormatFloat(it.Score)
		tbl.Items = append(tbl.Items, it)
	}
	return tbl
}

func TestConsoleSink_TopN(t *testing.T) {
	var buf bytes.Buffer
	s := &ConsoleSink{Out: &buf, TopN: 10, IDField: "item_id", ScoreColumn: "final_score"}
	tbl := rankedTable(15)

	require.NoError(t, s.Write(context.Background(), nil, tbl))

	out := buf.String()
	assert.Contains(t, out, "Top ranked items:")
	assert.Contains(t, out, "item9")
	assert.NotContains(t, out, "item10")
	assert.Equal(t, 15, tbl.Len())
}

func TestCSVSink_Write(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "ranked.csv")
	s := &CSVSink{Path: path, Out: &buf}

	require.NoError(t, s.Write(context.Background(), nil, rankedTable(3)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "item0,1", lines[1])
	assert.Contains(t, buf.String(), "Saved full ranked results to: "+path)
}

func TestRedisSink_Write(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	s := &RedisSink{Store: kv, Key: "rank:test"}

	// 旧数据应被清除
	require.NoError(t, kv.ZAdd(ctx, "rank:test", 99, "stale"))

	rctx := &core.RankContext{RunID: "run-1", Source: "in.csv"}
	require.NoError(t, s.Write(ctx, rctx, rankedTable(3)))

	members, err := kv.ZRange(ctx, "rank:test", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"item0", "item1", "item2"}, members)

	score, err := kv.ZScore(ctx, "rank:test", "item1")
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3, score, 1e-9)

	_, err = kv.ZScore(ctx, "rank:test", "stale")
	assert.True(t, core.IsStoreNotFound(err))

	rows, err := kv.HGetAll(ctx, s.RowsKey())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	var fields map[string]string
	require.NoError(t, json.Unmarshal(rows["item2"], &fields))
	assert.Equal(t, "item2", fields["item_id"])

	meta, err := kv.HGetAll(ctx, s.MetaKey())
	require.NoError(t, err)
	assert.Equal(t, "run-1", string(meta["run_id"]))
	assert.Equal(t, "3", string(meta["rows"]))
}
