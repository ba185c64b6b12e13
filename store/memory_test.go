package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/itemrank/core"
)

func TestMemoryStore_ZRange(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	for member, score := range map[string]float64{"a": 0.1, "b": 0.9, "c": 0.5, "d": 0.5} {
		require.NoError(t, m.ZAdd(ctx, "k", score, member))
	}

	tests := []struct {
		name        string
		start, stop int64
		want        []string
	}{
		{"all", 0, -1, []string{"b", "d", "c", "a"}},
		{"head", 0, 1, []string{"b", "d"}},
		{"tail", -2, -1, []string{"c", "a"}},
		{"out of range", 10, 20, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.ZRange(ctx, "k", tt.start, tt.stop)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMemoryStore_DeleteAndNotFound(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	require.NoError(t, m.ZAdd(ctx, "k", 1, "a"))
	require.NoError(t, m.HSet(ctx, "h", "a", []byte("x")))

	require.NoError(t, m.Delete(ctx, "k"))
	require.NoError(t, m.Delete(ctx, "h"))
	require.NoError(t, m.Delete(ctx, "never-existed"))

	_, err := m.ZScore(ctx, "k", "a")
	assert.True(t, core.IsStoreNotFound(err))

	rows, err := m.HGetAll(ctx, "h")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMemoryStore_Atomic(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	require.NoError(t, m.ZAdd(ctx, "k", 1, "old"))

	err := m.Atomic(ctx, func(tx core.KeyValueTx) error {
		tx.Delete("k")
		tx.ZAdd("k", 2, "new")
		return errors.New("abort")
	})
	require.Error(t, err)
	members, err := m.ZRange(ctx, "k", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, members, "aborted transaction must not apply")

	require.NoError(t, m.Atomic(ctx, func(tx core.KeyValueTx) error {
		tx.Delete("k")
		tx.ZAdd("k", 2, "new")
		tx.HSet("h", "new", []byte("row"))
		return nil
	}))
	members, err = m.ZRange(ctx, "k", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, members)
	rows, err := m.HGetAll(ctx, "h")
	require.NoError(t, err)
	assert.Equal(t, []byte("row"), rows["new"])
}
