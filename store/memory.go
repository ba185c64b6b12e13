package store

import (
	"context"
	"sort"
	"sync"

	"github.com/rushteam/itemrank/core"
)

// MemoryStore 是内存实现的 KeyValueStore，与 RedisStore 并列的后端：
// 无需 Redis 即可驱动 RedisSink（测试、本地演示）。进程退出后数据丢失。
type MemoryStore struct {
	mu     sync.RWMutex
	zsets  map[string]map[string]float64 // zset key -> member -> score
	hashes map[string]map[string][]byte  // hash key -> field -> value
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		zsets:  make(map[string]map[string]float64),
		hashes: make(map[string]map[string][]byte),
	}
}

func (m *MemoryStore) Name() string { return "memory" }

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.zsets, key)
	delete(m.hashes, key)
	return nil
}

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) ZAdd(_ context.Context, key string, score float64, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.zsets[key] == nil {
		m.zsets[key] = make(map[string]float64)
	}
	m.zsets[key][member] = score
	return nil
}

// ZRange 与 Redis ZREVRANGE 语义一致：分数降序，同分按成员字典序降序；
// 负数下标从末尾计数。
func (m *MemoryStore) ZRange(_ context.Context, key string, start, stop int64) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	zset, ok := m.zsets[key]
	if !ok || len(zset) == 0 {
		return nil, nil
	}

	type pair struct {
		member string
		score  float64
	}
	pairs := make([]pair, 0, len(zset))
	for member, s := range zset {
		pairs = append(pairs, pair{member: member, score: s})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].score != pairs[j].score {
			return pairs[i].score > pairs[j].score
		}
		return pairs[i].member > pairs[j].member
	})

	n := int64(len(pairs))
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop {
		return nil, nil
	}

	result := make([]string, 0, stop-start+1)
	for i := start; i <= stop; i++ {
		result = append(result, pairs[i].member)
	}
	return result, nil
}

func (m *MemoryStore) ZScore(_ context.Context, key string, member string) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	score, ok := m.zsets[key][member]
	if !ok {
		return 0, core.ErrStoreNotFound
	}
	return score, nil
}

func (m *MemoryStore) HSet(_ context.Context, key, field string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.hashes[key] == nil {
		m.hashes[key] = make(map[string][]byte)
	}
	m.hashes[key][field] = value
	return nil
}

func (m *MemoryStore) HGetAll(_ context.Context, key string) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string][]byte, len(m.hashes[key]))
	for k, v := range m.hashes[key] {
		result[k] = v
	}
	return result, nil
}

// Atomic 先收集 fn 排入的操作，fn 成功后在同一把锁内一次性应用。
func (m *MemoryStore) Atomic(_ context.Context, fn func(tx core.KeyValueTx) error) error {
	tx := &memoryTx{}
	if err := fn(tx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, op := range tx.ops {
		op(m)
	}
	return nil
}

// memoryTx 的每个操作在持有 MemoryStore 写锁时执行。
type memoryTx struct {
	ops []func(m *MemoryStore)
}

func (t *memoryTx) Delete(key string) {
	t.ops = append(t.ops, func(m *MemoryStore) {
		delete(m.zsets, key)
		delete(m.hashes, key)
	})
}

func (t *memoryTx) ZAdd(key string, score float64, member string) {
	t.ops = append(t.ops, func(m *MemoryStore) {
		if m.zsets[key] == nil {
			m.zsets[key] = make(map[string]float64)
		}
		m.zsets[key][member] = score
	})
}

func (t *memoryTx) HSet(key, field string, value []byte) {
	t.ops = append(t.ops, func(m *MemoryStore) {
		if m.hashes[key] == nil {
			m.hashes[key] = make(map[string][]byte)
		}
		m.hashes[key][field] = value
	})
}

var _ core.KeyValueStore = (*MemoryStore)(nil)
