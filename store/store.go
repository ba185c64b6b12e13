// Package store 提供 core.KeyValueStore 的实现：
//
//	var kv core.KeyValueStore = store.NewMemoryStore()
//	kv, err := store.NewRedisStore(ctx, "127.0.0.1:6379", 0)
package store
