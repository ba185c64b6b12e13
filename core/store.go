package core

import "context"

// Store 是存储的领域接口，由 store 包实现（MemoryStore / RedisStore）。
// 领域层只依赖接口，不依赖具体后端。
type Store interface {
	// Name 返回存储后端名称（用于日志）
	Name() string

	// Delete 删除 key（不存在时不报错）
	Delete(ctx context.Context, key string) error

	// Close 关闭连接/释放资源
	Close() error
}

// KeyValueStore 在 Store 之上提供有序集合与哈希操作，
// 用于把排序结果写成排行榜（zset: id -> score）并附带每行原始数据（hash: id -> row）。
type KeyValueStore interface {
	Store

	// ZAdd 向有序集合添加成员
	ZAdd(ctx context.Context, key string, score float64, member string) error

	// ZRange 按分数降序返回 [start, stop] 区间的成员
	ZRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// ZScore 获取成员的分数
	ZScore(ctx context.Context, key string, member string) (float64, error)

	// HSet 写入 Hash 字段
	HSet(ctx context.Context, key, field string, value []byte) error

	// HGetAll 读取整个 Hash
	HGetAll(ctx context.Context, key string) (map[string][]byte, error)

	// Atomic 在一个事务中执行 fn 排入的写操作：fn 返回错误或提交失败时一条都不生效。
	Atomic(ctx context.Context, fn func(tx KeyValueTx) error) error
}

// KeyValueTx 收集一个事务内的写操作，提交前不可见。
type KeyValueTx interface {
	Delete(key string)
	ZAdd(key string, score float64, member string)
	HSet(key, field string, value []byte)
}

// ErrStoreNotFound 表示 key 或成员不存在
var ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: key not found")

// IsStoreNotFound 检查错误是否为存储层的 key 不存在
func IsStoreNotFound(err error) bool {
	domainErr := GetDomainError(err)
	return domainErr != nil && domainErr.Module == ModuleStore && domainErr.Code == ErrorCodeNotFound
}
