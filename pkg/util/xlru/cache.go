package xlru

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MaxSize 缓存条目数上限。
const MaxSize = 1 << 24

// Config 缓存配置。
type Config struct {
	// Size 最大条目数，范围 [1, MaxSize]。
	Size int
	// TTL 条目过期时间，0 表示不过期。
	TTL time.Duration
}

// Cache 带 TTL 的 LRU 缓存，并发安全。必须通过 New 创建。
type Cache[K comparable, V any] struct {
	lru       *expirable.LRU[K, V]
	closed    atomic.Bool
	closeOnce sync.Once
}

// New 校验 cfg 并创建缓存。
func New[K comparable, V any](cfg Config) (*Cache[K, V], error) {
	switch {
	case cfg.Size <= 0:
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, cfg.Size)
	case cfg.Size > MaxSize:
		return nil, fmt.Errorf("%w: %d", ErrSizeExceedsMax, cfg.Size)
	case cfg.TTL < 0:
		return nil, fmt.Errorf("%w: %s", ErrInvalidTTL, cfg.TTL)
	}
	return &Cache[K, V]{lru: expirable.NewLRU[K, V](cfg.Size, nil, cfg.TTL)}, nil
}

// Get 返回未过期的值。
func (c *Cache[K, V]) Get(key K) (value V, ok bool) {
	if c.closed.Load() {
		return value, false
	}
	return c.lru.Get(key)
}

// Set 写入并刷新 TTL，返回是否淘汰了旧条目。
func (c *Cache[K, V]) Set(key K, value V) (evicted bool) {
	if c.closed.Load() {
		return false
	}
	return c.lru.Add(key, value)
}

// Delete 删除条目，返回键是否存在。
func (c *Cache[K, V]) Delete(key K) bool {
	if c.closed.Load() {
		return false
	}
	return c.lru.Remove(key)
}

// Purge 清空所有条目。
func (c *Cache[K, V]) Purge() {
	if c.closed.Load() {
		return
	}
	c.lru.Purge()
}

// Len 返回条目数，可能包含已过期但尚未清理的条目。
func (c *Cache[K, V]) Len() int {
	if c.closed.Load() {
		return 0
	}
	return c.lru.Len()
}

// Close 清空缓存并停止后台清理 goroutine，幂等。
func (c *Cache[K, V]) Close() {
	c.closed.Store(true)
	c.closeOnce.Do(func() {
		c.lru.Purge()
		stopCleanup(c.lru)
	})
}

// stopCleanup 关闭 expirable.LRU 未导出的 done channel，使其清理 goroutine 退出。
// 上游字段名或类型变化时返回 false，goroutine 泄漏但不影响正确性。
func stopCleanup(lru any) (stopped bool) {
	defer func() {
		if recover() != nil {
			stopped = false
		}
	}()

	v := reflect.ValueOf(lru)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return false
	}
	done := v.Elem().FieldByName("done")
	if !done.IsValid() || done.Type() != reflect.TypeFor[chan struct{}]() || done.IsNil() {
		return false
	}
	close(*(*chan struct{})(unsafe.Pointer(done.UnsafeAddr()))) //nolint:gosec // 上游无公开 Close
	return true
}
