package xlru

import "errors"

var (
	// ErrInvalidSize 缓存条目数必须为正数。
	ErrInvalidSize = errors.New("xlru: size must be positive")

	// ErrSizeExceedsMax 缓存条目数超过 MaxSize。
	ErrSizeExceedsMax = errors.New("xlru: size exceeds max")

	// ErrInvalidTTL TTL 不能为负数。
	ErrInvalidTTL = errors.New("xlru: negative ttl")
)
