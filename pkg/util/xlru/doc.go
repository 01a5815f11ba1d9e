// Package xlru 是 github.com/hashicorp/golang-lru/v2/expirable 的薄封装，
// 提供带 TTL 的泛型 LRU 缓存，并补上上游缺失的 Close。
//
// 上游在创建时启动一个清理过期条目的 goroutine 且没有公开的停止方法，
// Close 会停止该 goroutine。Close 之后读返回 miss，写被忽略。
package xlru
