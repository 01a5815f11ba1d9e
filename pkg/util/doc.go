// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xpool: 固定大小的 worker pool，有界队列、优雅关闭、panic 恢复
//   - xlru: 带 TTL 的泛型 LRU 缓存，可停止后台清理 goroutine
//   - xsys: 进程打开文件数上限的查询和提升
package util
