// Package xpool 提供固定大小的 worker pool。
//
// Pool 在创建时启动 N 个常驻 worker，所有 worker 共享同一个有界任务队列，
// 任何 goroutine 都可以向队列提交任务（无参数、无返回值的闭包），
// 由某个空闲 worker 执行，每个任务恰好执行一次。
//
// 支持以下特性：
//   - Build 参数无效时返回 *PoolCreationError（size 为 0 时信息固定为
//     "Cannot create a pool of size 0!"），从不 panic；MustNew 是 panic 版本
//   - Submit 队列满时阻塞（背压），SubmitContext 支持取消，TrySubmit 立即返回 ErrQueueFull
//   - Sender 句柄可复制、可 Clone，交给任意 goroutine 并发提交
//   - 优雅关闭：关闭后队列中剩余任务仍被执行（WithDiscardPending 可改为丢弃）
//   - Shutdown(ctx) 支持超时，Done() 在所有 worker 退出后关闭
//   - panic 恢复：记录堆栈日志、计数并回调 WithPanicHandler，worker 继续服务
//   - Observer 观测任务生命周期，Stats/Workers 提供快照
//
// # 关闭顺序
//
// Close/Shutdown 只执行一次，顺序固定：
//  1. 取走 pool 自持的 Sender 并关闭队列，之后所有提交返回 ErrPoolClosed
//  2. 每个 worker 完成手上的任务，排空队列后观察到关闭并退出
//  3. 按创建顺序 join worker，每个 worker 只被 join 一次
//
// 关闭不会中断正在执行的任务。执行时间无上限的任务会让 Close 无限等待，
// 这类场景使用 Shutdown(ctx) 配合超时。
//
// # 注意事项
//
//   - Close/Shutdown 不可在任务内调用：任务所在 worker 会等待自己退出
//   - 任务按 FIFO 出队，但执行完成顺序不保证
//   - 任务的返回值和错误需要由任务自行通过 channel 等方式回传
//   - panic 的任务不会被重试
//
// # 作用域用法
//
// Go 没有析构函数，pool 的生命周期需要显式管理：
//
//	pool, err := xpool.Build(4)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
// 或使用 Use 在函数返回时自动关闭：
//
//	err := xpool.Use(4, func(p *xpool.Pool) error {
//	    return p.Submit(func() { ... })
//	})
package xpool
