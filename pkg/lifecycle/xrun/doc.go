// Package xrun 基于 errgroup 管理进程内多个服务的运行和协调关闭。
//
// 所有服务共享一个 ctx：任一服务出错、收到终止信号或调用 Cancel 时 ctx 被取消，
// 服务应监听 ctx.Done() 并退出。Wait 返回退出原因，信号退出为 *SignalError。
//
//	err := xrun.RunWithOptions(ctx, []xrun.Option{
//	    xrun.WithName("xpoolsrv"),
//	    xrun.WithLogger(logger),
//	}, srv.Run, xrun.Ticker(time.Minute, false, reportStats))
//	if errors.Is(err, xrun.ErrSignal) {
//	    err = nil
//	}
//
// 需要动态添加服务时直接使用 Group：
//
//	g, ctx := xrun.NewGroup(ctx, xrun.WithName("app"))
//	g.GoWithName("watcher", w.Run)
//	g.GoWithName("server", srv.Run)
//	err := g.Wait()
package xrun
