// Package xmetrics 提供基于 OpenTelemetry 的观测能力：
// worker pool 指标（PoolObserver）与请求级 span + 指标（Observer）。
//
// # Pool 指标
//
// PoolObserver 实现 xpool.Observer，通过 xpool.WithObserver 注入：
//
//	obs, err := xmetrics.NewPoolObserver(xmetrics.WithPoolName("hello"))
//	if err != nil {
//		return err
//	}
//	pool, err := xpool.Build(4, xpool.WithObserver(obs))
//	if err != nil {
//		return err
//	}
//	reg, err := obs.RegisterQueueGauge(pool)
//
// 指标：
//   - xthreadpool.jobs.submitted / .rejected / .completed / .panics（Counter）
//   - xthreadpool.job.duration（Histogram，秒）
//   - xthreadpool.workers.busy（UpDownCounter）
//   - xthreadpool.workers.exited（Counter）
//   - xthreadpool.queue.length（ObservableGauge，RegisterQueueGauge 注册）
//
// # 请求观测
//
//	ctx, span := xmetrics.Start(ctx, obs, xmetrics.SpanOptions{
//		Component: "hello",
//		Operation: "GET /",
//		Kind:      xmetrics.KindServer,
//	})
//	defer span.End(xmetrics.Result{Err: err})
//
// 统一指标 xthreadpool.operation.total / xthreadpool.operation.duration，
// 属性 component / operation / status。
package xmetrics
