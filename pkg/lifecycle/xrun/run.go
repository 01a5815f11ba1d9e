package xrun

import "context"

// Service 是可被 Group 托管的长时间运行组件。
// Run 阻塞直到 ctx 结束或出错，ctx 结束后应优雅退出。
type Service interface {
	Run(ctx context.Context) error
}

// ServiceFunc 把普通函数适配为 Service。
type ServiceFunc func(ctx context.Context) error

// Run 调用 f(ctx)。
func (f ServiceFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Run 并发运行 services 并监听 DefaultSignals，收到信号时返回 *SignalError。
//
//	err := xrun.Run(ctx, srv.Run)
//	if errors.Is(err, xrun.ErrSignal) {
//	    err = nil
//	}
func Run(ctx context.Context, services ...func(ctx context.Context) error) error {
	return RunWithOptions(ctx, nil, services...)
}

// RunWithOptions 与 Run 相同，可指定名称、logger 和信号。
func RunWithOptions(ctx context.Context, opts []Option, services ...func(ctx context.Context) error) error {
	return runGroup(ctx, opts, func(g *Group) {
		for _, svc := range services {
			g.Go(svc)
		}
	})
}

// RunServices 以 Service 形式运行服务，nil Service 使 Group 以 ErrNilService 退出。
func RunServices(ctx context.Context, opts []Option, services ...Service) error {
	return runGroup(ctx, opts, func(g *Group) {
		for _, svc := range services {
			if svc == nil {
				g.Go(func(context.Context) error { return ErrNilService })
				continue
			}
			g.Go(svc.Run)
		}
	})
}

func runGroup(ctx context.Context, opts []Option, setup func(g *Group)) error {
	g, _ := NewGroup(ctx, opts...)
	if !g.opts.noSignalHandler {
		g.Go(g.watchSignals(g.opts.signals))
	}
	setup(g)
	return g.Wait()
}
