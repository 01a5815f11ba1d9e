package xrun

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Group 管理一组共享同一个取消信号的服务。
//
// 任一服务返回错误、调用 Cancel 或父 context 结束，都会取消所有服务的 ctx。
// Go、GoWithName、Cancel 可并发调用；Wait 只调用一次。
type Group struct {
	eg       *errgroup.Group
	ctx      context.Context
	causeCtx context.Context
	cancel   context.CancelCauseFunc
	opts     *groupOptions
}

// NewGroup 创建 Group，返回的 ctx 即传给每个服务的 ctx。nil ctx 视为 context.Background()。
func NewGroup(ctx context.Context, opts ...Option) (*Group, context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	causeCtx, cancel := context.WithCancelCause(ctx)
	eg, egCtx := errgroup.WithContext(causeCtx)
	return &Group{
		eg:       eg,
		ctx:      egCtx,
		causeCtx: causeCtx,
		cancel:   cancel,
		opts:     o,
	}, egCtx
}

// Go 启动服务。fn 应在 ctx.Done() 后尽快返回；返回非 nil 错误会取消其他服务。
func (g *Group) Go(fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		if fn == nil {
			return ErrNilFunc
		}
		return fn(g.ctx)
	})
}

// GoWithName 与 Go 相同，并以 name 记录服务的启停日志。
func (g *Group) GoWithName(name string, fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		if fn == nil {
			return ErrNilFunc
		}
		log := g.opts.logger.With(
			slog.String("group", g.opts.name),
			slog.String("service", name),
		)
		log.Debug("service starting")
		err := fn(g.ctx)
		switch {
		case err == nil, errors.Is(err, context.Canceled):
			log.Debug("service stopped")
		default:
			log.Warn("service exited with error", slog.Any("error", err))
		}
		return err
	})
}

// Wait 等待所有服务返回。
//
// 服务返回的非取消错误优先返回；否则 Group 被取消（Cancel、信号、父 ctx）时
// 返回取消原因，普通取消返回 nil。服务自身产生的 context.Canceled 原样返回。
func (g *Group) Wait() error {
	defer g.cancel(nil)

	err := g.eg.Wait()
	g.opts.logger.Debug("all services stopped", slog.String("group", g.opts.name))

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if g.causeCtx.Err() == nil {
		return err
	}
	return g.exitCause()
}

// exitCause 返回有意义的取消原因，普通取消返回 nil。
func (g *Group) exitCause() error {
	cause := context.Cause(g.causeCtx)
	if cause == nil || errors.Is(cause, context.Canceled) {
		return nil
	}
	return cause
}

// Cancel 以 cause 取消所有服务，Wait 随后返回 cause。
// cause 不应包装 context.Canceled，否则会被当作普通取消。
func (g *Group) Cancel(cause error) {
	g.cancel(cause)
}

// Context 返回服务共享的 ctx。
func (g *Group) Context() context.Context {
	return g.ctx
}
