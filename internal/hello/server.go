package hello

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	retry "github.com/avast/retry-go/v5"
	"github.com/google/uuid"

	"github.com/omeyang/xthreadpool/pkg/observability/xlog"
	"github.com/omeyang/xthreadpool/pkg/observability/xmetrics"
	"github.com/omeyang/xthreadpool/pkg/util/xpool"
)

// maxRequestLine 请求行最大字节数，超过视为读取失败。
const maxRequestLine = 8 << 10

// Server 把每个 TCP 连接交给 pool 处理。
type Server struct {
	pool   *xpool.Pool
	opts   options
	pages  *pageStore
	logger *slog.Logger
}

// New 创建 Server。Server 接管 pool 的关闭。
func New(pool *xpool.Pool, opts ...Option) (*Server, error) {
	if pool == nil {
		return nil, ErrNilPool
	}
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	logger := o.logger.With(xlog.Component("hello"))
	pages, err := newPageStore(o.docRoot, o.cacheSize, o.cacheTTL, logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOption, err)
	}
	return &Server{
		pool:   pool,
		opts:   o,
		pages:  pages,
		logger: logger,
	}, nil
}

// Run 绑定监听地址并服务，直到 ctx 结束。
// 返回前关闭 pool；ctx 结束导致的退出返回 nil。
func (s *Server) Run(ctx context.Context) error {
	ln, err := s.Listen(ctx)
	if err != nil {
		return errors.Join(err, s.Close())
	}
	return s.Serve(ctx, ln)
}

// Close 关闭 pool 并释放页面缓存，用于未调用 Serve 的 Server。
// Serve 返回时已完成同样的清理。
func (s *Server) Close() error {
	err := s.pool.Close()
	s.pages.close()
	return err
}

// Listen 绑定监听地址，失败时按 WithBindRetry 重试。
func (s *Server) Listen(ctx context.Context) (net.Listener, error) {
	var (
		lc net.ListenConfig
		ln net.Listener
	)
	err := retry.New(
		retry.Context(ctx),
		retry.Attempts(s.opts.bindAttempts),
		retry.Delay(s.opts.bindDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			s.logger.Warn("bind failed, retrying",
				slog.String("addr", s.opts.addr),
				slog.Uint64("attempt", uint64(n)+1),
				xlog.Err(err),
			)
		}),
	).Do(func() error {
		l, err := lc.Listen(ctx, "tcp", s.opts.addr)
		if err != nil {
			return err
		}
		ln = l
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBind, s.opts.addr, err)
	}
	return ln, nil
}

// Serve 在 ln 上接受连接直到 ctx 结束或 accept 出错。
//
// 退出时先关闭 ln，再关闭 pool 并等待已提交的连接处理完毕。
// Serve 只能调用一次。
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if ln == nil {
		return errors.Join(ErrNilListener, s.Close())
	}
	s.logger.Info("server listening",
		slog.String("addr", ln.Addr().String()),
		slog.Int("workers", s.pool.Size()),
	)

	stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
	acceptErr := s.acceptLoop(ctx, ln)
	if stop() {
		_ = ln.Close()
	}

	s.logger.Info("server stopping", slog.Int("pending", s.pool.Stats().QueueLen))
	closeErr := s.Close()
	s.logger.Info("server stopped")
	return errors.Join(acceptErr, closeErr)
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("hello: accept: %w", err)
		}
		s.dispatch(ctx, conn)
	}
}

// dispatch 把连接提交给 pool，提交失败时写回 503 并关闭连接。
func (s *Server) dispatch(ctx context.Context, conn net.Conn) {
	jobCtx := context.WithoutCancel(ctx)
	job := func() { s.handle(jobCtx, conn) }

	var err error
	if s.opts.rejectOnBusy {
		err = s.pool.TrySubmit(job)
	} else {
		err = s.pool.SubmitContext(ctx, job)
	}
	if err == nil {
		return
	}

	s.logger.Warn("connection rejected",
		xlog.RemoteAddr(conn.RemoteAddr().String()),
		xlog.Err(err),
	)
	_ = conn.SetWriteDeadline(time.Now().Add(time.Second))
	_, _ = conn.Write(unavailable)
	_ = conn.Close()
}

// handle 在 worker 上处理一个连接：读请求行、匹配路由、写响应、关闭。
func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	id := uuid.NewString()
	remote := conn.RemoteAddr().String()
	ctx = xlog.WithRequestID(ctx, id)
	ctx, span := xmetrics.Start(ctx, s.opts.observer, xmetrics.SpanOptions{
		Component: "hello",
		Operation: "handle_connection",
		Kind:      xmetrics.KindServer,
		Attrs: []xmetrics.Attr{
			xmetrics.String(xlog.KeyRequestID, id),
			xmetrics.String(xlog.KeyRemoteAddr, remote),
		},
	})
	start := time.Now()

	line, err := s.readRequestLine(conn)
	if err != nil {
		span.End(xmetrics.Result{Err: err})
		s.logger.LogAttrs(ctx, slog.LevelDebug, "read request failed",
			xlog.RemoteAddr(remote),
			xlog.Err(err),
		)
		return
	}

	r := match(line)
	if r.sleep && s.opts.sleepDelay > 0 {
		time.Sleep(s.opts.sleepDelay)
	}
	_, err = conn.Write(formatResponse(r.status, s.pages.load(r.page)))
	span.End(xmetrics.Result{
		Err: err,
		Attrs: []xmetrics.Attr{
			xmetrics.String(xlog.KeyPath, requestPath(line)),
			xmetrics.Int(xlog.KeyStatusCode, r.code),
		},
	})
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "write response failed",
			xlog.RemoteAddr(remote),
			xlog.Err(err),
		)
		return
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "request handled",
		xlog.Path(requestPath(line)),
		xlog.StatusCode(r.code),
		xlog.RemoteAddr(remote),
		xlog.Duration(time.Since(start)),
	)
}

// readRequestLine 读取第一行（去掉 \r\n），其余内容忽略。
func (s *Server) readRequestLine(conn net.Conn) (string, error) {
	if d := s.opts.readTimeout; d > 0 {
		if err := conn.SetReadDeadline(time.Now().Add(d)); err != nil {
			return "", err
		}
	}
	sc := bufio.NewScanner(conn)
	sc.Buffer(make([]byte, 0, 1024), maxRequestLine)
	if sc.Scan() {
		return sc.Text(), nil
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return "", ErrEmptyRequest
}
