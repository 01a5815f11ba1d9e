package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xthreadpool/internal/hello"
	"github.com/omeyang/xthreadpool/pkg/config/xconf"
	"github.com/omeyang/xthreadpool/pkg/lifecycle/xrun"
	"github.com/omeyang/xthreadpool/pkg/observability/xlog"
	"github.com/omeyang/xthreadpool/pkg/observability/xmetrics"
	"github.com/omeyang/xthreadpool/pkg/util/xpool"
	"github.com/omeyang/xthreadpool/pkg/util/xsys"
)

const (
	appName              = "xpoolsrv"
	defaultStatsInterval = time.Minute
	// fdHeadroom 监听 socket、日志文件、配置监视等占用的描述符余量。
	fdHeadroom = 64
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "启动服务",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径（.yaml/.yml/.json）",
			},
			&cli.StringFlag{Name: "addr", Usage: "监听地址"},
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "worker 数量"},
			&cli.IntFlag{Name: "queue-size", Usage: "任务队列容量"},
			&cli.StringFlag{Name: "docroot", Usage: "页面目录"},
			&cli.StringFlag{Name: "log-level", Usage: "日志级别 debug/info/warn/error"},
			&cli.StringFlag{Name: "log-format", Usage: "日志格式 text/json"},
			&cli.StringFlag{Name: "log-file", Usage: "日志文件，设置后按大小轮转"},
			&cli.DurationFlag{
				Name:  "stats-interval",
				Usage: "pool 统计日志间隔，0 关闭",
				Value: defaultStatsInterval,
			},
		},
		OnUsageError: onUsageError,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, app, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return serve(ctx, cfg, app, serveOptions{
				statsInterval: cmd.Duration("stats-interval"),
				watchLevel:    !cmd.IsSet("log-level"),
				stderr:        cmd.Root().ErrWriter,
			})
		},
	}
}

// loadConfig 按 默认值 < 配置文件 < 命令行 的优先级得到最终配置。
func loadConfig(cmd *cli.Command) (xconf.Config, xconf.AppConfig, error) {
	var cfg xconf.Config
	if path := cmd.String("config"); path != "" {
		c, err := xconf.New(path)
		if errors.Is(err, xconf.ErrUnsupportedFormat) {
			return nil, xconf.AppConfig{}, usage(err)
		}
		if err != nil {
			return nil, xconf.AppConfig{}, err
		}
		cfg = c
	}

	app := xconf.DefaultAppConfig()
	if cfg != nil {
		if err := cfg.Unmarshal("", &app); err != nil {
			return nil, xconf.AppConfig{}, usage(err)
		}
	}
	applyFlags(cmd, &app)
	if err := app.Validate(); err != nil {
		return nil, xconf.AppConfig{}, usage(err)
	}
	return cfg, app, nil
}

func applyFlags(cmd *cli.Command, app *xconf.AppConfig) {
	if cmd.IsSet("addr") {
		app.Server.Addr = cmd.String("addr")
	}
	if cmd.IsSet("workers") {
		app.Pool.Workers = cmd.Int("workers")
	}
	if cmd.IsSet("queue-size") {
		app.Pool.QueueSize = cmd.Int("queue-size")
	}
	if cmd.IsSet("docroot") {
		app.Server.DocRoot = cmd.String("docroot")
	}
	if cmd.IsSet("log-level") {
		app.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("log-format") {
		app.Log.Format = cmd.String("log-format")
	}
	if cmd.IsSet("log-file") {
		app.Log.File = cmd.String("log-file")
	}
}

type serveOptions struct {
	statsInterval time.Duration
	// watchLevel 为 false 时命令行指定的级别优先，不随配置文件变化。
	watchLevel bool
	stderr     io.Writer
}

func serve(ctx context.Context, cfg xconf.Config, app xconf.AppConfig, so serveOptions) (err error) {
	logger, cleanup, err := buildLogger(app.Log, so.stderr)
	if errors.Is(err, xlog.ErrUnknownLevel) || errors.Is(err, xlog.ErrUnknownFormat) {
		return usage(err)
	}
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, cleanup())
	}()

	pool, err := buildPool(app.Pool, logger)
	if err != nil {
		return err
	}
	ensureFileLimit(pool, logger)

	requests, err := xmetrics.NewOTelObserver()
	if err != nil {
		return errors.Join(err, pool.Close())
	}
	srv, err := hello.New(pool,
		hello.WithAddr(app.Server.Addr),
		hello.WithDocRoot(app.Server.DocRoot),
		hello.WithCache(app.Server.CacheSize, app.Server.CacheTTL),
		hello.WithSleepDelay(app.Server.SleepDelay),
		hello.WithLogger(logger.Logger),
		hello.WithObserver(requests),
	)
	if err != nil {
		return errors.Join(usage(err), pool.Close())
	}

	// srv.Run 返回前关闭 pool。
	services := []func(ctx context.Context) error{srv.Run}
	if so.statsInterval > 0 {
		services = append(services, xrun.Ticker(so.statsInterval, false, logStats(logger, pool)))
	}
	if cfg != nil && so.watchLevel {
		w, err := xconf.Watch(cfg, reloadLogLevel(logger))
		if err != nil {
			logger.Warn("config watch disabled", xlog.Err(err))
		} else {
			services = append(services, w.Run)
		}
	}

	logger.Info("starting",
		slog.String("version", Version),
		slog.String("addr", app.Server.Addr),
		slog.Int("workers", pool.Size()),
		slog.Int("queue_size", pool.QueueCap()),
	)
	err = xrun.RunWithOptions(ctx, []xrun.Option{
		xrun.WithName(appName),
		xrun.WithLogger(logger.Logger),
	}, services...)
	if errors.Is(err, xrun.ErrSignal) {
		logger.Info("shutdown complete", xlog.Err(err))
		return nil
	}
	return err
}

func buildLogger(cfg xconf.LogConfig, stderr io.Writer) (*xlog.Logger, func() error, error) {
	b := xlog.New().
		SetLevelString(cfg.Level).
		SetFormat(cfg.Format).
		SetEnrich(true).
		SetAttrs(slog.String("app", appName))
	if cfg.File != "" {
		b.SetRotation(cfg.File, xlog.WithCompress(true))
	} else {
		b.SetOutput(stderr)
	}
	return b.Build()
}

func buildPool(cfg xconf.PoolConfig, logger *xlog.Logger) (*xpool.Pool, error) {
	obs, err := xmetrics.NewPoolObserver(xmetrics.WithPoolName(appName))
	if err != nil {
		return nil, err
	}

	opts := []xpool.Option{
		xpool.WithName(appName),
		xpool.WithQueueSize(cfg.QueueSize),
		xpool.WithLogger(logger.Component("xpool").Logger),
		xpool.WithObserver(obs),
	}
	if cfg.LockOSThread {
		opts = append(opts, xpool.WithLockOSThread())
	}
	if cfg.DiscardPending {
		opts = append(opts, xpool.WithDiscardPending())
	}

	pool, err := xpool.Build(cfg.Workers, opts...)
	if err != nil {
		return nil, usage(err)
	}
	if _, err := obs.RegisterQueueGauge(pool); err != nil {
		return nil, errors.Join(fmt.Errorf("register queue gauge: %w", err), pool.Close())
	}
	return pool, nil
}

// ensureFileLimit 保证排队和处理中的连接都能拿到文件描述符，失败只告警。
func ensureFileLimit(pool *xpool.Pool, logger *xlog.Logger) {
	want := uint64(pool.Size()+pool.QueueCap()) + fdHeadroom
	soft, err := xsys.RaiseFileLimit(want)
	if err != nil {
		logger.Warn("open file limit may be too low",
			slog.Uint64("want", want),
			slog.Uint64("soft", soft),
			xlog.Err(err),
		)
		return
	}
	logger.Debug("open file limit", slog.Uint64("soft", soft))
}

func logStats(logger *xlog.Logger, pool *xpool.Pool) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		s := pool.Stats()
		logger.LogAttrs(ctx, slog.LevelInfo, "pool stats",
			slog.Int("workers", s.Workers),
			slog.Int("busy", s.Busy),
			slog.Int("queue_len", s.QueueLen),
			slog.Uint64("submitted", s.Submitted),
			slog.Uint64("completed", s.Completed),
			slog.Uint64("rejected", s.Rejected),
			slog.Uint64("panics", s.Panics),
		)
		return nil
	}
}

// reloadLogLevel 在配置文件变化后应用新的日志级别，其他字段需要重启生效。
func reloadLogLevel(logger *xlog.Logger) xconf.WatchCallback {
	return func(cfg xconf.Config, err error) {
		if err != nil {
			logger.Warn("config reload failed", xlog.Err(err))
			return
		}
		app, err := xconf.LoadApp(cfg)
		if err != nil {
			logger.Warn("reloaded config invalid", xlog.Err(err))
			return
		}
		level, err := xlog.ParseLevel(app.Log.Level)
		if err != nil {
			logger.Warn("reloaded log level invalid", xlog.Err(err))
			return
		}
		if level == logger.GetLevel() {
			return
		}
		logger.SetLevel(level)
		logger.Info("log level changed", slog.String("level", level.String()))
	}
}
