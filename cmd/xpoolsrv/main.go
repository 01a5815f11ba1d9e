// xpoolsrv 在固定大小的 worker pool 上运行最小 HTTP/1.1 响应服务。
//
// 用法:
//
//	xpoolsrv serve [选项]
//	xpoolsrv version
//
// serve 选项（命令行优先于配置文件）:
//
//	-c, --config        配置文件路径（.yaml/.yml/.json），修改后热更新日志级别
//	    --addr          监听地址 (默认: 127.0.0.1:7878)
//	-w, --workers       worker 数量 (默认: GOMAXPROCS)
//	    --queue-size    任务队列容量 (默认: 1024)
//	    --docroot       页面目录 (默认: 当前目录)
//	    --log-level     日志级别 debug/info/warn/error
//	    --log-format    日志格式 text/json
//	    --log-file      日志文件，设置后按大小轮转
//	    --stats-interval pool 统计日志间隔，0 关闭 (默认: 1m)
//
// 退出码:
//
//	0: 正常退出或收到终止信号
//	1: 运行期错误（绑定失败、配置文件读取失败等）
//	2: 参数错误（未知 flag、配置取值无效、worker 数量为 0 等）
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

// 版本信息，通过 -ldflags "-X main.Version=..." 注入。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// usageError 参数错误，退出码 2。
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func usage(err error) error {
	if err == nil {
		return nil
	}
	return &usageError{err: err}
}

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

// run 执行命令并把错误映射为退出码。
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := createApp(stdout, stderr)
	err := app.Run(ctx, args)
	if err == nil {
		return 0
	}

	var uerr *usageError
	if errors.As(err, &uerr) {
		fmt.Fprintf(stderr, "参数错误: %v\n", uerr)
		return 2
	}
	fmt.Fprintf(stderr, "错误: %v\n", err)
	return 1
}

func createApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "xpoolsrv",
		Usage:     "worker pool 上的最小 HTTP 响应服务",
		Version:   versionString(),
		Writer:    stdout,
		ErrWriter: stderr,
		Commands: []*cli.Command{
			serveCommand(),
			versionCommand(),
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Present() {
				return usage(fmt.Errorf("unknown command %q", cmd.Args().First()))
			}
			return cli.ShowAppHelp(cmd)
		},
		OnUsageError: onUsageError,
		// 退出码统一由 run 映射，不让 cli 调用 os.Exit。
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

func onUsageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return usage(err)
}

func versionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime)
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "打印版本信息",
		Action: func(_ context.Context, cmd *cli.Command) error {
			_, err := fmt.Fprintf(cmd.Root().Writer, "xpoolsrv %s\n", versionString())
			return err
		},
	}
}
