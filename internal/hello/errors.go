package hello

import "errors"

var (
	// ErrNilPool New 的 pool 参数为 nil。
	ErrNilPool = errors.New("hello: nil pool")

	// ErrNilListener Serve 的 listener 参数为 nil。
	ErrNilListener = errors.New("hello: nil listener")

	// ErrBind 监听地址绑定失败（重试耗尽）。
	ErrBind = errors.New("hello: bind failed")

	// ErrInvalidOption 选项取值无效。
	ErrInvalidOption = errors.New("hello: invalid option")

	// ErrEmptyRequest 连接在发送请求行之前关闭。
	ErrEmptyRequest = errors.New("hello: empty request")
)
