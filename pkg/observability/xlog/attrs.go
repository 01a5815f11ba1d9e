package xlog

import (
	"log/slog"
	"time"
)

// 常用属性 Key，保持跨组件字段名一致。
const (
	KeyError      = "error"
	KeyStack      = "stack"
	KeyDuration   = "duration"
	KeyComponent  = "component"
	KeyWorkerID   = "worker_id"
	KeyRequestID  = "request_id"
	KeyTraceID    = "trace_id"
	KeySpanID     = "span_id"
	KeyPath       = "path"
	KeyStatusCode = "status_code"
	KeyRemoteAddr = "remote_addr"
)

// Err 创建错误属性。err 为 nil 时返回空属性（会被 slog 忽略）。
//
//	if err != nil {
//	    logger.Error("accept failed", xlog.Err(err))
//	}
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Duration 创建耗时属性，输出人类可读格式（如 "1.5s"）。
func Duration(d time.Duration) slog.Attr {
	return slog.String(KeyDuration, d.String())
}

// Component 标识日志来源组件。
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

// WorkerID 标识执行任务的 worker。
func WorkerID(id int) slog.Attr {
	return slog.Int(KeyWorkerID, id)
}

// RequestID 创建请求 ID 属性。
func RequestID(id string) slog.Attr {
	return slog.String(KeyRequestID, id)
}

// Path 创建请求路径属性。
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// StatusCode 创建响应状态码属性。
func StatusCode(code int) slog.Attr {
	return slog.Int(KeyStatusCode, code)
}

// RemoteAddr 创建对端地址属性。
func RemoteAddr(addr string) slog.Attr {
	return slog.String(KeyRemoteAddr, addr)
}
