// Package xsys 查询和调整进程的打开文件数上限（RLIMIT_NOFILE）。
//
// 每个排队或处理中的连接占用一个文件描述符，服务启动时用 RaiseFileLimit
// 把 soft limit 提升到 worker 数加队列容量所需的数量。
// 非 Unix 平台返回 ErrUnsupportedPlatform。
package xsys
