// Package hello 是运行在 xpool 之上的最小 HTTP/1.1 响应服务。
//
// Server 在 TCP 监听上接受连接，每个连接作为一个任务提交给 pool，
// 由 worker 读取请求行并写回响应：
//
//	GET / HTTP/1.1       200 OK + hello.html
//	GET /sleep HTTP/1.1  等待 SleepDelay 后同 /
//	其他                 404 NOT FOUND + 404.html
//
// 响应格式固定为 "{status}\r\nContent-Length: {len}\r\n\r\n{body}"，不解析请求头。
// 页面从 DocRoot 读取并缓存，文件缺失时使用内置页面。
//
// Server 持有 pool：Serve 返回前关闭监听并等待 pool 中已接受的连接处理完毕。
package hello
