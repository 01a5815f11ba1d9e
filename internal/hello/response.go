package hello

import (
	"strconv"
	"strings"
)

const (
	statusOK          = "HTTP/1.1 200 OK"
	statusNotFound    = "HTTP/1.1 404 NOT FOUND"
	statusUnavailable = "HTTP/1.1 503 SERVICE UNAVAILABLE"

	pageHello    = "hello.html"
	pageNotFound = "404.html"
)

// route 是请求行匹配的结果。
type route struct {
	status string
	code   int
	page   string
	sleep  bool
}

// match 按完整请求行匹配路由，不区分方法和路径。
func match(requestLine string) route {
	switch requestLine {
	case "GET / HTTP/1.1":
		return route{status: statusOK, code: 200, page: pageHello}
	case "GET /sleep HTTP/1.1":
		return route{status: statusOK, code: 200, page: pageHello, sleep: true}
	default:
		return route{status: statusNotFound, code: 404, page: pageNotFound}
	}
}

// requestPath 返回请求行中的路径，格式不符时返回空串。仅用于日志。
func requestPath(requestLine string) string {
	fields := strings.Fields(requestLine)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

// formatResponse 组装 "{status}\r\nContent-Length: {len}\r\n\r\n{body}"。
// 长度按字节计算。
func formatResponse(status string, body []byte) []byte {
	buf := make([]byte, 0, len(status)+len(body)+32)
	buf = append(buf, status...)
	buf = append(buf, "\r\nContent-Length: "...)
	buf = strconv.AppendInt(buf, int64(len(body)), 10)
	buf = append(buf, "\r\n\r\n"...)
	return append(buf, body...)
}

// unavailable 是 pool 拒绝连接时写回的响应。
var unavailable = formatResponse(statusUnavailable, nil)
