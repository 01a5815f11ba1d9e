package xpool

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain 在所有测试完成后检测 goroutine 泄漏：
// 每个测试关闭的 pool 都不应残留 worker goroutine。
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
