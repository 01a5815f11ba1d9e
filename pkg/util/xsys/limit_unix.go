//go:build unix

package xsys

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// 测试替换以覆盖错误路径，替换时不可并行。
var (
	getrlimit = unix.Getrlimit
	setrlimit = unix.Setrlimit
)

// limitMu 串行化 getrlimit→setrlimit。
var limitMu sync.Mutex

// FileLimit 返回当前的 soft 和 hard limit。
func FileLimit() (soft, hard uint64, err error) {
	var rl unix.Rlimit
	if err := getrlimit(unix.RLIMIT_NOFILE, &rl); err != nil {
		return 0, 0, fmt.Errorf("xsys: getrlimit: %w", err)
	}
	return rl.Cur, rl.Max, nil
}

// RaiseFileLimit 把 soft limit 提升到至少 want，返回调整后的 soft limit。
//
// 从不降低 soft limit，也不修改 hard limit。want 超过 hard limit 时
// soft 提升到 hard 并返回 ErrHardLimit。
func RaiseFileLimit(want uint64) (uint64, error) {
	if want == 0 {
		return 0, ErrInvalidFileLimit
	}

	limitMu.Lock()
	defer limitMu.Unlock()

	var rl unix.Rlimit
	if err := getrlimit(unix.RLIMIT_NOFILE, &rl); err != nil {
		return 0, fmt.Errorf("xsys: getrlimit: %w", err)
	}
	if rl.Cur >= want {
		return rl.Cur, nil
	}

	target := min(want, rl.Max)
	if target > rl.Cur {
		next := unix.Rlimit{Cur: target, Max: rl.Max}
		if err := setrlimit(unix.RLIMIT_NOFILE, &next); err != nil {
			return rl.Cur, fmt.Errorf("xsys: setrlimit %d: %w", target, err)
		}
	}
	if target < want {
		return target, fmt.Errorf("%w: want %d, hard %d", ErrHardLimit, want, rl.Max)
	}
	return target, nil
}
