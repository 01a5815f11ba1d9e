//go:build !unix

package xsys

// FileLimit 返回 ErrUnsupportedPlatform。
func FileLimit() (soft, hard uint64, err error) {
	return 0, 0, ErrUnsupportedPlatform
}

// RaiseFileLimit 校验参数后返回 ErrUnsupportedPlatform。
func RaiseFileLimit(want uint64) (uint64, error) {
	if want == 0 {
		return 0, ErrInvalidFileLimit
	}
	return 0, ErrUnsupportedPlatform
}
