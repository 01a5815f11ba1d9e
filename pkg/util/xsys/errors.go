package xsys

import "errors"

var (
	// ErrInvalidFileLimit 期望的上限为 0。
	ErrInvalidFileLimit = errors.New("xsys: file limit must be positive")

	// ErrHardLimit 期望值超过 hard limit，soft limit 只提升到 hard limit。
	ErrHardLimit = errors.New("xsys: file limit exceeds hard limit")

	// ErrUnsupportedPlatform 当前平台不支持。
	ErrUnsupportedPlatform = errors.New("xsys: unsupported platform")
)
