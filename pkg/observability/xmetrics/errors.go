package xmetrics

import "errors"

var (
	// ErrCreateInstrument 创建 OTel 指标仪表失败。
	ErrCreateInstrument = errors.New("xmetrics: create instrument failed")

	// ErrNilPool RegisterQueueGauge 传入 nil pool。
	ErrNilPool = errors.New("xmetrics: pool is nil")
)
