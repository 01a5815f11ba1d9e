package xlog

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// 轮转默认值
const (
	// DefaultMaxSizeMB 单个日志文件最大大小（MB）
	DefaultMaxSizeMB = 100

	// DefaultMaxBackups 保留的备份文件数量
	DefaultMaxBackups = 7

	// DefaultMaxAgeDays 备份保留天数
	DefaultMaxAgeDays = 30

	maxSizeMB  = 10240
	maxBackups = 1024
	maxAgeDays = 3650
)

type rotationConfig struct {
	maxSizeMB  int
	maxBackups int
	maxAgeDays int
	compress   bool
	localTime  bool
}

// RotationOption 日志轮转配置选项
type RotationOption func(*rotationConfig)

// WithMaxSize 设置单个日志文件最大大小（MB），范围 [1, 10240]。
func WithMaxSize(mb int) RotationOption {
	return func(c *rotationConfig) {
		c.maxSizeMB = mb
	}
}

// WithMaxBackups 设置保留的备份文件数量，0 表示不限制（仍受 MaxAge 约束）。
func WithMaxBackups(n int) RotationOption {
	return func(c *rotationConfig) {
		c.maxBackups = n
	}
}

// WithMaxAge 设置备份保留天数，0 表示不按天数清理。
func WithMaxAge(days int) RotationOption {
	return func(c *rotationConfig) {
		c.maxAgeDays = days
	}
}

// WithCompress 设置是否 gzip 压缩备份文件。
func WithCompress(compress bool) RotationOption {
	return func(c *rotationConfig) {
		c.compress = compress
	}
}

// WithLocalTime 备份文件名使用本地时间（默认 UTC）。
func WithLocalTime(local bool) RotationOption {
	return func(c *rotationConfig) {
		c.localTime = local
	}
}

func (c *rotationConfig) validate() error {
	if c.maxSizeMB < 1 || c.maxSizeMB > maxSizeMB {
		return fmt.Errorf("%w: max size %d MB (must be in [1, %d])", ErrInvalidRotation, c.maxSizeMB, maxSizeMB)
	}
	if c.maxBackups < 0 || c.maxBackups > maxBackups {
		return fmt.Errorf("%w: max backups %d (must be in [0, %d])", ErrInvalidRotation, c.maxBackups, maxBackups)
	}
	if c.maxAgeDays < 0 || c.maxAgeDays > maxAgeDays {
		return fmt.Errorf("%w: max age %d days (must be in [0, %d])", ErrInvalidRotation, c.maxAgeDays, maxAgeDays)
	}
	return nil
}

// newRotator 创建 lumberjack 轮转写入器，自动创建父目录。
func newRotator(filename string, opts ...RotationOption) (*lumberjack.Logger, error) {
	if filename == "" {
		return nil, ErrEmptyFilename
	}

	cfg := rotationConfig{
		maxSizeMB:  DefaultMaxSizeMB,
		maxBackups: DefaultMaxBackups,
		maxAgeDays: DefaultMaxAgeDays,
		compress:   true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	path := filepath.Clean(filename)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("xlog: create log dir: %w", err)
	}

	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.maxSizeMB,
		MaxBackups: cfg.maxBackups,
		MaxAge:     cfg.maxAgeDays,
		Compress:   cfg.compress,
		LocalTime:  cfg.localTime,
	}, nil
}
