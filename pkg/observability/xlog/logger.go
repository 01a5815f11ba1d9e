package xlog

import (
	"context"
	"log/slog"
	"runtime/debug"
)

// Logger 是 Build 的产物：内嵌 *slog.Logger，并持有共享的 LevelVar。
//
// 派生 logger（With/WithGroup/Component）与父级共享 LevelVar，
// SetLevel 对整棵派生树同时生效。
type Logger struct {
	*slog.Logger
	levelVar *slog.LevelVar
}

// SetLevel 动态设置日志级别，运行时生效。
func (l *Logger) SetLevel(level Level) {
	l.levelVar.Set(slog.Level(level))
}

// GetLevel 返回当前日志级别。
func (l *Logger) GetLevel() Level {
	return Level(l.levelVar.Level())
}

// With 返回带额外属性的派生 Logger。
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...), levelVar: l.levelVar}
}

// WithGroup 返回带分组的派生 Logger。
func (l *Logger) WithGroup(name string) *Logger {
	return &Logger{Logger: l.Logger.WithGroup(name), levelVar: l.levelVar}
}

// Component 返回带 component 字段的派生 Logger。
func (l *Logger) Component(name string) *Logger {
	return l.With(Component(name))
}

// Stack 记录 Error 级别日志并附带当前 goroutine 的调用栈。
func (l *Logger) Stack(ctx context.Context, msg string, attrs ...slog.Attr) {
	if !l.Enabled(ctx, slog.LevelError) {
		return
	}
	attrs = append(attrs, slog.String(KeyStack, string(debug.Stack())))
	l.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}
