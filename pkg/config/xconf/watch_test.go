package xconf

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_ReloadOnChange(t *testing.T) {
	path := writeFile(t, "config.yaml", "log:\n  level: info\n")
	cfg, err := New(path)
	require.NoError(t, err)

	var (
		mu      sync.Mutex
		reloads int
		lastErr error
	)
	w, err := Watch(cfg, func(c Config, err error) {
		mu.Lock()
		defer mu.Unlock()
		reloads++
		lastErr = err
	}, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// 等待 Run 进入事件循环
	require.Eventually(t, w.running.Load, time.Second, time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600))

	require.Eventually(t, func() bool {
		return cfg.Client().String("log.level") == "debug"
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	assert.GreaterOrEqual(t, reloads, 1)
	assert.NoError(t, lastErr)
	mu.Unlock()

	assert.ErrorIs(t, w.Run(context.Background()), ErrWatcherRunning)
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	path := writeFile(t, "config.yaml", "a: 1\n")
	cfg, err := New(path)
	require.NoError(t, err)

	called := make(chan struct{}, 1)
	w, err := Watch(cfg, func(Config, error) {
		select {
		case called <- struct{}{}:
		default:
		}
	}, WithDebounce(10*time.Millisecond), WithDebounce(0))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- w.Run(context.Background()) }()
	require.Eventually(t, w.running.Load, time.Second, time.Millisecond)

	other := path + ".bak"
	require.NoError(t, os.WriteFile(other, []byte("a: 2\n"), 0o600))

	select {
	case <-called:
		t.Fatal("callback fired for unrelated file")
	case <-time.After(3 * DefaultDebounce):
	}

	// Close 让运行中的 Run 返回
	require.NoError(t, w.Close())
	require.NoError(t, <-done)
	require.NoError(t, w.Close())
}

func TestWatch_Errors(t *testing.T) {
	cfg, err := NewFromBytes([]byte("a: 1"), FormatYAML)
	require.NoError(t, err)
	_, err = Watch(cfg, nil)
	assert.ErrorIs(t, err, ErrNotReloadable)

	_, err = Watch(fakeConfig{}, nil)
	assert.Error(t, err)
}

type fakeConfig struct{ Config }

func TestIsConfigChange(t *testing.T) {
	ev := func(name string, op fsnotify.Op) fsnotify.Event {
		return fsnotify.Event{Name: name, Op: op}
	}
	assert.True(t, isConfigChange(ev("/etc/x/config.yaml", fsnotify.Write), "config.yaml"))
	assert.True(t, isConfigChange(ev("/etc/x/config.yaml", fsnotify.Create), "config.yaml"))
	assert.True(t, isConfigChange(ev("/etc/x/config.yaml", fsnotify.Rename), "config.yaml"))
	assert.False(t, isConfigChange(ev("/etc/x/config.yaml", fsnotify.Chmod), "config.yaml"))
	assert.False(t, isConfigChange(ev("/etc/x/other.yaml", fsnotify.Write), "config.yaml"))
}
