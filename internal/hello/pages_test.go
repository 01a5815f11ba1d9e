package hello

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPages(t *testing.T, root string, ttl time.Duration) *pageStore {
	t.Helper()
	s, err := newPageStore(root, 4, ttl, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(s.close)
	return s
}

func TestPageStore_Builtin(t *testing.T) {
	s := newTestPages(t, "", 0)
	assert.Contains(t, string(s.load(pageHello)), "<h1>Hello!</h1>")
	assert.Contains(t, string(s.load(pageNotFound)), "<h1>Oops!</h1>")
	assert.Nil(t, s.load("unknown.html"))
}

func TestPageStore_DocRoot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, pageHello), []byte("custom"), 0o600))

	s := newTestPages(t, dir, 0)
	assert.Equal(t, "custom", string(s.load(pageHello)))
	assert.Contains(t, string(s.load(pageNotFound)), "Oops!", "missing file falls back")
}

func TestPageStore_Cached(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, pageHello)
	require.NoError(t, os.WriteFile(file, []byte("v1"), 0o600))

	s := newTestPages(t, dir, 0)
	assert.Equal(t, "v1", string(s.load(pageHello)))

	require.NoError(t, os.WriteFile(file, []byte("v2"), 0o600))
	assert.Equal(t, "v1", string(s.load(pageHello)))
}

func TestPageStore_Expires(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, pageHello)
	require.NoError(t, os.WriteFile(file, []byte("v1"), 0o600))

	s := newTestPages(t, dir, 20*time.Millisecond)
	assert.Equal(t, "v1", string(s.load(pageHello)))

	require.NoError(t, os.WriteFile(file, []byte("v2"), 0o600))
	assert.Eventually(t, func() bool {
		return string(s.load(pageHello)) == "v2"
	}, time.Second, 10*time.Millisecond)
}
