package hello

import (
	"embed"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/omeyang/xthreadpool/pkg/util/xlru"
)

//go:embed static/*.html
var builtin embed.FS

// pageStore 读取页面文件并缓存内容。
// 缓存的是读取结果：文件缺失时缓存内置页面，过期后重新读取。
type pageStore struct {
	root   string
	cache  *xlru.Cache[string, []byte]
	logger *slog.Logger
}

func newPageStore(root string, size int, ttl time.Duration, logger *slog.Logger) (*pageStore, error) {
	cache, err := xlru.New[string, []byte](xlru.Config{Size: size, TTL: ttl})
	if err != nil {
		return nil, err
	}
	return &pageStore{root: root, cache: cache, logger: logger}, nil
}

// load 返回页面内容，从不失败。
func (s *pageStore) load(name string) []byte {
	if body, ok := s.cache.Get(name); ok {
		return body
	}
	body := s.read(name)
	s.cache.Set(name, body)
	return body
}

func (s *pageStore) read(name string) []byte {
	if s.root != "" {
		body, err := os.ReadFile(filepath.Join(s.root, name))
		if err == nil {
			return body
		}
		s.logger.Debug("page not readable, using builtin",
			slog.String("page", name),
			slog.Any("error", err),
		)
	}
	body, err := builtin.ReadFile("static/" + name)
	if err != nil {
		return nil
	}
	return body
}

func (s *pageStore) close() {
	s.cache.Close()
}
