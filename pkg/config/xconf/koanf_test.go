package xconf

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name string `koanf:"name"`
	Port int    `koanf:"port"`
}

const sampleYAML = `
server:
  name: hello
  port: 7878
`

const sampleJSON = `{"server": {"name": "hello", "port": 7878}}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNew_Formats(t *testing.T) {
	tests := []struct {
		file    string
		content string
		format  Format
	}{
		{"config.yaml", sampleYAML, FormatYAML},
		{"config.YML", sampleYAML, FormatYAML},
		{"config.json", sampleJSON, FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			cfg, err := New(path)
			require.NoError(t, err)

			assert.Equal(t, tt.format, cfg.Format())
			assert.Equal(t, path, cfg.Path())
			assert.Equal(t, "hello", cfg.Client().String("server.name"))

			var s sample
			require.NoError(t, cfg.Unmarshal("server", &s))
			assert.Equal(t, sample{Name: "hello", Port: 7878}, s)
		})
	}
}

func TestNew_Errors(t *testing.T) {
	_, err := New("")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = New("config.toml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = New(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrLoadFailed)

	_, err = New(writeFile(t, "bad.json", "{not json"))
	assert.ErrorIs(t, err, ErrParseFailed)
}

func TestNewFromBytes(t *testing.T) {
	cfg, err := NewFromBytes([]byte(sampleYAML), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, cfg.Path())
	assert.Equal(t, 7878, cfg.Client().Int("server.port"))
	assert.ErrorIs(t, cfg.Reload(), ErrNotReloadable)

	empty, err := NewFromBytes(nil, FormatJSON)
	require.NoError(t, err)
	s := sample{Name: "keep"}
	require.NoError(t, empty.Unmarshal("", &s))
	assert.Equal(t, "keep", s.Name)

	_, err = NewFromBytes([]byte("a: b"), Format("toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestUnmarshal_WithTag(t *testing.T) {
	type tagged struct {
		Name string `cfg:"name"`
	}
	cfg, err := NewFromBytes([]byte(sampleJSON), FormatJSON, WithTag("cfg"), WithTag(""), nil)
	require.NoError(t, err)

	var v tagged
	require.NoError(t, cfg.Unmarshal("server", &v))
	assert.Equal(t, "hello", v.Name)
}

func TestUnmarshal_Error(t *testing.T) {
	cfg, err := NewFromBytes([]byte(`{"server": {"port": "not-a-number"}}`), FormatJSON)
	require.NoError(t, err)

	var s sample
	assert.ErrorIs(t, cfg.Unmarshal("server", &s), ErrUnmarshalFailed)
}

func TestReload(t *testing.T) {
	path := writeFile(t, "config.yaml", sampleYAML)
	cfg, err := New(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("server:\n  name: reloaded\n"), 0o600))
	require.NoError(t, cfg.Reload())
	assert.Equal(t, "reloaded", cfg.Client().String("server.name"))

	// 解析失败时保留旧配置
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o600))
	assert.ErrorIs(t, cfg.Reload(), ErrParseFailed)
	assert.Equal(t, "reloaded", cfg.Client().String("server.name"))
}

func TestReload_Concurrent(t *testing.T) {
	path := writeFile(t, "config.yaml", sampleYAML)
	cfg, err := New(path)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			for range 20 {
				assert.NoError(t, cfg.Reload())
				var s sample
				assert.NoError(t, cfg.Unmarshal("server", &s))
				assert.Equal(t, "hello", s.Name)
			}
		})
	}
	wg.Wait()
}
