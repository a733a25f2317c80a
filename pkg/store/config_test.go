package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("TODO_CONFIG_PATH", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := loadConfig(viper.New())
	require.NoError(t, err)
	assert.Equal(t, DefaultKey, cfg.Key())
	assert.Equal(t, 300*time.Millisecond, cfg.SearchDebounce())
	assert.Equal(t, "und", cfg.Locale())
	assert.Equal(t, ".todo.db", filepath.Base(cfg.BasePath()))
	assert.NotEqual(t, byte('~'), cfg.BasePath()[0], "default path must be expanded")
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	data := []byte("path: " + filepath.Join(dir, "db") + "\nlocale: zh-CN\nsearch:\n  debounce: 150ms\nlog:\n  level: debug\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".todo.yaml"), data, 0o644))
	t.Setenv("TODO_CONFIG_PATH", dir)
	t.Chdir(t.TempDir())

	cfg, err := loadConfig(viper.New())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "db"), cfg.BasePath())
	assert.Equal(t, "zh-CN", cfg.Locale())
	assert.Equal(t, 150*time.Millisecond, cfg.SearchDebounce())
	assert.Equal(t, "debug", cfg.LogLevel())
}

func TestStaticConfigDefaults(t *testing.T) {
	var c StaticConfig
	assert.Equal(t, DefaultKey, c.Key())
	assert.Equal(t, "und", c.Locale())
	assert.Equal(t, 300*time.Millisecond, c.SearchDebounce())
}
