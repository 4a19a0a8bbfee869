package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/powerrank/core"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, errs := LoadConfig("")
	require.Empty(t, errs)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 100, cfg.MaxIterations)
	assert.Equal(t, 1e-6, cfg.Tolerance)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := writeFile(t, "powerrank.yaml", `
redis_addr: redis:6379
redis_db: 2
key_prefix: budget
log_level: debug
timeout: 500ms
max_iterations: 50
tolerance: 0.0001
concurrency: 8
publish: true
`)
	t.Setenv("POWERRANK_REDIS_ADDR", "other:6380")
	t.Setenv("POWERRANK_CONCURRENCY", "3")

	cfg, errs := LoadConfig(path)
	require.Empty(t, errs)
	assert.Equal(t, "other:6380", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, "budget", cfg.KeyPrefix)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 500*time.Millisecond, cfg.Timeout)
	assert.Equal(t, 50, cfg.MaxIterations)
	assert.Equal(t, 0.0001, cfg.Tolerance)
	assert.Equal(t, 3, cfg.Concurrency)
	assert.True(t, cfg.Publish)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, errs := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Nil(t, cfg)
	require.Len(t, errs, 1)
}

func TestLoadConfig_CollectsErrors(t *testing.T) {
	path := writeFile(t, "bad.yaml", `
timeout: soon
max_iterations: 0
concurrency: 0
log_level: chatty
`)
	t.Setenv("POWERRANK_TOLERANCE", "tiny")
	t.Setenv("POWERRANK_PUBLISH", "maybe")

	_, errs := LoadConfig(path)
	// tolerance、publish、timeout 解析错误 + 迭代参数、并发、日志级别校验错误
	assert.Len(t, errs, 6)

	var sawInvalidParam bool
	for _, err := range errs {
		if core.IsInvalidParameter(err) {
			sawInvalidParam = true
		}
	}
	assert.True(t, sawInvalidParam)
	assert.Contains(t, errs, ErrInvalidConcurrency)
	assert.Contains(t, errs, ErrInvalidLogLevel)
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	assert.Empty(t, cfg.Validate())

	cfg.Timeout = 0
	assert.Equal(t, []error{ErrInvalidTimeout}, cfg.Validate())
}
