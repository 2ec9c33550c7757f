package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/any-hub/cacheup/internal/config"
)

// setEnv 注入连接参数与缓存目录，空字符串表示清空对应变量。
func setEnv(t *testing.T, url, token, cacheDir string) {
	t.Helper()
	t.Setenv("CACHEUP_CONFIG", "")
	t.Setenv(config.EnvRestURL, url)
	t.Setenv(config.EnvRestToken, token)
	t.Setenv(config.EnvCacheDir, cacheDir)
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvLogFile, "")
}

// writeCacheDir 在临时目录下创建 cache/ 并写入文件，返回 cache 目录。
func writeCacheDir(t *testing.T, files map[string]string) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "cache")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("创建缓存目录失败: %v", err)
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("创建目录失败: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("写入缓存文件失败: %v", err)
		}
	}
	return root
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(file, []byte(strings.TrimSpace(content)), 0o600); err != nil {
		t.Fatalf("写入配置失败: %v", err)
	}
	return file
}
