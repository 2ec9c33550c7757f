package config

import (
	"os"
	"path/filepath"
	"testing"
)

func testConfigPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join("testdata", name)
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("写入临时配置失败: %v", err)
	}
	return path
}

// setCredentials 注入一组合法的连接参数，并清空其它可能干扰测试的变量。
func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv(EnvRestURL, "https://example-12345.upstash.io")
	t.Setenv(EnvRestToken, "token")
	t.Setenv(EnvCacheDir, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogFile, "")
}
