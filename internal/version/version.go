package version

import "fmt"

// Version/Commit 可在构建时通过 -ldflags 注入，默认使用开发占位符。
var (
	Version = "0.1.0"
	Commit  = "dev"
)

// Full 返回 CLI 打印用的完整版本串，例如 "cacheup 0.1.0 (dev)"。
func Full() string {
	return fmt.Sprintf("cacheup %s (%s)", Version, Commit)
}
