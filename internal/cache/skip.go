package cache

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// LegacySkips 是旧版篮球/足球数据布局留下的 key，Node 端不再读取，始终跳过。
var LegacySkips = []string{
	"cache/basketball/games",
	"cache/basketball/leagues",
	"cache/football/leagues",
}

// SkipSet 判断相对路径是否应跳过上传。普通条目按全等匹配，
// 含 glob 元字符的条目按 doublestar 语义匹配（支持 **）。
type SkipSet struct {
	exact    map[string]struct{}
	patterns []string
}

// NewSkipSet 返回包含 LegacySkips 以及 extra 的集合。
func NewSkipSet(extra ...string) SkipSet {
	set := SkipSet{exact: make(map[string]struct{}, len(LegacySkips)+len(extra))}
	for _, rel := range LegacySkips {
		set.exact[rel] = struct{}{}
	}
	for _, item := range extra {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if isPattern(item) {
			set.patterns = append(set.patterns, item)
			continue
		}
		set.exact[item] = struct{}{}
	}
	return set
}

// Contains 报告 rel（不含 "./" 前缀）是否在集合中。
func (s SkipSet) Contains(rel string) bool {
	if _, ok := s.exact[rel]; ok {
		return true
	}
	for _, pattern := range s.patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// Len 返回全等条目与 glob 条目的总数。
func (s SkipSet) Len() int {
	return len(s.exact) + len(s.patterns)
}

func isPattern(item string) bool {
	return strings.ContainsAny(item, `*?[{\`)
}
