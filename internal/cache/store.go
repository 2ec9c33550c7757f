package cache

import (
	"context"
	"errors"
	"strings"
)

// KeyPrefix 是所有远端 key 的固定前缀，与 Node 端读取缓存时使用的相对路径一致。
const KeyPrefix = "./"

// Store 负责列举与读取本地缓存文件。目录布局遵循：
//
//	<parent>/<root>/<sub>/<file>    => key "./<root>/<sub>/<file>"
//
// 每次运行重新列举，不在内存外保留任何状态。
type Store interface {
	// List 递归列出根目录下的全部文件，按 Key 升序返回。根目录不存在时返回空列表。
	List(ctx context.Context) ([]Entry, error)

	// Read 读取条目全文并去掉首尾空白。内容必须是合法 UTF-8。
	Read(ctx context.Context, entry Entry) (string, error)
}

// Entry 表示一次运行中的缓存条目，运行期间不可变。
type Entry struct {
	Key  string `json:"key"`
	Path string `json:"path"`
}

// Rel 返回去掉 "./" 前缀后的相对路径，SkipSet 以此匹配。
func (e Entry) Rel() string {
	return strings.TrimPrefix(e.Key, KeyPrefix)
}

// ErrInvalidUTF8 表示缓存文件不是 UTF-8 文本。
var ErrInvalidUTF8 = errors.New("content is not valid UTF-8")
