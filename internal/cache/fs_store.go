package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

// NewStore 以 root 为缓存根目录构建只读 Store。目录可以暂不存在。
func NewStore(root string) (Store, error) {
	if root == "" {
		return nil, errors.New("cache root required")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve cache root: %w", err)
	}

	return &fileStore{
		root:   abs,
		parent: filepath.Dir(abs),
	}, nil
}

// fileStore 的 key 相对 parent 计算，因此 key 总是以根目录名开头。
type fileStore struct {
	root   string
	parent string
}

func (s *fileStore) List(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if p == s.root {
				if errors.Is(walkErr, fs.ErrNotExist) {
					return fs.SkipAll
				}
				return walkErr
			}
			// 子目录不可读时跳过，与其它目录的列举互不影响。
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(p); err == nil && info.IsDir() {
				return nil
			}
		}

		key, err := s.keyFor(p)
		if err != nil {
			return err
		}
		entries = append(entries, Entry{Key: key, Path: p})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list cache root %s: %w", s.root, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
	return entries, nil
}

func (s *fileStore) Read(ctx context.Context, entry Entry) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	data, err := os.ReadFile(entry.Path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", entry.Path, ErrInvalidUTF8)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *fileStore) keyFor(p string) (string, error) {
	rel, err := filepath.Rel(s.parent, p)
	if err != nil {
		return "", fmt.Errorf("relative path for %s: %w", p, err)
	}
	return KeyPrefix + filepath.ToSlash(rel), nil
}
