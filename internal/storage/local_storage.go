package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage 将照片写入本地目录，该目录同时挂载在公开 URL 前缀下
type LocalStorage struct {
	*bucketStorage
	baseDir string
}

// NewLocalStorage 创建本地存储，目录不存在时自动创建
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	baseDir = strings.TrimSpace(baseDir)
	if baseDir == "" {
		baseDir = "public/uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStorage{
		bucketStorage: newBucketStorage("local", diskObjects{root: baseDir}, ""),
		baseDir:       baseDir,
	}, nil
}

// LocalBaseDir 返回静态文件根目录
func (s *LocalStorage) LocalBaseDir() string {
	return s.baseDir
}

type diskObjects struct {
	root string
}

func (d diskObjects) path(key string) string {
	return filepath.Join(d.root, filepath.FromSlash(key))
}

func (d diskObjects) put(_ context.Context, key string, data []byte, _ string) error {
	target := d.path(key)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}

func (d diskObjects) exists(_ context.Context, key string) (bool, error) {
	info, err := os.Stat(d.path(key))
	switch {
	case err == nil:
		return !info.IsDir(), nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

func (d diskObjects) remove(_ context.Context, key string) error {
	return os.Remove(d.path(key))
}

var _ LocalBaseDirProvider = (*LocalStorage)(nil)
