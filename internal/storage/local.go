// Package storage holds the object stores uploaded images are written to.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrInvalidKey = errors.New("invalid object key")

// LocalStore 将对象写入本地目录，并通过静态路由对外提供访问。
type LocalStore struct {
	dir     string
	urlPath string
}

// NewLocal creates the upload directory when needed.
func NewLocal(dir, urlPath string) (*LocalStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("upload dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, urlPath: "/" + strings.Trim(urlPath, "/")}, nil
}

// Dir is the directory served under the public URL path.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Put writes body to dir/key. Existing objects are never overwritten.
func (s *LocalStore) Put(ctx context.Context, key, _ string, body io.Reader, _ int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create object dir: %w", err)
	}

	file, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create object: %w", err)
	}
	if _, err := io.Copy(file, body); err != nil {
		file.Close()
		os.Remove(target)
		return fmt.Errorf("write object: %w", err)
	}
	return file.Close()
}

// PublicURL returns the path the static route serves key from.
func (s *LocalStore) PublicURL(key string) string {
	return s.urlPath + "/" + strings.TrimLeft(key, "/")
}

func (s *LocalStore) resolve(key string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(key))
	if key == "" || filepath.IsAbs(cleaned) || cleaned == "." || strings.HasPrefix(cleaned, "..") {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.dir, cleaned), nil
}
