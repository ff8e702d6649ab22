package filestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists uploaded files outside the database; documents keep
// only the returned key.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader) (key string, size int64, err error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Remove(ctx context.Context, key string) error
}

type diskStore struct {
	root string
}

func NewDiskStore(root string) (Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create file store root: %w", err)
	}
	return &diskStore{root: root}, nil
}

func (s *diskStore) Save(_ context.Context, name string, r io.Reader) (string, int64, error) {
	ext := filepath.Ext(name)
	key := uuid.NewString() + ext

	f, err := os.OpenFile(filepath.Join(s.root, key), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(f.Name())
		return "", 0, err
	}
	return key, size, nil
}

func (s *diskStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	// Keys are generated server-side; reject anything path-like anyway.
	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return nil, os.ErrNotExist
	}
	return os.Open(filepath.Join(s.root, key))
}

func (s *diskStore) Remove(_ context.Context, key string) error {
	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return os.ErrNotExist
	}
	return os.Remove(filepath.Join(s.root, key))
}
