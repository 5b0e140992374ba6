package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalStore writes files to a public directory on local disk. Used for
// single-host deployments where the web server fronts the directory itself.
type LocalStore struct {
	baseDir string
}

// NewLocalStore builds the store rooted at baseDir.
func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{baseDir: baseDir}
}

func (s *LocalStore) Put(_ context.Context, name string, r io.Reader, _ int64) error {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(s.baseDir, name))
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	if _, err := io.Copy(f, r); err != nil {
		return err
	}
	return f.Sync()
}

func (s *LocalStore) Exists(_ context.Context, name string) (bool, error) {
	if _, err := os.Stat(filepath.Join(s.baseDir, name)); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *LocalStore) Remove(_ context.Context, name string) error {
	err := os.Remove(filepath.Join(s.baseDir, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
