package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps uploads on the local filesystem under a root directory.
// The HTTP server exposes the root at the configured base URL.
type LocalStore struct {
	root    string
	baseURL string
}

func NewLocalStore(root, baseURL string) *LocalStore {
	if !filepath.IsAbs(root) {
		cwd, _ := os.Getwd()
		root = filepath.Join(cwd, root)
	}
	return &LocalStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Root returns the absolute directory uploads are written to. The server
// mounts a file server here for the /uploads route.
func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) abs(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}

func (s *LocalStore) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	full := s.abs(key)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("storage/local: mkdir: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("storage/local: create %s: %w", key, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return "", fmt.Errorf("storage/local: write %s: %w", key, err)
	}

	return s.baseURL + "/" + key, nil
}

func (s *LocalStore) Delete(ctx context.Context, fileURL string) error {
	key, err := keyFromURL(fileURL, s.baseURL)
	if err != nil {
		return err
	}

	if err := os.Remove(s.abs(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage/local: delete %s: %w", key, err)
	}
	return nil
}
