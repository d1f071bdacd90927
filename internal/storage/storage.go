// Package storage abstracts where uploaded images live. Two drivers exist:
// the local filesystem (served by the API itself under /uploads/) and
// S3-compatible object storage (AWS S3, MinIO, R2). Records hold the public
// URL returned by Put; Delete accepts that same URL back.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"corpsite/internal/config"
)

// Store is the blob storage port. Implementations must be safe for
// concurrent use.
type Store interface {
	// Put writes body under key and returns the public URL to record.
	Put(ctx context.Context, key string, contentType string, body io.Reader) (string, error)

	// Delete removes the object behind a previously returned URL. Deleting
	// something that is already gone is not an error.
	Delete(ctx context.Context, fileURL string) error
}

// New builds the store selected by configuration.
func New(cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "local", "":
		return NewLocalStore(cfg.LocalRoot, cfg.BaseURL), nil
	case "s3":
		return NewS3Store(cfg)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}

// Key builds the object key for an upload: collection-scoped and prefixed
// with the upload time in milliseconds so names never collide.
func Key(collection, filename string) string {
	return KeyAt(collection, filename, time.Now())
}

// KeyAt is Key with an explicit timestamp.
func KeyAt(collection, filename string, at time.Time) string {
	// Strip any path the client smuggled into the filename.
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "upload"
	}
	return fmt.Sprintf("%s/%d-%s", collection, at.UnixMilli(), name)
}

// keyFromURL maps a recorded public URL back to its object key. Returns an
// error when the URL does not belong to this store's base URL.
func keyFromURL(fileURL, baseURL string) (string, error) {
	trimmed := strings.TrimPrefix(fileURL, strings.TrimRight(baseURL, "/")+"/")
	if trimmed == fileURL {
		return "", errors.New("storage: url does not belong to this store")
	}
	return trimmed, nil
}
