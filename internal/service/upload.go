package service

import (
	"context"
	"fmt"
	"io"

	"corpsite/internal/storage"

	"go.uber.org/zap"
)

// Upload carries one file from a multipart form into the storage port.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// putUpload stores an upload under a collection-scoped key and returns the
// public URL to record on the owning row.
func putUpload(ctx context.Context, store storage.Store, collection string, upload *Upload) (string, error) {
	key := storage.Key(collection, upload.Filename)
	url, err := store.Put(ctx, key, upload.ContentType, upload.Content)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	return url, nil
}

// discardFile deletes an orphaned file best-effort. The record mutation that
// orphaned the file already succeeded, so failures are logged and swallowed.
func discardFile(ctx context.Context, store storage.Store, logger *zap.Logger, fileURL string) {
	if fileURL == "" {
		return
	}
	if err := store.Delete(ctx, fileURL); err != nil {
		logger.Warn("Failed to delete stored file",
			zap.String("url", fileURL),
			zap.Error(err),
		)
	}
}
