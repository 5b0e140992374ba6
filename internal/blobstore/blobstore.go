package blobstore

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/eftah/restaurant-service/internal/config"
)

// Store is durable, URL-addressable byte storage. Implementations must be
// safe for concurrent use; each call owns its own connection lifecycle.
type Store interface {
	Put(ctx context.Context, name string, r io.Reader, size int64) error
	Exists(ctx context.Context, name string) (bool, error)
	Remove(ctx context.Context, name string) error
}

// New selects a backend from configuration.
func New(cfg config.UploadConfig, logger *zap.Logger) (Store, error) {
	switch cfg.Backend {
	case config.UploadBackendLocal:
		return NewLocalStore(cfg.LocalDir), nil
	case config.UploadBackendS3:
		return NewS3Store(cfg.S3, logger)
	case config.UploadBackendFTP, "":
		return NewFTPStore(cfg.FTP, logger), nil
	default:
		return nil, fmt.Errorf("unknown upload backend %q", cfg.Backend)
	}
}
