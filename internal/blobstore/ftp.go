package blobstore

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/jlaffaye/ftp"
	"go.uber.org/zap"

	"github.com/eftah/restaurant-service/internal/config"
)

// ftpConn is the slice of *ftp.ServerConn the store needs; narrowed so tests
// can substitute a fake connection.
type ftpConn interface {
	MakeDir(path string) error
	Stor(path string, r io.Reader) error
	FileSize(path string) (int64, error)
	Delete(path string) error
	Quit() error
}

type ftpDialFunc func(ctx context.Context, cfg config.FTPConfig) (ftpConn, error)

// FTPStore persists files on a remote FTP server. Connections are scoped to a
// single call; only connection establishment is retried, a failure
// mid-transfer is terminal for that call.
type FTPStore struct {
	cfg    config.FTPConfig
	dial   ftpDialFunc
	logger *zap.Logger
}

// NewFTPStore builds the store. It does not connect; connections are opened
// per operation.
func NewFTPStore(cfg config.FTPConfig, logger *zap.Logger) *FTPStore {
	return &FTPStore{cfg: cfg, dial: dialFTP, logger: logger}
}

func dialFTP(ctx context.Context, cfg config.FTPConfig) (ftpConn, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	conn, err := ftp.Dial(addr, ftp.DialWithContext(ctx), ftp.DialWithTimeout(cfg.ConnTimeout()))
	if err != nil {
		return nil, err
	}
	if err := conn.Login(cfg.User, cfg.Password); err != nil {
		_ = conn.Quit()
		return nil, err
	}
	return conn, nil
}

func (s *FTPStore) connect(ctx context.Context) (ftpConn, error) {
	attempts := s.cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.cfg.RetryDelay()):
			}
		}
		conn, err := s.dial(ctx, s.cfg)
		if err == nil {
			return conn, nil
		}
		lastErr = err
		s.logger.Warn("ftp connect failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.Error(err))
	}
	return nil, fmt.Errorf("ftp connect after %d attempts: %w", attempts, lastErr)
}

// Put streams r to the configured upload directory under name.
func (s *FTPStore) Put(ctx context.Context, name string, r io.Reader, _ int64) error {
	conn, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Quit() //nolint:errcheck

	// MakeDir fails when the directory already exists; that is fine.
	_ = conn.MakeDir(s.cfg.UploadDir)

	return conn.Stor(s.remotePath(name), r)
}

// Exists probes the file with SIZE. A failed probe means absent; only a
// failed connection is an error.
func (s *FTPStore) Exists(ctx context.Context, name string) (bool, error) {
	conn, err := s.connect(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Quit() //nolint:errcheck

	if _, err := conn.FileSize(s.remotePath(name)); err != nil {
		return false, nil
	}
	return true, nil
}

// Remove deletes the remote file.
func (s *FTPStore) Remove(ctx context.Context, name string) error {
	conn, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Quit() //nolint:errcheck

	return conn.Delete(s.remotePath(name))
}

func (s *FTPStore) remotePath(name string) string {
	return path.Join(s.cfg.UploadDir, name)
}
