package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eftah/restaurant-service/internal/config"
)

type fakeFTPConn struct {
	files     map[string][]byte
	storCalls int
	quitCalls int
}

func newFakeFTPConn() *fakeFTPConn {
	return &fakeFTPConn{files: map[string][]byte{}}
}

func (f *fakeFTPConn) MakeDir(string) error { return nil }

func (f *fakeFTPConn) Stor(path string, r io.Reader) error {
	f.storCalls++
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.files[path] = data
	return nil
}

func (f *fakeFTPConn) FileSize(path string) (int64, error) {
	data, ok := f.files[path]
	if !ok {
		return 0, errors.New("550 file not found")
	}
	return int64(len(data)), nil
}

func (f *fakeFTPConn) Delete(path string) error {
	if _, ok := f.files[path]; !ok {
		return errors.New("550 file not found")
	}
	delete(f.files, path)
	return nil
}

func (f *fakeFTPConn) Quit() error {
	f.quitCalls++
	return nil
}

func testFTPStore(conn *fakeFTPConn, failures int) (*FTPStore, *int) {
	store := NewFTPStore(config.FTPConfig{
		UploadDir:    "/uploads",
		MaxAttempts:  3,
		RetryDelayMS: 1,
	}, zap.NewNop())

	attempts := 0
	store.dial = func(context.Context, config.FTPConfig) (ftpConn, error) {
		attempts++
		if attempts <= failures {
			return nil, errors.New("connection refused")
		}
		return conn, nil
	}
	return store, &attempts
}

func TestPutRetriesConnectThenSucceeds(t *testing.T) {
	conn := newFakeFTPConn()
	store, attempts := testFTPStore(conn, 2)

	err := store.Put(context.Background(), "eftah-1-ab.jpg", bytes.NewReader([]byte("img")), 3)

	require.NoError(t, err)
	assert.Equal(t, 3, *attempts, "two failures then success on the third attempt")
	assert.Equal(t, 1, conn.storCalls)
	assert.Contains(t, conn.files, "/uploads/eftah-1-ab.jpg")
	assert.Equal(t, 1, conn.quitCalls, "connection released")
}

func TestPutFailsAfterRetryExhaustion(t *testing.T) {
	conn := newFakeFTPConn()
	store, attempts := testFTPStore(conn, 3)

	err := store.Put(context.Background(), "eftah-1-ab.jpg", bytes.NewReader([]byte("img")), 3)

	require.Error(t, err)
	assert.Equal(t, 3, *attempts)
	assert.Equal(t, 0, conn.storCalls, "no partial write")
}

func TestExistsTreatsProbeFailureAsAbsent(t *testing.T) {
	conn := newFakeFTPConn()
	store, _ := testFTPStore(conn, 0)

	ok, err := store.Exists(context.Background(), "missing.jpg")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExistsSurfacesConnectFailure(t *testing.T) {
	conn := newFakeFTPConn()
	store, _ := testFTPStore(conn, 3)

	_, err := store.Exists(context.Background(), "whatever.jpg")

	require.Error(t, err)
}

func TestRemoveDeletesStoredFile(t *testing.T) {
	conn := newFakeFTPConn()
	conn.files["/uploads/eftah-1-ab.jpg"] = []byte("img")
	store, _ := testFTPStore(conn, 0)

	require.NoError(t, store.Remove(context.Background(), "eftah-1-ab.jpg"))
	assert.Empty(t, conn.files)
}

func TestConnectRespectsContextCancellation(t *testing.T) {
	conn := newFakeFTPConn()
	store, attempts := testFTPStore(conn, 3)
	store.cfg.RetryDelayMS = 1000

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Put(ctx, "a.jpg", bytes.NewReader(nil), 0)

	require.Error(t, err)
	assert.Equal(t, 1, *attempts, "cancellation stops further attempts")
}
