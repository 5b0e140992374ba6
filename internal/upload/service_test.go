package upload

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eftah/restaurant-service/internal/config"
	"github.com/eftah/restaurant-service/internal/observability"
	apperrors "github.com/eftah/restaurant-service/pkg/util"
)

var namePattern = regexp.MustCompile(`^eftah-\d+-[0-9a-f]{32}\.jpg$`)

type spyStore struct {
	putErr    error
	existsErr error
	removeErr error

	putCalls    int
	existsCalls int
	removeCalls int

	objects map[string][]byte
}

func newSpyStore() *spyStore {
	return &spyStore{objects: map[string][]byte{}}
}

func (s *spyStore) Put(_ context.Context, name string, r io.Reader, _ int64) error {
	s.putCalls++
	if s.putErr != nil {
		return s.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[name] = data
	return nil
}

func (s *spyStore) Exists(_ context.Context, name string) (bool, error) {
	s.existsCalls++
	if s.existsErr != nil {
		return false, s.existsErr
	}
	_, ok := s.objects[name]
	return ok, nil
}

func (s *spyStore) Remove(_ context.Context, name string) error {
	s.removeCalls++
	if s.removeErr != nil {
		return s.removeErr
	}
	delete(s.objects, name)
	return nil
}

func testConfig() config.UploadConfig {
	return config.UploadConfig{
		Backend:       "spy",
		MaxSizeBytes:  1 << 20,
		MaxWidth:      1000,
		MaxHeight:     1000,
		JPEGQuality:   80,
		PublicBaseURL: "https://cdn.example.com/uploads",
	}
}

func newTestService(store *spyStore, cfg config.UploadConfig) *Service {
	return NewService(store, cfg, zap.NewNop(), observability.NewMetrics())
}

func makePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestStoreRejectsOversizedFile(t *testing.T) {
	store := newSpyStore()
	cfg := testConfig()
	cfg.MaxSizeBytes = 128
	svc := newTestService(store, cfg)

	_, err := svc.Store(context.Background(), Upload{
		Filename: "big.png",
		Data:     make([]byte, 256),
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
	assert.Equal(t, 0, store.putCalls, "no remote call on validation failure")
}

func TestStoreRejectsDisallowedExtension(t *testing.T) {
	store := newSpyStore()
	svc := newTestService(store, testConfig())

	for _, name := range []string{"clip.gif", "doc.pdf", "movie.mp4", "noext"} {
		_, err := svc.Store(context.Background(), Upload{Filename: name, Data: makePNG(t, 4, 4)})
		require.Error(t, err, name)
		assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed), name)
	}
	assert.Equal(t, 0, store.putCalls)
}

func TestStoreRejectsCorruptImage(t *testing.T) {
	store := newSpyStore()
	svc := newTestService(store, testConfig())

	_, err := svc.Store(context.Background(), Upload{Filename: "fake.jpg", Data: []byte("not an image")})

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeValidationFailed))
	assert.Equal(t, 0, store.putCalls)
}

func TestStoreReturnsPublicURLWithGeneratedName(t *testing.T) {
	store := newSpyStore()
	svc := newTestService(store, testConfig())

	asset, err := svc.Store(context.Background(), Upload{Filename: "photo.png", Data: makePNG(t, 40, 30)})

	require.NoError(t, err)
	require.True(t, strings.HasPrefix(asset.PublicURL, "https://cdn.example.com/uploads/"))
	assert.Equal(t, "https://cdn.example.com/uploads/"+asset.Filename, asset.PublicURL)
	assert.Regexp(t, namePattern, asset.Filename)
	assert.Equal(t, 1, store.putCalls)
	assert.Contains(t, store.objects, asset.Filename)
	assert.Equal(t, int64(len(store.objects[asset.Filename])), asset.SizeBytes)
}

func TestStoreOutputExtensionIsCanonical(t *testing.T) {
	store := newSpyStore()
	svc := newTestService(store, testConfig())

	// png in, jpg out regardless of input extension
	asset, err := svc.Store(context.Background(), Upload{Filename: "photo.PNG", Data: makePNG(t, 10, 10)})

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(asset.Filename, ".jpg"))
	assert.True(t, strings.HasSuffix(asset.PublicURL, ".jpg"))
}

func TestStoreFitsBoundingBoxPreservingAspect(t *testing.T) {
	store := newSpyStore()
	svc := newTestService(store, testConfig())

	asset, err := svc.Store(context.Background(), Upload{Filename: "wide.png", Data: makePNG(t, 2000, 500)})
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(store.objects[asset.Filename]))
	require.NoError(t, err)
	assert.Equal(t, 1000, img.Bounds().Dx())
	assert.Equal(t, 250, img.Bounds().Dy())
}

func TestStoreNeverUpscales(t *testing.T) {
	store := newSpyStore()
	svc := newTestService(store, testConfig())

	asset, err := svc.Store(context.Background(), Upload{Filename: "small.png", Data: makePNG(t, 12, 8)})
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(store.objects[asset.Filename]))
	require.NoError(t, err)
	assert.Equal(t, 12, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
}

func TestStoreReportsTransportFailure(t *testing.T) {
	store := newSpyStore()
	store.putErr = errors.New("connection reset")
	svc := newTestService(store, testConfig())

	_, err := svc.Store(context.Background(), Upload{Filename: "photo.jpg", Data: makePNG(t, 10, 10)})

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeTransportFailed))
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := newSpyStore()
	svc := newTestService(store, testConfig())

	asset, err := svc.Store(context.Background(), Upload{Filename: "photo.png", Data: makePNG(t, 10, 10)})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), asset.PublicURL))
	assert.Equal(t, 1, store.removeCalls)

	// second delete observes "already absent" and does not error
	require.NoError(t, svc.Delete(context.Background(), asset.PublicURL))
	assert.Equal(t, 1, store.removeCalls)
}

func TestDeleteReportsTransportFailure(t *testing.T) {
	store := newSpyStore()
	store.existsErr = errors.New("no route to host")
	svc := newTestService(store, testConfig())

	err := svc.Delete(context.Background(), "https://cdn.example.com/uploads/eftah-1-aa.jpg")

	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeTransportFailed))
}

func TestGeneratedNamesAreUnique(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		name, err := generateFilename()
		require.NoError(t, err)
		assert.Regexp(t, namePattern, name)
		_, dup := seen[name]
		assert.False(t, dup)
		seen[name] = struct{}{}
	}
}
