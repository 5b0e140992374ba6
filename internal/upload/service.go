package upload

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"

	"github.com/eftah/restaurant-service/internal/blobstore"
	"github.com/eftah/restaurant-service/internal/config"
	"github.com/eftah/restaurant-service/internal/domain"
	"github.com/eftah/restaurant-service/internal/observability"
	apperrors "github.com/eftah/restaurant-service/pkg/util"
)

const (
	namePrefix = "eftah"
	outputExt  = ".jpg"
	randomLen  = 16
)

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

// Upload is one client-supplied image awaiting processing.
type Upload struct {
	Filename string
	Data     []byte
}

// Service turns client images into safe, size-bounded, uniquely named assets
// behind a public URL. Calls are independent; the service holds no mutable
// state, so concurrent uploads need no coordination.
type Service struct {
	store   blobstore.Store
	cfg     config.UploadConfig
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewService builds the service.
func NewService(store blobstore.Store, cfg config.UploadConfig, logger *zap.Logger, metrics *observability.Metrics) *Service {
	return &Service{store: store, cfg: cfg, logger: logger, metrics: metrics}
}

// Store validates, re-encodes and persists the image, returning the stored
// asset. Validation failures happen before any remote call.
func (s *Service) Store(ctx context.Context, up Upload) (*domain.StoredAsset, error) {
	if err := s.validate(up); err != nil {
		return nil, err
	}

	encoded, err := s.process(up.Data)
	if err != nil {
		return nil, err
	}

	name, err := generateFilename()
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	if err := s.store.Put(ctx, name, bytes.NewReader(encoded), int64(len(encoded))); err != nil {
		s.metrics.RecordUpload(s.cfg.Backend, "error")
		s.logger.Error("upload transfer failed",
			zap.String("filename", name),
			zap.Error(err))
		return nil, apperrors.NewTransportError(err)
	}

	s.metrics.RecordUpload(s.cfg.Backend, "ok")
	return &domain.StoredAsset{
		Filename:  name,
		PublicURL: s.publicURL(name),
		SizeBytes: int64(len(encoded)),
	}, nil
}

// Delete removes a previously stored asset by its public URL. A file that is
// already absent is not an error.
func (s *Service) Delete(ctx context.Context, fileURL string) error {
	name := basename(fileURL)
	if name == "" {
		return apperrors.NewValidationError("invalid file url", nil)
	}

	ctx, cancel := s.opContext(ctx)
	defer cancel()

	exists, err := s.store.Exists(ctx, name)
	if err != nil {
		s.logger.Error("delete existence check failed",
			zap.String("filename", name),
			zap.Error(err))
		return apperrors.NewTransportError(err)
	}
	if !exists {
		return nil
	}

	if err := s.store.Remove(ctx, name); err != nil {
		s.logger.Error("delete failed",
			zap.String("filename", name),
			zap.Error(err))
		return apperrors.NewTransportError(err)
	}
	return nil
}

func (s *Service) validate(up Upload) error {
	if int64(len(up.Data)) > s.cfg.MaxSizeBytes {
		return apperrors.NewValidationError(
			fmt.Sprintf("file size exceeds the maximum limit of %d MB", s.cfg.MaxSizeBytes/(1024*1024)),
			map[string]any{"max_bytes": s.cfg.MaxSizeBytes},
		)
	}

	ext := strings.ToLower(path.Ext(up.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return apperrors.NewValidationError(
			"only JPG, PNG and WebP files are allowed",
			map[string]any{"extension": ext},
		)
	}
	return nil
}

// process decodes the image and re-encodes it as a quality-bounded JPEG that
// fits the configured bounding box. Smaller images are never upscaled.
func (s *Service) process(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewValidationError("unsupported or corrupted image", nil)
	}

	bounds := img.Bounds()
	if bounds.Dx() > s.cfg.MaxWidth || bounds.Dy() > s.cfg.MaxHeight {
		img = imaging.Fit(img, s.cfg.MaxWidth, s.cfg.MaxHeight, imaging.Lanczos)
	}

	quality := s.cfg.JPEGQuality
	if quality <= 0 || quality > 100 {
		quality = 80
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return buf.Bytes(), nil
}

func (s *Service) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.cfg.OperationTimeout()
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (s *Service) publicURL(name string) string {
	return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + name
}

// generateFilename produces a collision-resistant name: namespace tag, a
// millisecond timestamp and 16 cryptographically random bytes, with the
// canonical output extension.
func generateFilename() (string, error) {
	random := make([]byte, randomLen)
	if _, err := rand.Read(random); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%s%s", namePrefix, time.Now().UnixMilli(), hex.EncodeToString(random), outputExt), nil
}

func basename(fileURL string) string {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return ""
	}
	name := path.Base(parsed.Path)
	if name == "." || name == "/" {
		return ""
	}
	return name
}
