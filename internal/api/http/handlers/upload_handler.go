package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/eftah/restaurant-service/internal/api/dto"
	"github.com/eftah/restaurant-service/internal/auth"
	"github.com/eftah/restaurant-service/internal/events"
	"github.com/eftah/restaurant-service/internal/upload"
	apperrors "github.com/eftah/restaurant-service/pkg/util"
)

// UploadHandler exposes the image upload/delete boundary to the admin UI.
type UploadHandler struct {
	uploads    *upload.Service
	dispatcher events.Dispatcher
}

// NewUploadHandler constructs handler.
func NewUploadHandler(uploads *upload.Service, dispatcher events.Dispatcher) *UploadHandler {
	return &UploadHandler{uploads: uploads, dispatcher: dispatcher}
}

// Store handles POST /api/upload (multipart, single "file" field).
func (h *UploadHandler) Store(c *fiber.Ctx) error {
	// The route gate already ran; re-check the role inside the mutating
	// handler as well.
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || !principal.IsAdmin() {
		return apperrors.NewUnauthorized("admin access required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("no file provided", nil)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewValidationError("unreadable file", nil)
	}
	defer f.Close() //nolint:errcheck

	data, err := io.ReadAll(f)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	asset, err := h.uploads.Store(c.UserContext(), upload.Upload{
		Filename: fileHeader.Filename,
		Data:     data,
	})
	if err != nil {
		return err
	}

	_ = h.dispatcher.Publish(c.UserContext(), events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAssetUploaded,
		Timestamp: time.Now(),
		Payload:   events.AssetPayload{URL: asset.PublicURL},
	})

	return c.JSON(dto.UploadResponse{URL: asset.PublicURL})
}

// Delete handles DELETE /api/upload.
func (h *UploadHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || !principal.IsAdmin() {
		return apperrors.NewUnauthorized("admin access required")
	}

	var req dto.DeleteUploadRequest
	if err := c.BodyParser(&req); err != nil || req.URL == "" {
		return apperrors.NewValidationError("url is required", nil)
	}

	if err := h.uploads.Delete(c.UserContext(), req.URL); err != nil {
		return err
	}

	_ = h.dispatcher.Publish(c.UserContext(), events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAssetDeleted,
		Timestamp: time.Now(),
		Payload:   events.AssetPayload{URL: req.URL},
	})

	return c.SendStatus(http.StatusNoContent)
}
