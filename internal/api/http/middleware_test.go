package http

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eftah/restaurant-service/internal/observability"
	apperrors "github.com/eftah/restaurant-service/pkg/util"
)

func errorApp() *fiber.App {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), time.Second)

	app.Get("/boom", func(c *fiber.Ctx) error {
		return apperrors.NewValidationError("name is required", map[string]any{"field": "name"})
	})
	app.Get("/storage", func(c *fiber.Ctx) error {
		return apperrors.NewTransportError(assert.AnError)
	})
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("unexpected")
	})
	return app
}

type errorEnvelope struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details"`
}

func decodeEnvelope(t *testing.T, app *fiber.App, path string) (int, errorEnvelope) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	var envelope errorEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp.StatusCode, envelope
}

func TestRequestTimeoutDeadlineReachesHandlers(t *testing.T) {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 50*time.Millisecond)

	var hasDeadline bool
	var remaining time.Duration
	app.Get("/slow", func(c *fiber.Ctx) error {
		// Handlers hand c.UserContext() to services, so the configured
		// per-request deadline must live there.
		deadline, ok := c.UserContext().Deadline()
		hasDeadline = ok
		remaining = time.Until(deadline)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/slow", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, hasDeadline)
	assert.Greater(t, remaining, time.Duration(0))
	assert.LessOrEqual(t, remaining, 50*time.Millisecond)
}

func TestErrorMiddlewareMapsDomainErrors(t *testing.T) {
	app := errorApp()

	status, envelope := decodeEnvelope(t, app, "/boom")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, apperrors.CodeValidationFailed, envelope.Code)
	assert.Equal(t, "name is required", envelope.Error)
	assert.Equal(t, "name", envelope.Details["field"])
}

func TestErrorMiddlewareHidesTransportCause(t *testing.T) {
	app := errorApp()

	status, envelope := decodeEnvelope(t, app, "/storage")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, apperrors.CodeTransportFailed, envelope.Code)
	assert.NotContains(t, envelope.Error, assert.AnError.Error())
}

func TestErrorMiddlewareRecoversPanics(t *testing.T) {
	app := errorApp()

	status, envelope := decodeEnvelope(t, app, "/panic")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, apperrors.CodeInternalError, envelope.Code)
}
