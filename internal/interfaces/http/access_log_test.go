package http_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/npochettino/sales-management-api/internal/interfaces/http"
	"github.com/npochettino/sales-management-api/pkg/logger"
)

func accessLogLine(t *testing.T, path string) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "test", Level: "debug", Output: &buf})

	app := fiber.New()
	app.Use(requestid.New(requestid.Config{Generator: func() string { return "req-1" }}))
	app.Use(apphttp.AccessLog(log))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/falla", func(c *fiber.Ctx) error { return fiber.ErrBadRequest })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
	require.NoError(t, err)
	_ = resp.Body.Close()

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	return line
}

func TestAccessLog_RegistraRequest(t *testing.T) {
	line := accessLogLine(t, "/ok")
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/ok", line["path"])
	assert.EqualValues(t, 200, line["status"])
	assert.Equal(t, "request", line["message"])
}

func TestAccessLog_ErrorDelHandlerUsaStatusFinal(t *testing.T) {
	line := accessLogLine(t, "/falla")
	assert.Equal(t, "warn", line["level"])
	assert.EqualValues(t, 400, line["status"])
	assert.Equal(t, "request rechazado", line["message"])
}
