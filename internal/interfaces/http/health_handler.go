package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger verifica que el backend de almacenamiento responda.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse cuerpo de GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Storage string `json:"storage"`
	Error   string `json:"error,omitempty"`
}

// HealthHandler responde el estado del servicio y su almacenamiento.
type HealthHandler struct {
	pinger  Pinger
	service string
	storage string
	timeout time.Duration
}

// NewHealthHandler pinger nil se considera siempre sano.
func NewHealthHandler(pinger Pinger, service, storage string) *HealthHandler {
	return &HealthHandler{pinger: pinger, service: service, storage: storage, timeout: 2 * time.Second}
}

// Check godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	resp := HealthResponse{Status: "ok", Service: h.service, Storage: h.storage}
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
		defer cancel()
		if err := h.pinger.Ping(ctx); err != nil {
			resp.Status = "unavailable"
			resp.Error = err.Error()
			return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
		}
	}
	return c.JSON(resp)
}
