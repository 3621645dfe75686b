package api

import (
	"github.com/gofiber/fiber/v3"

	"leadsniper/internal/db"
)

// ProbeHandler handles liveness and readiness endpoints.
type ProbeHandler struct {
	db *db.DB
}

// NewProbeHandler creates a new probe handler. db may be nil when the
// service runs without an entitlement store.
func NewProbeHandler(database *db.DB) *ProbeHandler {
	return &ProbeHandler{db: database}
}

// Status handles GET / with a plain status line.
func (h *ProbeHandler) Status(c fiber.Ctx) error {
	return c.SendString("Backend is running. Webhook listener active.")
}

// Liveness handles the /healthz endpoint.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint. Running without a configured
// store is a degraded-but-ready state: search still works and webhooks are
// acknowledged without grants.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	if h.db == nil {
		return c.JSON(fiber.Map{
			"status": "ok",
			"store":  "not configured",
		})
	}

	if err := h.db.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  "database unavailable",
		})
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
