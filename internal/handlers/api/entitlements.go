package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"leadsniper/internal/db"
	"leadsniper/internal/validation"
)

// EntitlementHandler exposes entitlement records to operators.
type EntitlementHandler struct {
	db *db.DB
}

// NewEntitlementHandler creates a new entitlement handler.
func NewEntitlementHandler(database *db.DB) *EntitlementHandler {
	return &EntitlementHandler{db: database}
}

// Get returns the entitlement record for one email.
func (h *EntitlementHandler) Get(c fiber.Ctx) error {
	email := c.Params("email")
	if !validation.ValidateEmail(email) {
		return jsonError(c, fiber.StatusBadRequest, "invalid email")
	}

	if h.db == nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "entitlement store not configured")
	}

	e, err := h.db.GetEntitlement(c.Context(), email)
	if err != nil {
		if errors.Is(err, db.ErrEntitlementNotFound) {
			return jsonError(c, fiber.StatusNotFound, "entitlement not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch entitlement")
	}

	return jsonSuccess(c, e)
}

// List returns the most recently granted entitlements.
func (h *EntitlementHandler) List(c fiber.Ctx) error {
	if h.db == nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "entitlement store not configured")
	}

	entitlements, err := h.db.ListEntitlements(c.Context(), 50)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to list entitlements")
	}

	return jsonSuccess(c, entitlements)
}
