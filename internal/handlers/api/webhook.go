package api

import (
	"github.com/gofiber/fiber/v3"

	"leadsniper/internal/entitlement"
)

// ShopifySignatureHeader carries the HMAC of the raw request body.
const ShopifySignatureHeader = "X-Shopify-Hmac-Sha256"

// WebhookHandler handles signed payment-completion notifications.
type WebhookHandler struct {
	ingestor *entitlement.Ingestor
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(ingestor *entitlement.Ingestor) *WebhookHandler {
	return &WebhookHandler{ingestor: ingestor}
}

// Shopify ingests one order notification. A bad signature is the only
// hard failure; skipped notifications (no email, no store) are acknowledged
// with 200 so the sender does not retry them.
func (h *WebhookHandler) Shopify(c fiber.Ctx) error {
	result := h.ingestor.Ingest(c.Context(), c.Body(), c.Get(ShopifySignatureHeader))

	if result.Reason == entitlement.ReasonUnauthorized {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
	})
}
