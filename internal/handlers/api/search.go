package api

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"leadsniper/internal/models"
)

// LeadPipeline runs one search request through search, scoring, and ranking.
type LeadPipeline interface {
	Run(ctx context.Context, query models.SearchQuery) []models.Lead
}

// SearchHandler handles lead search requests via JSON API.
type SearchHandler struct {
	pipeline LeadPipeline
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(pipeline LeadPipeline) *SearchHandler {
	return &SearchHandler{pipeline: pipeline}
}

// Search runs the lead scoring pipeline for a product description.
// External-provider failures are absorbed into fallback data inside the
// pipeline, so this endpoint only errors on an internal fault.
func (h *SearchHandler) Search(c fiber.Ctx) error {
	var body models.SearchRequest
	// A missing or malformed body is tolerated; the pipeline substitutes a
	// default product description.
	json.Unmarshal(c.Body(), &body)

	leads := h.pipeline.Run(c.Context(), models.SearchQuery{
		ProductDescription: body.Product,
	})

	return jsonSuccess(c, leads)
}
