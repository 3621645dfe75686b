package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"leadsniper/internal/db"
	"leadsniper/internal/email"
	"leadsniper/internal/entitlement"
	"leadsniper/internal/handlers/api"
	"leadsniper/internal/middleware"
	"leadsniper/internal/pipeline"
	"leadsniper/internal/scorer"
	"leadsniper/internal/source"
)

// RegisterRoutes wires the pipeline, ingestor, and handlers onto the app.
// database may be nil; webhook ingestion then acknowledges without grants.
func (s *Server) RegisterRoutes(ctx context.Context, database *db.DB) error {
	cfg := s.Cfg

	// Lead scoring pipeline
	provider := source.NewRedditProvider(cfg.RedditBaseURL, cfg.RedditUserAgent, nil)
	intentScorer := scorer.New(cfg.OpenAIEndpoint, cfg.OpenAIModel, cfg.OpenAIAPIKey, nil)
	if !intentScorer.Configured() {
		log.Println("OPENAI_API_KEY not set; intent scores are stand-in values")
	}
	leadPipeline := pipeline.New(provider, intentScorer, pipeline.Options{
		SearchLimit:   cfg.SearchLimit,
		MaxResults:    cfg.MaxResults,
		FallbackCount: cfg.FallbackCount,
	})

	// Entitlement ingestion
	var store entitlement.Store
	if database != nil {
		store = database
	}
	if cfg.ShopifySecret == "" {
		log.Println("SHOPIFY_SECRET not set; all webhook notifications will be rejected")
	}
	ingestor := entitlement.NewIngestor(store, cfg.ShopifySecret).
		WithNotifier(email.NewService(cfg))

	// Handlers
	searchHandler := api.NewSearchHandler(leadPipeline)
	webhookHandler := api.NewWebhookHandler(ingestor)
	probeHandler := api.NewProbeHandler(database)

	// Public routes
	s.App.Get("/", probeHandler.Status)
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	s.App.Post("/api/search", searchHandler.Search)
	s.App.Post("/api/webhook/shopify", webhookHandler.Shopify)

	// Admin routes - only wired when OIDC is configured
	if cfg.HasAdminAuth() {
		authMiddleware, err := middleware.NewAuthMiddleware(ctx, cfg.OIDCIssuer, cfg.OIDCClientID)
		if err != nil {
			return err
		}
		entitlementHandler := api.NewEntitlementHandler(database)
		s.App.Get("/api/admin/entitlements", authMiddleware.RequireToken, entitlementHandler.List)
		s.App.Get("/api/admin/entitlements/:email", authMiddleware.RequireToken, entitlementHandler.Get)
	} else {
		log.Println("Admin API disabled. Set OIDC_ISSUER and OIDC_CLIENT_ID to enable.")
	}

	return nil
}
