package middleware

import (
	"context"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gofiber/fiber/v3"
)

// TokenVerifier checks a raw bearer token. Satisfied by *oidc.IDTokenVerifier.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*oidc.IDToken, error)
}

// AuthMiddleware guards the admin API with OIDC bearer tokens.
type AuthMiddleware struct {
	verifier TokenVerifier
}

// NewAuthMiddleware creates middleware for an issuer and client ID. It
// performs OIDC discovery against the issuer.
func NewAuthMiddleware(ctx context.Context, issuer, clientID string) (*AuthMiddleware, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, err
	}
	return &AuthMiddleware{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

// NewAuthMiddlewareWithVerifier wires a pre-built verifier. Used by tests.
func NewAuthMiddlewareWithVerifier(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireToken verifies the Authorization bearer token and stores the token
// subject in locals for downstream handlers.
func (m *AuthMiddleware) RequireToken(c fiber.Ctx) error {
	raw := bearerToken(c.Get("Authorization"))
	if raw == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "missing bearer token",
		})
	}

	token, err := m.verifier.Verify(c.Context(), raw)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "invalid token",
		})
	}

	c.Locals("subject", token.Subject)
	return c.Next()
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
