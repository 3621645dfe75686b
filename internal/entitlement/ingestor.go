// Package entitlement ingests signed payment notifications and grants
// paid-tier access.
package entitlement

import (
	"context"
	"encoding/json"
	"log/slog"

	"leadsniper/internal/metrics"
	"leadsniper/internal/models"
	"leadsniper/internal/signature"
)

// Store is the persistence capability the ingestor needs. A nil Store is
// valid: ingestion then degrades to a success-shaped no-op so the sender
// never sees a spurious failure.
type Store interface {
	GrantEntitlement(ctx context.Context, email, sourceTag string) (*models.Entitlement, error)
}

// Notifier is told about fresh grants so the customer can be emailed.
// Implementations must not block; delivery failures stay their problem.
type Notifier interface {
	NotifyEntitlementGranted(customerEmail string)
}

// Result reports the outcome of one notification.
type Result struct {
	Granted bool   `json:"granted"`
	Reason  string `json:"reason"`
}

// Reason values.
const (
	ReasonUnauthorized     = "unauthorized"
	ReasonGranted          = "granted"
	ReasonNoEmail          = "no_email"
	ReasonStoreUnavailable = "store_unavailable"
	ReasonStoreError       = "store_error"
)

// Ingestor validates a notification's signature and upserts the
// entitlement for the customer it names.
type Ingestor struct {
	store    Store
	secret   string
	notifier Notifier
	logger   *slog.Logger
}

// NewIngestor wires an ingestor. store may be nil when no database is
// configured.
func NewIngestor(store Store, secret string) *Ingestor {
	return &Ingestor{
		store:  store,
		secret: secret,
		logger: slog.Default().With("component", "entitlement"),
	}
}

// WithNotifier attaches a grant notifier and returns the ingestor.
func (in *Ingestor) WithNotifier(n Notifier) *Ingestor {
	in.notifier = n
	return in
}

// Ingest runs the notification state machine: verify, extract email,
// merge-upsert. Only a failed signature check produces an unauthorized
// result; every other degradation (no email, no store, store error) is
// success-shaped so the notification sender does not retry payloads this
// service deliberately ignores.
//
// The payment status field is intentionally not checked: the signature is
// the trust boundary, and any signed notification naming a customer grants
// entitlement.
func (in *Ingestor) Ingest(ctx context.Context, rawBody []byte, signatureHeader string) Result {
	if !signature.Verify(rawBody, signatureHeader, in.secret) {
		metrics.RecordWebhook(metrics.WebhookRejected)
		return Result{Granted: false, Reason: ReasonUnauthorized}
	}

	email := extractEmail(rawBody)
	if email == "" {
		in.logger.Warn("verified notification carries no customer email")
		metrics.RecordWebhook(metrics.WebhookSkipped)
		return Result{Granted: false, Reason: ReasonNoEmail}
	}

	if in.store == nil {
		in.logger.Warn("entitlement store not configured, acknowledging without grant", "email", email)
		metrics.RecordWebhook(metrics.WebhookSkipped)
		return Result{Granted: false, Reason: ReasonStoreUnavailable}
	}

	if _, err := in.store.GrantEntitlement(ctx, email, models.SourceShopifyWebhook); err != nil {
		in.logger.Error("entitlement upsert failed, acknowledging anyway", "email", email, "error", err)
		metrics.RecordWebhook(metrics.WebhookSkipped)
		return Result{Granted: false, Reason: ReasonStoreError}
	}

	in.logger.Info("entitlement granted", "email", email)
	metrics.RecordWebhook(metrics.WebhookGranted)
	if in.notifier != nil {
		in.notifier.NotifyEntitlementGranted(email)
	}
	return Result{Granted: true, Reason: ReasonGranted}
}

// extractEmail pulls the customer email out of the raw body, best-effort.
// The structured payload shape is tried first; a loose map decode catches
// payloads whose other fields don't match the expected types.
func extractEmail(rawBody []byte) string {
	var payload models.WebhookPayload
	if err := json.Unmarshal(rawBody, &payload); err == nil {
		if email := payload.CustomerEmail(); email != "" {
			return email
		}
	}

	var loose map[string]json.RawMessage
	if err := json.Unmarshal(rawBody, &loose); err != nil {
		return ""
	}

	var email string
	if raw, ok := loose["email"]; ok {
		json.Unmarshal(raw, &email)
	}
	if email == "" {
		if raw, ok := loose["customer"]; ok {
			var customer struct {
				Email string `json:"email"`
			}
			json.Unmarshal(raw, &customer)
			email = customer.Email
		}
	}
	return email
}
