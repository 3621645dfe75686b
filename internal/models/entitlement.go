package models

import "time"

// Entitlement is the persisted paid-tier grant for one customer email.
// The email is the primary key and is stored case-sensitive as received.
type Entitlement struct {
	Email      string    `json:"email"`
	IsEntitled bool      `json:"is_entitled"`
	GrantedAt  time.Time `json:"granted_at"`
	SourceTag  string    `json:"source_tag"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Provenance tags recorded on entitlement grants.
const (
	SourceShopifyWebhook = "shopify_webhook"
)
