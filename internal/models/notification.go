package models

// WebhookPayload mirrors the fields of an order-paid notification that the
// ingestor cares about. Everything else in the payload is ignored.
type WebhookPayload struct {
	Email           string          `json:"email"`
	Customer        WebhookCustomer `json:"customer"`
	FinancialStatus string          `json:"financial_status"`
}

// WebhookCustomer is the nested customer object some notification shapes use.
type WebhookCustomer struct {
	Email string `json:"email"`
}

// CustomerEmail returns the first non-empty email in the payload, preferring
// the top-level field over the nested customer object.
func (p WebhookPayload) CustomerEmail() string {
	if p.Email != "" {
		return p.Email
	}
	return p.Customer.Email
}
