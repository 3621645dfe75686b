package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Search outcome labels.
const (
	SourceExternal = "external"
	SourceFallback = "fallback"
)

// Webhook outcome labels.
const (
	WebhookGranted  = "granted"
	WebhookRejected = "rejected"
	WebhookSkipped  = "skipped"
)

var (
	searchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadsniper_searches_total",
			Help: "Total lead searches by data source outcome",
		},
		[]string{"source"},
	)

	leadsReturnedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "leadsniper_leads_returned_total",
			Help: "Total leads returned across all search responses",
		},
	)

	webhookTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadsniper_webhook_total",
			Help: "Total webhook notifications by ingestion outcome",
		},
		[]string{"outcome"},
	)

	sourceUp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "leadsniper_source_up",
			Help: "Whether the external search source answered its last probe",
		},
	)
)

var registerOnce sync.Once

// Init registers all collectors with the default registry.
// Must be called once at startup.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(searchesTotal, leadsReturnedTotal, webhookTotal, sourceUp)
	})
}

// RecordSearch counts one pipeline run by data source outcome.
func RecordSearch(outcome string) {
	searchesTotal.WithLabelValues(outcome).Inc()
}

// RecordLeadsReturned counts leads handed back to callers.
func RecordLeadsReturned(n int) {
	leadsReturnedTotal.Add(float64(n))
}

// RecordWebhook counts one webhook notification by ingestion outcome.
func RecordWebhook(outcome string) {
	webhookTotal.WithLabelValues(outcome).Inc()
}

// RecordSourceUp reports the latest search-source probe result.
func RecordSourceUp(up bool) {
	if up {
		sourceUp.Set(1)
	} else {
		sourceUp.Set(0)
	}
}
