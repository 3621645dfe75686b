package jobs

import (
	"context"
	"log"
	"time"

	"leadsniper/internal/metrics"
	"leadsniper/internal/source"
)

// SourceMonitor periodically probes the external search source so
// operators can tell a quiet period from a dead provider. Search requests
// never depend on it; a failed probe only flips a gauge.
type SourceMonitor struct {
	source   source.Provider
	interval time.Duration
	timeout  time.Duration
}

// NewSourceMonitor creates a monitor for the given provider.
func NewSourceMonitor(provider source.Provider, interval time.Duration) *SourceMonitor {
	return &SourceMonitor{
		source:   provider,
		interval: interval,
		timeout:  10 * time.Second,
	}
}

// Start begins the background probe loop.
func (m *SourceMonitor) Start(ctx context.Context) {
	log.Printf("Source monitor started (interval: %v)", m.interval)

	// Probe immediately on start
	m.probe(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Source monitor stopped")
			return
		case <-ticker.C:
			m.probe(ctx)
		}
	}
}

func (m *SourceMonitor) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	_, err := m.source.Search(probeCtx, "test", 1)
	if err != nil {
		log.Printf("Source monitor: %s probe failed: %v", m.source.Name(), err)
		metrics.RecordSourceUp(false)
		return
	}
	metrics.RecordSourceUp(true)
}
