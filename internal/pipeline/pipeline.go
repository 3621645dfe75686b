// Package pipeline orchestrates lead search, intent scoring, fallback
// synthesis, and ranking for one search request.
package pipeline

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"leadsniper/internal/fallback"
	"leadsniper/internal/metrics"
	"leadsniper/internal/models"
	"leadsniper/internal/source"
	"leadsniper/internal/validation"
)

// Scorer rates a snippet against a product description on a 0-100 scale.
// Implementations must degrade internally; Score never fails.
type Scorer interface {
	Score(ctx context.Context, snippet, product string) int
}

// Options size the pipeline. Zero values fall back to the defaults below.
type Options struct {
	SearchLimit   int // candidates requested from the source
	MaxResults    int // leads returned per run
	FallbackCount int // synthesized batch size
}

const (
	defaultSearchLimit   = 12
	defaultMaxResults    = 10
	defaultFallbackCount = 6
)

// Pipeline turns a product description into a ranked, bounded lead list.
// External failures never surface: a dead source degrades to synthesized
// leads and a dead scorer degrades to neutral scores.
type Pipeline struct {
	source source.Provider
	scorer Scorer
	opts   Options
	logger *slog.Logger
}

// New wires a pipeline from its collaborators.
func New(src source.Provider, scorer Scorer, opts Options) *Pipeline {
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = defaultSearchLimit
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = defaultMaxResults
	}
	if opts.FallbackCount <= 0 {
		opts.FallbackCount = defaultFallbackCount
	}
	return &Pipeline{
		source: src,
		scorer: scorer,
		opts:   opts,
		logger: slog.Default().With("component", "pipeline"),
	}
}

// Run executes search, scoring, and ranking. The returned slice is sorted
// by score descending (ties keep discovery order) and holds at most
// MaxResults leads. Run never returns an empty slice and never fails.
func (p *Pipeline) Run(ctx context.Context, query models.SearchQuery) []models.Lead {
	product := validation.NormalizeProduct(query.ProductDescription)

	candidates, err := p.source.Search(ctx, product, p.opts.SearchLimit)
	if err != nil {
		p.logger.Warn("search source unavailable, synthesizing leads",
			"source", p.source.Name(), "error", err)
		metrics.RecordSearch(metrics.SourceFallback)
		return p.rank(fallback.Synthesize(product, p.opts.FallbackCount))
	}
	if len(candidates) == 0 {
		p.logger.Info("search source returned no candidates, synthesizing leads",
			"source", p.source.Name(), "product", product)
		metrics.RecordSearch(metrics.SourceFallback)
		return p.rank(fallback.Synthesize(product, p.opts.FallbackCount))
	}

	metrics.RecordSearch(metrics.SourceExternal)

	// Scoring calls are the latency driver; fan out one goroutine per
	// candidate and collect everything before ranking.
	leads := make([]models.Lead, len(candidates))
	var wg sync.WaitGroup
	for i, candidate := range candidates {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snippet := candidate.Title
			if candidate.Body != "" {
				snippet = strings.TrimSpace(candidate.Title + "\n" + candidate.Body)
			}
			leads[i] = models.Lead{
				ID:        candidate.ID,
				Text:      snippet,
				Score:     p.scorer.Score(ctx, snippet, product),
				SourceURL: candidate.URL,
			}
		}()
	}
	wg.Wait()

	return p.rank(leads)
}

// rank sorts by score descending, keeping discovery order for equal
// scores, and truncates to the configured maximum.
func (p *Pipeline) rank(leads []models.Lead) []models.Lead {
	sort.SliceStable(leads, func(i, j int) bool {
		return leads[i].Score > leads[j].Score
	})
	if len(leads) > p.opts.MaxResults {
		leads = leads[:p.opts.MaxResults]
	}
	metrics.RecordLeadsReturned(len(leads))
	return leads
}
