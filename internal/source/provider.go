// Package source provides lead discovery over external discussion-search
// providers.
package source

import (
	"context"
	"errors"
)

// ErrSourceUnavailable indicates the external search provider could not be
// reached or refused the request. Zero matches is not an error: providers
// return an empty slice with a nil error for that case.
var ErrSourceUnavailable = errors.New("search source unavailable")

// Candidate is one raw discussion hit before intent scoring.
type Candidate struct {
	ID            string
	Title         string
	Body          string
	URL           string
	ExternalScore int // provider-native ranking signal (e.g. upvotes)
}

// Provider is the interface for discussion-search sources.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]Candidate, error)
}
