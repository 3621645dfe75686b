package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultTimeout = 8 * time.Second

// RedditProvider searches Reddit's public JSON search endpoint.
type RedditProvider struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

var _ Provider = (*RedditProvider)(nil)

// NewRedditProvider creates a provider against baseURL (normally
// https://www.reddit.com). Reddit requires a descriptive User-Agent.
func NewRedditProvider(baseURL, userAgent string, client *http.Client) *RedditProvider {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &RedditProvider{
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    client,
	}
}

// Name identifies the provider in logs and metrics.
func (p *RedditProvider) Name() string {
	return "reddit"
}

// redditListing mirrors the subset of the search response we consume.
type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				ID        string `json:"id"`
				Title     string `json:"title"`
				Selftext  string `json:"selftext"`
				Permalink string `json:"permalink"`
				Score     int    `json:"score"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Search queries the public search endpoint and returns up to limit
// candidates. Network errors, non-2xx statuses, and malformed responses all
// wrap ErrSourceUnavailable.
func (p *RedditProvider) Search(ctx context.Context, query string, limit int) ([]Candidate, error) {
	searchURL := fmt.Sprintf("%s/search.json?%s", p.baseURL, url.Values{
		"q":     {query},
		"limit": {strconv.Itoa(limit)},
		"sort":  {"relevance"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrSourceUnavailable, err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: reddit returned %s", ErrSourceUnavailable, resp.Status)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrSourceUnavailable, err)
	}

	candidates := make([]Candidate, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		post := child.Data
		if post.Title == "" && post.Selftext == "" {
			continue
		}
		candidates = append(candidates, Candidate{
			ID:            post.ID,
			Title:         post.Title,
			Body:          post.Selftext,
			URL:           p.baseURL + post.Permalink,
			ExternalScore: post.Score,
		})
		if len(candidates) == limit {
			break
		}
	}

	return candidates, nil
}
