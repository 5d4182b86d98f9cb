// Package search queries a web search provider for sources relevant to a claim.
package search

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/ppiankov/claimcheck/internal/fetch"
	"github.com/ppiankov/claimcheck/internal/model"
)

// Finder retrieves candidate sources from a search provider
type Finder struct {
	fetcher   *fetch.Fetcher
	endpoint  string
	selectors model.SearchSelectors
}

// NewFinder creates a Finder for the configured endpoint.
// The endpoint must contain a single %s placeholder for the encoded claim.
func NewFinder(fetcher *fetch.Fetcher, cfg model.SearchConfig) (*Finder, error) {
	if !strings.Contains(cfg.Endpoint, "%s") {
		return nil, fmt.Errorf("search endpoint %q has no %%s placeholder", cfg.Endpoint)
	}
	if cfg.Selectors.Container == "" {
		return nil, errors.New("search container selector is required")
	}
	return &Finder{
		fetcher:   fetcher,
		endpoint:  cfg.Endpoint,
		selectors: cfg.Selectors,
	}, nil
}

// Find returns up to maxResults sources for the claim, in provider order.
// Provider failures are returned as *model.RetrievalError.
func (f *Finder) Find(ctx context.Context, claim string, maxResults int) ([]model.SourceResult, error) {
	claim = strings.TrimSpace(claim)
	if claim == "" {
		return nil, errors.New("claim is empty")
	}
	if maxResults < 0 {
		return nil, fmt.Errorf("max results must be >= 0, got %d", maxResults)
	}
	if maxResults == 0 {
		return []model.SourceResult{}, nil
	}

	searchURL := f.QueryURL(claim)
	slog.Debug("searching sources", "url", searchURL)

	resp, err := f.fetcher.Fetch(ctx, searchURL)
	if err != nil {
		return nil, &model.RetrievalError{Claim: claim, Err: err}
	}

	results, err := ParseResults(bytes.NewReader(resp.Body), resp.FinalURL, f.selectors)
	if err != nil {
		return nil, &model.RetrievalError{Claim: claim, Err: err}
	}

	if len(results) == 0 {
		slog.Warn("search returned no parsable results", "url", searchURL, "bytes", len(resp.Body))
	}
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	return results, nil
}

// QueryURL builds the provider URL for a claim
func (f *Finder) QueryURL(claim string) string {
	return strings.Replace(f.endpoint, "%s", url.QueryEscape(claim), 1)
}
