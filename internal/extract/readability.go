package extract

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	readability "github.com/go-shiori/go-readability"
	"github.com/ppiankov/claimcheck/internal/fetch"
)

// ReadabilityStrategy extracts the main article body, dropping navigation,
// ads and other boilerplate
type ReadabilityStrategy struct {
	fetcher *fetch.Fetcher
}

// NewReadabilityStrategy creates a readability-based strategy
func NewReadabilityStrategy(fetcher *fetch.Fetcher) *ReadabilityStrategy {
	return &ReadabilityStrategy{fetcher: fetcher}
}

// Name returns the strategy name
func (s *ReadabilityStrategy) Name() string {
	return "readability"
}

// Extract fetches the page and returns its article text
func (s *ReadabilityStrategy) Extract(ctx context.Context, rawURL string) (string, error) {
	resp, err := s.fetcher.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return "", err
	}

	pageURL, err := url.Parse(resp.FinalURL)
	if err != nil {
		return "", fmt.Errorf("parse final URL: %w", err)
	}

	article, err := readability.FromReader(bytes.NewReader(resp.Body), pageURL)
	if err != nil {
		return "", fmt.Errorf("readability: %w", err)
	}

	return article.TextContent, nil
}
