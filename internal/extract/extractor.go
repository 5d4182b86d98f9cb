// Package extract resolves readable text for source URLs and mines it for
// lexical evidence.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/claimcheck/internal/fetch"
	"github.com/ppiankov/claimcheck/internal/model"
)

// Strategy resolves readable text for a URL.
// An empty string means the strategy found nothing usable.
type Strategy interface {
	Name() string
	Extract(ctx context.Context, rawURL string) (string, error)
}

// RobotsChecker decides whether a URL may be fetched
type RobotsChecker interface {
	CanFetch(ctx context.Context, rawURL string) (bool, error)
}

// Extractor tries each strategy in order until one yields text
type Extractor struct {
	strategies   []Strategy
	robots       RobotsChecker
	maxTextBytes int
}

// NewExtractor creates an extractor over an ordered strategy chain.
// robots may be nil to skip robots.txt checks; maxTextBytes <= 0 disables truncation.
func NewExtractor(strategies []Strategy, robots RobotsChecker, maxTextBytes int) *Extractor {
	return &Extractor{
		strategies:   strategies,
		robots:       robots,
		maxTextBytes: maxTextBytes,
	}
}

// NewStrategies builds the named strategies in the given order
func NewStrategies(names []string, fetcher *fetch.Fetcher) ([]Strategy, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no extraction strategies configured")
	}

	strategies := make([]Strategy, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "readability":
			strategies = append(strategies, NewReadabilityStrategy(fetcher))
		case "loader":
			strategies = append(strategies, NewLoaderStrategy(fetcher))
		case "strip":
			strategies = append(strategies, NewStripStrategy(fetcher))
		default:
			return nil, fmt.Errorf("unknown extraction strategy: %s (supported: readability, loader, strip)", name)
		}
	}
	return strategies, nil
}

// Strategies returns the names of the configured strategies, in order
func (e *Extractor) Strategies() []string {
	names := make([]string, len(e.strategies))
	for i, s := range e.strategies {
		names[i] = s.Name()
	}
	return names
}

// Extract returns the first non-empty text produced by the strategy chain,
// or nil when every strategy failed or yielded nothing.
// Failures are logged and never returned: one broken source must not abort a batch.
func (e *Extractor) Extract(ctx context.Context, rawURL string) *model.ExtractedContent {
	if e.robots != nil {
		allowed, err := e.robots.CanFetch(ctx, rawURL)
		if err != nil {
			slog.Warn("robots check failed", "url", rawURL, "err", err)
			return nil
		}
		if !allowed {
			slog.Info("robots.txt disallows source", "url", rawURL)
			return nil
		}
	}

	for _, strategy := range e.strategies {
		if ctx.Err() != nil {
			slog.Warn("extraction cancelled", "url", rawURL, "err", ctx.Err())
			return nil
		}

		text, err := runStrategy(ctx, strategy, rawURL)
		if err != nil {
			slog.Warn("extraction strategy failed", "strategy", strategy.Name(), "url", rawURL, "err", err)
			continue
		}

		text = truncateUTF8(strings.TrimSpace(text), e.maxTextBytes)
		if text == "" {
			slog.Debug("extraction strategy yielded no text", "strategy", strategy.Name(), "url", rawURL)
			continue
		}

		return &model.ExtractedContent{
			URL:      rawURL,
			Text:     text,
			Strategy: strategy.Name(),
		}
	}

	slog.Info("no content extracted", "url", rawURL)
	return nil
}

// runStrategy converts a panicking parser into an error
func runStrategy(ctx context.Context, s Strategy, rawURL string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.Extract(ctx, rawURL)
}

// truncateUTF8 cuts s to at most max bytes without splitting a rune.
// The result is empty when max is smaller than the first rune.
func truncateUTF8(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return strings.TrimSpace(s[:cut])
}
