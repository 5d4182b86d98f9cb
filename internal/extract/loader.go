package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/claimcheck/internal/fetch"
	"golang.org/x/net/html"
)

// LoaderStrategy returns every visible text fragment of the page, one per line
type LoaderStrategy struct {
	fetcher *fetch.Fetcher
}

// NewLoaderStrategy creates a generic page loader strategy
func NewLoaderStrategy(fetcher *fetch.Fetcher) *LoaderStrategy {
	return &LoaderStrategy{fetcher: fetcher}
}

// Name returns the strategy name
func (s *LoaderStrategy) Name() string {
	return "loader"
}

// Extract fetches the page and joins its visible text nodes
func (s *LoaderStrategy) Extract(ctx context.Context, rawURL string) (string, error) {
	resp, err := s.fetcher.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(bytes.NewReader(resp.Body))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	return visibleText(doc), nil
}

// visibleText collects text nodes, skipping scripts and styles
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "template", "head":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString("\n")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}
