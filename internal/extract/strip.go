package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ppiankov/claimcheck/internal/fetch"
	"golang.org/x/net/html"
)

// boilerplate is removed before text is collected
const boilerplate = "script, style, nav, header, footer, aside, noscript, iframe"

// StripStrategy removes page chrome and returns whitespace-normalised text
type StripStrategy struct {
	fetcher *fetch.Fetcher
}

// NewStripStrategy creates a markup-stripping strategy
func NewStripStrategy(fetcher *fetch.Fetcher) *StripStrategy {
	return &StripStrategy{fetcher: fetcher}
}

// Name returns the strategy name
func (s *StripStrategy) Name() string {
	return "strip"
}

// Extract fetches the page, drops boilerplate elements and normalises the rest
func (s *StripStrategy) Extract(ctx context.Context, rawURL string) (string, error) {
	resp, err := s.fetcher.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	return stripText(doc), nil
}

func stripText(doc *goquery.Document) string {
	doc.Find(boilerplate).Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	var buf strings.Builder
	for _, n := range root.Nodes {
		writeBlockText(&buf, n)
	}
	return normalizeWhitespace(buf.String())
}

// writeBlockText writes text nodes, breaking lines after block elements
func writeBlockText(buf *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		buf.WriteString(n.Data)
		return
	case html.ElementNode:
		if n.Data == "br" {
			buf.WriteString("\n")
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeBlockText(buf, c)
	}

	if n.Type == html.ElementNode && isBlock(n.Data) {
		buf.WriteString("\n")
	}
}

func isBlock(tag string) bool {
	switch tag {
	case "p", "div", "section", "article", "main", "li", "ul", "ol", "tr", "table",
		"h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "pre", "figcaption":
		return true
	}
	return false
}

// normalizeWhitespace collapses runs of spaces within each line and drops blank lines
func normalizeWhitespace(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if fields := strings.Fields(line); len(fields) > 0 {
			lines = append(lines, strings.Join(fields, " "))
		}
	}
	return strings.Join(lines, "\n")
}
