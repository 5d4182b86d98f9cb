package search

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ppiankov/claimcheck/internal/model"
)

var (
	errMissingTitle = errors.New("missing title")
	errMissingURL   = errors.New("missing url")
	errProviderLink = errors.New("link to search provider page")
)

// ParseResults parses search result markup into sources, in document order.
// Malformed entries are logged and skipped; only an unreadable document is an error.
func ParseResults(r io.Reader, baseURL string, sel model.SearchSelectors) ([]model.SourceResult, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	var results []model.SourceResult
	doc.Find(sel.Container).Each(func(i int, s *goquery.Selection) {
		result, err := parseEntry(s, base, sel)
		if err != nil {
			slog.Debug("skipping search result", "index", i, "err", err)
			return
		}
		results = append(results, result)
	})

	return results, nil
}

// parseEntry parses a single result container
func parseEntry(s *goquery.Selection, base *url.URL, sel model.SearchSelectors) (model.SourceResult, error) {
	link := s
	if sel.Link != "" && !s.Is(sel.Link) {
		link = s.Find(sel.Link).First()
	}
	href, _ := link.Attr("href")

	resolved := resolveLink(base, href)
	if resolved == "" {
		return model.SourceResult{}, errMissingURL
	}
	if isProviderPage(base, resolved, sel.IgnorePaths) {
		return model.SourceResult{}, errProviderLink
	}

	// Without a title selector the anchor text is the title
	title := cleanText(link.Text())
	if sel.Title != "" {
		title = textOf(s, sel.Title)
	}
	if title == "" {
		return model.SourceResult{}, errMissingTitle
	}

	result := model.SourceResult{
		Title:      title,
		URL:        resolved,
		Snippet:    textOf(s, sel.Snippet),
		SourceName: textOf(s, sel.Source),
	}
	if date := textOf(s, sel.Date); date != "" {
		result.PublishedDate = model.StringPtr(date)
	}

	return result, nil
}

// resolveLink turns a result href into an absolute http(s) URL.
// Redirect wrappers of the form /url?q=<target> are unwrapped.
func resolveLink(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(parsed)

	if resolved.Path == "/url" {
		for _, key := range []string{"q", "url"} {
			if target := resolved.Query().Get(key); target != "" {
				return resolveLink(base, target)
			}
		}
	}

	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	if resolved.Host == "" {
		return ""
	}

	return resolved.String()
}

// isProviderPage reports whether link is one of the provider's own
// navigation pages: same host as the search page and under an ignored path.
// Same-host articles are kept.
func isProviderPage(base *url.URL, link string, ignorePaths []string) bool {
	u, err := url.Parse(link)
	if err != nil || !strings.EqualFold(u.Host, base.Host) {
		return false
	}
	for _, prefix := range ignorePaths {
		prefix = strings.TrimSuffix(prefix, "/")
		if prefix == "" {
			continue
		}
		if u.Path == prefix || strings.HasPrefix(u.Path, prefix+"/") {
			return true
		}
	}
	return false
}

func textOf(s *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return cleanText(s.Find(selector).First().Text())
}

// cleanText collapses runs of whitespace
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
