package model

// SourceResult is one candidate source returned by the search provider
type SourceResult struct {
	Title         string        `json:"title"`                    // Result headline
	URL           string        `json:"url"`                      // Absolute URL of the source
	Snippet       string        `json:"snippet,omitempty"`        // Provider summary
	SourceName    string        `json:"source_name,omitempty"`    // Publisher label
	PublishedDate *string       `json:"published_date,omitempty"` // Display text as shown by the provider
	Excerpt       *string       `json:"excerpt,omitempty"`        // First sentences of the extracted content
	Authority     AuthorityTier `json:"authority,omitempty"`      // Publisher credibility tier
}

// AuthorityTier classifies how authoritative a source's publisher is
type AuthorityTier string

const (
	TierUnknown   AuthorityTier = ""          // Not classified
	TierPrimary   AuthorityTier = "primary"   // Official bodies and fact-checking agencies
	TierSecondary AuthorityTier = "secondary" // Established press
	TierTertiary  AuthorityTier = "tertiary"  // Blogs, aggregators, everything else
)

// HasExcerpt reports whether content was extracted for this source
func (s SourceResult) HasExcerpt() bool {
	return s.Excerpt != nil && *s.Excerpt != ""
}

// DateOr returns the published date or the fallback when absent
func (s SourceResult) DateOr(fallback string) string {
	if s.PublishedDate == nil || *s.PublishedDate == "" {
		return fallback
	}
	return *s.PublishedDate
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}
