package model

// ExtractedContent is the readable text resolved for a single URL,
// together with the evidence fragments mined from it.
// Text is never empty: an extraction that yields nothing is represented by nil.
type ExtractedContent struct {
	URL           string `json:"url"`
	Text          string `json:"text"`
	Strategy      string `json:"strategy"`                // Extraction strategy that produced Text
	Confirming    string `json:"confirming,omitempty"`    // Lines lexically confirming the claim
	Contradicting string `json:"contradicting,omitempty"` // Lines lexically contradicting the claim
}

// VerificationBundle is the request-scoped payload handed to the synthesizer.
// Sources keeps the search provider order; every text block follows it.
type VerificationBundle struct {
	Claim         string
	Sources       []SourceResult
	Summaries     string // One block per source, extracted or not
	Contents      string // Full extracted text per source, kept for traceability
	Excerpts      string
	URLs          string
	Confirming    string
	Contradicting string
}

// ExcerptCount returns the number of sources that contributed an excerpt
func (b VerificationBundle) ExcerptCount() int {
	count := 0
	for _, s := range b.Sources {
		if s.HasExcerpt() {
			count++
		}
	}
	return count
}
