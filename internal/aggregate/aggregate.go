// Package aggregate assembles per-source excerpts, URLs and evidence
// fragments into the inputs of a verdict synthesis request.
package aggregate

import (
	"fmt"
	"strings"

	"github.com/ppiankov/claimcheck/internal/model"
)

// excerptSentences is the number of period-delimited sentences kept in an excerpt
const excerptSentences = 3

const (
	noDate    = "Data não disponível"
	noSource  = "Fonte desconhecida"
	noSnippet = "Sem resumo"
)

// Aggregate builds the verification bundle for claim.
// contents[i] belongs to sources[i]; a nil entry means extraction was skipped.
// The inputs are not modified: excerpts are set on the bundle's own copy of the sources.
func Aggregate(claim string, sources []model.SourceResult, contents []*model.ExtractedContent) model.VerificationBundle {
	bundle := model.VerificationBundle{
		Claim:   claim,
		Sources: make([]model.SourceResult, len(sources)),
	}
	copy(bundle.Sources, sources)

	var summaries, fullTexts, excerpts, urls, confirming, contradicting []string

	for i := range bundle.Sources {
		src := &bundle.Sources[i]
		n := i + 1

		// 1. Every source is summarised, extracted or not
		summaries = append(summaries, summaryBlock(n, *src))

		var content *model.ExtractedContent
		if i < len(contents) {
			content = contents[i]
		}
		if content == nil || strings.TrimSpace(content.Text) == "" {
			src.Excerpt = nil
			continue
		}

		// 2. Extracted sources contribute excerpt, content and URL blocks
		excerpt := Excerpt(content.Text)
		src.Excerpt = model.StringPtr(excerpt)

		fullTexts = append(fullTexts, fmt.Sprintf("Conteúdo da fonte %d (%s):\n%s", n, src.URL, content.Text))
		excerpts = append(excerpts, fmt.Sprintf("Trecho da fonte %d: %s", n, excerpt))
		urls = append(urls, src.URL)

		// 3. Evidence fragments only when non-empty
		if content.Confirming != "" {
			confirming = append(confirming, fmt.Sprintf("Fonte %d:\n%s", n, content.Confirming))
		}
		if content.Contradicting != "" {
			contradicting = append(contradicting, fmt.Sprintf("Fonte %d:\n%s", n, content.Contradicting))
		}
	}

	bundle.Summaries = strings.Join(summaries, "\n\n")
	bundle.Contents = strings.Join(fullTexts, "\n\n")
	bundle.Excerpts = strings.Join(excerpts, "\n\n")
	bundle.URLs = strings.Join(urls, "\n")
	bundle.Confirming = strings.Join(confirming, "\n\n")
	bundle.Contradicting = strings.Join(contradicting, "\n\n")

	return bundle
}

// Excerpt returns the first three period-split sentences of text.
// Abbreviations are not special-cased.
func Excerpt(text string) string {
	parts := strings.SplitN(strings.TrimSpace(text), ".", excerptSentences+1)
	truncated := len(parts) > excerptSentences && strings.TrimSpace(parts[excerptSentences]) != ""
	if len(parts) > excerptSentences && !truncated {
		parts[excerptSentences-1] += "."
	}
	if len(parts) > excerptSentences {
		parts = parts[:excerptSentences]
	}

	excerpt := strings.TrimSpace(strings.Join(parts, "."))
	if truncated {
		excerpt += "..."
	}
	return excerpt
}

func summaryBlock(n int, src model.SourceResult) string {
	return fmt.Sprintf("Fonte %d: %s\nVeículo: %s\nData: %s\nResumo: %s",
		n,
		src.Title,
		orDefault(src.SourceName, noSource),
		src.DateOr(noDate),
		orDefault(src.Snippet, noSnippet),
	)
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
