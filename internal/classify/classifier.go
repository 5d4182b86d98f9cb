// Package classify turns free-form analysis text into a discrete verdict
// using ordered lexical rules.
package classify

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ppiankov/claimcheck/internal/model"
)

// Rule names recorded on the verdict
const (
	RuleExplicitConclusion = "explicit-conclusion"
	RuleIndicatorCount     = "indicator-count"
	RuleLowConfidence      = "low-confidence"
	RuleNoContradictions   = "no-contradictions"
	RuleDefault            = "default"
)

// sectionEnd closes a markdown section in model output
const sectionEnd = "**"

// sectionLead is skipped between a section marker and its body
const sectionLead = ":*# \t\r\n"

// Classifier derives a verdict from analysis text. It holds no mutable state
// and is safe for concurrent use.
type Classifier struct {
	conclusionMarkers []string
	explicitFalse     []string
	explicitTrue      []string
	falseIndicators   []string
	trueIndicators    []string
	confidenceMarkers []string
	lowConfidence     []string
	noContradiction   []string
	negations         []string
}

// NewClassifier creates a classifier from the configured phrase lists.
// Phrases are lowercased once here; analysis text is lowercased per call.
func NewClassifier(cfg model.ClassifierConfig) *Classifier {
	return &Classifier{
		conclusionMarkers: lowerAll(cfg.ConclusionMarkers),
		explicitFalse:     lowerAll(cfg.ExplicitFalseTerms),
		explicitTrue:      lowerAll(cfg.ExplicitTrueTerms),
		falseIndicators:   lowerAll(cfg.FalseIndicators),
		trueIndicators:    lowerAll(cfg.TrueIndicators),
		confidenceMarkers: lowerAll(cfg.ConfidenceMarkers),
		lowConfidence:     lowerAll(cfg.LowConfidenceTerms),
		noContradiction:   lowerAll(cfg.NoContradictionTerms),
		negations:         lowerAll(cfg.NegationPrefixes),
	}
}

// Classify evaluates the rules in strict priority order; the first rule
// that fires decides the label
func (c *Classifier) Classify(analysis string) model.Verdict {
	text := strings.ToLower(analysis)
	verdict := func(label model.VerdictLabel, rule string) model.Verdict {
		return model.Verdict{Label: label, Analysis: analysis, Rule: rule}
	}

	// 1. Explicit conclusion, when exactly one polarity is stated
	if section, ok := c.section(text, c.conclusionMarkers, false); ok {
		isFalse := c.countHits(section, c.explicitFalse) > 0
		isTrue := c.countHits(section, c.explicitTrue) > 0
		switch {
		case isFalse && !isTrue:
			return verdict(model.VerdictFalse, RuleExplicitConclusion)
		case isTrue && !isFalse:
			return verdict(model.VerdictTrue, RuleExplicitConclusion)
		}
	}

	// 2. Indicator hits across the whole text
	falseCount := c.countHits(text, c.falseIndicators)
	trueCount := c.countHits(text, c.trueIndicators)

	// 3. Low confidence with no signal either way
	if falseCount == 0 && trueCount == 0 && c.lowConfidenceStated(text) {
		return verdict(model.VerdictInconclusive, RuleLowConfidence)
	}

	// 4. Count comparison
	switch {
	case falseCount > trueCount:
		return verdict(model.VerdictFalse, RuleIndicatorCount)
	case trueCount > falseCount:
		return verdict(model.VerdictTrue, RuleIndicatorCount)
	}

	// 5. Tie-break
	if c.countHits(text, c.noContradiction) > 0 {
		return verdict(model.VerdictTrue, RuleNoContradictions)
	}
	return verdict(model.VerdictInconclusive, RuleDefault)
}

// section returns the body following the earliest marker, up to the next
// bold delimiter. With firstLine set the body also stops at a line break.
func (c *Classifier) section(text string, markers []string, firstLine bool) (string, bool) {
	start, markerLen := -1, 0
	for _, m := range markers {
		if m == "" {
			continue
		}
		if i := strings.Index(text, m); i >= 0 && (start < 0 || i < start) {
			start, markerLen = i, len(m)
		}
	}
	if start < 0 {
		return "", false
	}

	body := strings.TrimLeft(text[start+markerLen:], sectionLead)
	if end := strings.Index(body, sectionEnd); end >= 0 {
		body = body[:end]
	}
	if firstLine {
		if end := strings.IndexByte(body, '\n'); end >= 0 {
			body = body[:end]
		}
	}
	return body, true
}

func (c *Classifier) lowConfidenceStated(text string) bool {
	section, ok := c.section(text, c.confidenceMarkers, true)
	if !ok {
		return false
	}
	for _, term := range c.lowConfidence {
		for _, i := range indexAll(section, term) {
			if atWordStart(section, i) {
				return true
			}
		}
	}
	return false
}

// countHits counts non-overlapping occurrences of every phrase,
// ignoring occurrences directly preceded by a negation
func (c *Classifier) countHits(text string, phrases []string) int {
	count := 0
	for _, phrase := range phrases {
		for _, i := range indexAll(text, phrase) {
			if !c.negated(text, i) {
				count++
			}
		}
	}
	return count
}

func (c *Classifier) negated(text string, i int) bool {
	before := text[:i]
	for _, neg := range c.negations {
		if neg != "" && strings.HasSuffix(before, neg) {
			return true
		}
	}
	return false
}

func indexAll(text, phrase string) []int {
	if phrase == "" {
		return nil
	}
	var hits []int
	for offset := 0; offset < len(text); {
		i := strings.Index(text[offset:], phrase)
		if i < 0 {
			break
		}
		hits = append(hits, offset+i)
		offset += i + len(phrase)
	}
	return hits
}

func atWordStart(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !unicode.IsLetter(r)
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(s))
	}
	return out
}
