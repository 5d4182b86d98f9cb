package extract

import (
	"strings"

	"github.com/ppiankov/claimcheck/internal/model"
)

// Miner sorts content lines into confirming and contradicting evidence
// by lexical markers
type Miner struct {
	confirm    []string
	contradict []string
}

// NewMiner creates a miner from the configured marker lists
func NewMiner(cfg model.EvidenceConfig) *Miner {
	return &Miner{
		confirm:    lowerAll(cfg.ConfirmMarkers),
		contradict: lowerAll(cfg.ContradictMarkers),
	}
}

// Mine returns the confirming and contradicting lines of content.
// A line carrying both kinds of marker counts as confirming.
// The claim is not consulted: matching is purely lexical.
func (m *Miner) Mine(content, _ string) (confirming, contradicting string) {
	var conf, contra []string

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		lower := strings.ToLower(line)

		switch {
		case containsAny(lower, m.confirm):
			conf = append(conf, line)
		case containsAny(lower, m.contradict):
			contra = append(contra, line)
		}
	}

	return strings.TrimSpace(strings.Join(conf, "\n")),
		strings.TrimSpace(strings.Join(contra, "\n"))
}

// MineInto fills the evidence fields of an extracted content record
func (m *Miner) MineInto(content *model.ExtractedContent, claim string) {
	if content == nil {
		return
	}
	content.Confirming, content.Contradicting = m.Mine(content.Text, claim)
}

func containsAny(s string, markers []string) bool {
	for _, marker := range markers {
		if marker != "" && strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(s))
	}
	return out
}
