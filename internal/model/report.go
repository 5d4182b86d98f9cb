package model

import "time"

// VerdictLabel is the discrete outcome of a verification
type VerdictLabel string

const (
	VerdictTrue         VerdictLabel = "TRUE"
	VerdictFalse        VerdictLabel = "FALSE"
	VerdictInconclusive VerdictLabel = "INCONCLUSIVE"
)

// Verdict is the terminal output of the pipeline
type Verdict struct {
	Label    VerdictLabel `json:"label"`
	Analysis string       `json:"analysis"`       // Analysis text the label was derived from
	Rule     string       `json:"rule,omitempty"` // Classifier rule that decided the label
}

// Report is the rendered result of one verification request
type Report struct {
	ID             string         `json:"id"`
	Claim          string         `json:"claim"`
	CheckedAt      time.Time      `json:"checked_at"`
	Sources        []SourceResult `json:"sources"`
	ExtractedCount int            `json:"extracted_count"` // Sources with usable content
	Verdict        Verdict        `json:"verdict"`
	Provider       string         `json:"provider,omitempty"` // LLM provider used for synthesis
	Model          string         `json:"model,omitempty"`
}
