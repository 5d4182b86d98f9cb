package llm

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ppiankov/claimcheck/internal/model"
)

var errEmptyAnalysis = errors.New("empty analysis from text-generation service")

// Synthesizer asks a provider for an analysis of a verification bundle.
// It makes exactly one call per bundle: no retry, no fallback.
type Synthesizer struct {
	provider    Provider
	model       string
	maxTokens   int
	temperature float32
}

// NewSynthesizer creates a synthesizer over provider
func NewSynthesizer(provider Provider, config Config) *Synthesizer {
	return &Synthesizer{
		provider:    provider,
		model:       config.Model,
		maxTokens:   config.MaxTokens,
		temperature: config.Temperature,
	}
}

// ProviderName returns the name of the backing provider
func (s *Synthesizer) ProviderName() string {
	return s.provider.Name()
}

// Model returns the configured model name, or the provider's default
// when none is configured
func (s *Synthesizer) Model() string {
	if s.model != "" {
		return s.model
	}
	return DefaultModel(s.provider.Name())
}

// Synthesize returns the analysis text for bundle.
// Any failure, including an empty answer, is a *model.SynthesisError.
func (s *Synthesizer) Synthesize(ctx context.Context, bundle model.VerificationBundle) (string, error) {
	prompt, err := BuildPrompt(bundle)
	if err != nil {
		return "", &model.SynthesisError{Claim: bundle.Claim, Err: err}
	}

	slog.Debug("requesting analysis", "provider", s.provider.Name(), "model", s.model, "prompt_bytes", len(prompt))

	resp, err := s.provider.Generate(ctx, GenerateRequest{
		System:      SystemPrompt,
		Prompt:      prompt,
		Model:       s.model,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		return "", &model.SynthesisError{Claim: bundle.Claim, Err: err}
	}

	analysis := strings.TrimSpace(resp.Text)
	if analysis == "" {
		return "", &model.SynthesisError{Claim: bundle.Claim, Err: errEmptyAnalysis}
	}

	slog.Debug("analysis received", "provider", s.provider.Name(), "model", resp.Model, "tokens", resp.TokensUsed)
	return analysis, nil
}
