package llm

import (
	"testing"

	"github.com/ppiankov/claimcheck/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		provider string
		apiKey   string
		wantName string
		wantErr  bool
	}{
		{provider: "groq", apiKey: "k", wantName: "groq"},
		{provider: "GROQ", apiKey: "k", wantName: "groq"},
		{provider: "openai", apiKey: "k", wantName: "openai"},
		{provider: "anthropic", apiKey: "k", wantName: "anthropic"},
		{provider: "claude", apiKey: "k", wantName: "anthropic"},
		{provider: "ollama", wantName: "ollama"},
		{provider: "groq", wantErr: true},
		{provider: "", wantErr: true},
		{provider: "bard", apiKey: "k", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			p, err := NewProvider(Config{Provider: tt.provider, APIKey: tt.apiKey})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, p.Name())
		})
	}
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "from-env")
	t.Setenv("ANTHROPIC_API_KEY", "anthropic-env")

	assert.Equal(t, "from-config", ResolveAPIKey("groq", "from-config"))
	assert.Equal(t, "from-env", ResolveAPIKey("groq", ""))
	assert.Equal(t, "anthropic-env", ResolveAPIKey("Claude", ""))
	assert.Empty(t, ResolveAPIKey("ollama", ""))
}

func TestConfigFromModel(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "env-key")

	cfg := model.DefaultConfig()
	cfg.HTTP.HTTPSProxy = "http://proxy:3128"

	llmCfg := ConfigFromModel(cfg.LLM, cfg.HTTP)

	assert.Equal(t, "groq", llmCfg.Provider)
	assert.Empty(t, llmCfg.Model, "providers fill in their own default")
	assert.Equal(t, "env-key", llmCfg.APIKey)
	assert.Equal(t, 1500, llmCfg.MaxTokens)
	assert.Equal(t, 60, llmCfg.Timeout)
	assert.Equal(t, "http://proxy:3128", llmCfg.HTTPSProxy)
}

func TestDefaultModel(t *testing.T) {
	tests := []struct {
		provider string
		expected string
	}{
		{"groq", DefaultGroqModel},
		{"openai", "gpt-4o-mini"},
		{"OpenAI", "gpt-4o-mini"},
		{"anthropic", defaultAnthropicModel},
		{"claude", defaultAnthropicModel},
		{"ollama", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DefaultModel(tt.provider), "DefaultModel(%q)", tt.provider)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "groq", cfg.Provider)
	assert.Equal(t, DefaultGroqModel, cfg.Model)
	assert.Zero(t, cfg.Temperature)
}
