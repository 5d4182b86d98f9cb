package llm

import (
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/claimcheck/internal/model"
	"github.com/sashabaranov/go-openai"
)

// apiKeyEnv maps providers to the environment variable holding their key
var apiKeyEnv = map[string]string{
	"groq":      "GROQ_API_KEY",
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
	"claude":    "ANTHROPIC_API_KEY",
}

// NewProvider creates a new LLM provider based on configuration
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "groq":
		return NewGroqProvider(config)

	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, fmt.Errorf("no LLM provider configured (set llm.provider)")

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: groq, openai, anthropic, ollama)", config.Provider)
	}
}

// DefaultModel returns the model a provider uses when none is configured.
// Ollama has no default and returns "".
func DefaultModel(provider string) string {
	switch strings.ToLower(provider) {
	case "groq":
		return DefaultGroqModel
	case "openai":
		return openai.GPT4oMini
	case "anthropic", "claude":
		return defaultAnthropicModel
	default:
		return ""
	}
}

// ConfigFromModel converts model configuration to llm.Config.
// A key set in the configuration wins over the provider's environment variable.
func ConfigFromModel(llmCfg model.LLMConfig, httpCfg model.HTTPConfig) Config {
	return Config{
		Provider:    llmCfg.Provider,
		Model:       llmCfg.Model,
		APIKey:      ResolveAPIKey(llmCfg.Provider, llmCfg.APIKey),
		BaseURL:     llmCfg.BaseURL,
		Timeout:     llmCfg.Timeout,
		MaxTokens:   llmCfg.MaxTokens,
		Temperature: llmCfg.Temperature,
		HTTPProxy:   httpCfg.HTTPProxy,
		HTTPSProxy:  httpCfg.HTTPSProxy,
		NoProxy:     httpCfg.NoProxy,
	}
}

// ResolveAPIKey returns configured if set, otherwise the provider's environment variable
func ResolveAPIKey(provider, configured string) string {
	if configured != "" {
		return configured
	}
	if env, ok := apiKeyEnv[strings.ToLower(provider)]; ok {
		return os.Getenv(env)
	}
	return ""
}

// APIKeyEnv returns the environment variable consulted for provider, if any
func APIKeyEnv(provider string) string {
	return apiKeyEnv[strings.ToLower(provider)]
}
