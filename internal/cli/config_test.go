package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/claimcheck/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("CLAIMCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(newTestViper())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), cfg)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
search:
  max_results: 8
llm:
  provider: openai
  model: gpt-4o-mini
server:
  request_timeout: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	t.Setenv("CLAIMCHECK_LLM_MODEL", "gpt-4o")
	t.Setenv("CLAIMCHECK_CONCURRENCY_EXTRACT_WORKERS", "9")

	v := newTestViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := loadConfig(v)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Search.MaxResults)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model, "env wins over the config file")
	assert.Equal(t, 9, cfg.Concurrency.ExtractWorkers)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)

	// Untouched sections keep their defaults
	defaults := model.DefaultConfig()
	assert.Equal(t, defaults.Search.Selectors, cfg.Search.Selectors)
	assert.Equal(t, defaults.Classifier, cfg.Classifier)
}

func TestLoadConfig_ProviderFromEnvUsesProviderModel(t *testing.T) {
	t.Setenv("CLAIMCHECK_LLM_PROVIDER", "openai")

	cfg, err := loadConfig(newTestViper())
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Empty(t, cfg.LLM.Model, "no Groq model should leak to another provider")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  provider: anthropic\n"), 0644))
	v := newTestViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	t.Setenv("CLAIMCHECK_LLM_PROVIDER", "")

	cfg, err = loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Empty(t, cfg.LLM.Model)
}

func TestLLMLabel(t *testing.T) {
	assert.Equal(t, "openai/gpt-4o-mini", llmLabel(model.LLMConfig{Provider: "openai"}))
	assert.Equal(t, "groq/llama3-8b-8192", llmLabel(model.DefaultConfig().LLM))
	assert.Equal(t, "ollama/mistral", llmLabel(model.LLMConfig{Provider: "ollama", Model: "mistral"}))
}

func TestInitConfigFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".claimcheck")

	path, err := initConfigFile(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var cfg model.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, "groq", cfg.LLM.Provider)
	assert.Equal(t, []string{"readability", "loader", "strip"}, cfg.Extract.Strategies)

	_, err = initConfigFile(dir)
	assert.ErrorContains(t, err, "already exists")
}

func TestRedacted(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.LLM.APIKey = "gsk_secret"

	out := redacted(cfg)

	assert.Equal(t, "********", out.LLM.APIKey)
	assert.Equal(t, "gsk_secret", cfg.LLM.APIKey)
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"no sources", &model.RetrievalError{Claim: "x", Err: model.ErrNoSources}, "no sources found"},
		{"retrieval", &model.RetrievalError{Claim: "x", Err: errors.New("status 503")}, "source search failed"},
		{"synthesis", &model.SynthesisError{Claim: "x", Err: errors.New("401")}, "analysis failed"},
		{"timeout", context.DeadlineExceeded, "timed out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := describeError(tt.err)
			assert.Contains(t, got.Error(), tt.want)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestReportFilename(t *testing.T) {
	tests := []struct {
		index int
		claim string
		want  string
	}{
		{0, "O Brasil é o maior produtor de café", "001-o-brasil-é-o-maior-produtor-de-café"},
		{11, "  Lula disse: \"sim\"?  ", "012-lula-disse-sim"},
		{2, "../../etc/passwd", "003-etc-passwd"},
		{4, "!!!", "005"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, reportFilename(tt.index, tt.claim))
	}

	long := reportFilename(0, strings.Repeat("a", 200))
	assert.Equal(t, "001-"+strings.Repeat("a", 60), long)
}
