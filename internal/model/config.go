package model

import "time"

// DefaultUserAgent is a desktop browser identification sent to the search
// provider and to source pages; bot-like agents are commonly blocked.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// Config is the complete claimcheck configuration
type Config struct {
	HTTP         HTTPConfig        `yaml:"http" mapstructure:"http"`
	Search       SearchConfig      `yaml:"search" mapstructure:"search"`
	Extract      ExtractConfig     `yaml:"extract" mapstructure:"extract"`
	RateLimiting RateLimitConfig   `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Evidence     EvidenceConfig    `yaml:"evidence" mapstructure:"evidence"`
	Authority    AuthorityConfig   `yaml:"authority" mapstructure:"authority"`
	Classifier   ClassifierConfig  `yaml:"classifier" mapstructure:"classifier"`
	LLM          LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Concurrency  ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Server       ServerConfig      `yaml:"server" mapstructure:"server"`
}

// HTTPConfig holds settings shared by every outbound fetch
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	MaxRetries   int           `yaml:"max_retries" mapstructure:"max_retries"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// SearchConfig describes the search provider endpoint and its markup
type SearchConfig struct {
	// Endpoint is a format string receiving the URL-encoded claim
	Endpoint   string          `yaml:"endpoint" mapstructure:"endpoint"`
	MaxResults int             `yaml:"max_results" mapstructure:"max_results"`
	Selectors  SearchSelectors `yaml:"selectors" mapstructure:"selectors"`
}

// SearchSelectors are the CSS selectors used to parse result markup.
// Title, Link, Snippet, Source and Date are evaluated inside Container.
type SearchSelectors struct {
	Container string `yaml:"container" mapstructure:"container"`
	Title     string `yaml:"title" mapstructure:"title"`
	Link      string `yaml:"link" mapstructure:"link"`
	Snippet   string `yaml:"snippet" mapstructure:"snippet"`
	Source    string `yaml:"source" mapstructure:"source"`
	Date      string `yaml:"date" mapstructure:"date"`

	// IgnorePaths are path prefixes on the provider's own host that are
	// navigation (more results, settings) rather than results
	IgnorePaths []string `yaml:"ignore_paths,omitempty" mapstructure:"ignore_paths"`
}

// ExtractConfig controls per-source content extraction
type ExtractConfig struct {
	Strategies    []string `yaml:"strategies" mapstructure:"strategies"` // Ordered fallback chain
	RespectRobots bool     `yaml:"respect_robots" mapstructure:"respect_robots"`
	MaxTextBytes  int      `yaml:"max_text_bytes" mapstructure:"max_text_bytes"`
}

// RateLimitConfig controls per-domain fetch pacing
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// EvidenceConfig holds the lexical markers used to mine evidence lines
type EvidenceConfig struct {
	ConfirmMarkers    []string `yaml:"confirm_markers" mapstructure:"confirm_markers"`
	ContradictMarkers []string `yaml:"contradict_markers" mapstructure:"contradict_markers"`
}

// AuthorityConfig maps source domains and paths to authority tiers.
// Domains match themselves and any subdomain.
type AuthorityConfig struct {
	PrimaryDomains   []string          `yaml:"primary_domains" mapstructure:"primary_domains"`
	SecondaryDomains []string          `yaml:"secondary_domains" mapstructure:"secondary_domains"`
	DomainMap        map[string]string `yaml:"domain_map,omitempty" mapstructure:"domain_map"` // Exact host overrides
	PathPatterns     []PathPattern     `yaml:"path_patterns,omitempty" mapstructure:"path_patterns"`
}

// PathPattern assigns a tier to URLs whose path matches Pattern
type PathPattern struct {
	Pattern string `yaml:"pattern" mapstructure:"pattern"` // Regular expression
	Tier    string `yaml:"tier" mapstructure:"tier"`
}

// ClassifierConfig holds every phrase list used by the verdict classifier.
// Phrases are matched against lowercased analysis text.
type ClassifierConfig struct {
	ConclusionMarkers    []string `yaml:"conclusion_markers" mapstructure:"conclusion_markers"`
	ExplicitFalseTerms   []string `yaml:"explicit_false_terms" mapstructure:"explicit_false_terms"`
	ExplicitTrueTerms    []string `yaml:"explicit_true_terms" mapstructure:"explicit_true_terms"`
	FalseIndicators      []string `yaml:"false_indicators" mapstructure:"false_indicators"`
	TrueIndicators       []string `yaml:"true_indicators" mapstructure:"true_indicators"`
	ConfidenceMarkers    []string `yaml:"confidence_markers" mapstructure:"confidence_markers"`
	LowConfidenceTerms   []string `yaml:"low_confidence_terms" mapstructure:"low_confidence_terms"`
	NoContradictionTerms []string `yaml:"no_contradiction_terms" mapstructure:"no_contradiction_terms"`
	NegationPrefixes     []string `yaml:"negation_prefixes" mapstructure:"negation_prefixes"`
}

// LLMConfig selects the text-generation backend
type LLMConfig struct {
	Provider    string  `yaml:"provider" mapstructure:"provider"` // groq, openai, anthropic, ollama
	Model       string  `yaml:"model" mapstructure:"model"` // empty selects the provider default
	APIKey      string  `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL     string  `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout     int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float32 `yaml:"temperature" mapstructure:"temperature"`
}

// ConcurrencyConfig bounds parallel work
type ConcurrencyConfig struct {
	ExtractWorkers int `yaml:"extract_workers" mapstructure:"extract_workers"` // Per-request source fan-out
	BatchWorkers   int `yaml:"batch_workers" mapstructure:"batch_workers"`     // Claims verified in parallel by `batch`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr           string        `yaml:"addr" mapstructure:"addr"`
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      15 * time.Second,
			UserAgent:    DefaultUserAgent,
			MaxBodyBytes: 5 << 20,
			MaxRetries:   3,
		},
		Search: SearchConfig{
			Endpoint:   "https://www.google.com/search?q=%s&tbm=nws&hl=pt-BR&gl=BR",
			MaxResults: 5,
			Selectors: SearchSelectors{
				Container: "div.SoaBEf",
				Title:     "div.MBeuO",
				Link:      "a",
				Snippet:   ".GI74Re",
				Source:    ".NUnG9d span",
				Date:      ".LfVVr",
				IgnorePaths: []string{
					"/search", "/url", "/preferences", "/setprefs", "/advanced_search", "/webhp",
				},
			},
		},
		Extract: ExtractConfig{
			Strategies:    []string{"readability", "loader", "strip"},
			RespectRobots: true,
			MaxTextBytes:  50_000,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 2,
			BurstSize:         2,
		},
		Evidence: EvidenceConfig{
			ConfirmMarkers: []string{
				"confirma", "comprova", "verdade", "verídic", "de fato",
				"confirmed",
			},
			ContradictMarkers: []string{
				"falso", "falsa", "fake", "desmente", "boato", "mentira", "enganos",
				"false", "debunk", "hoax",
			},
		},
		Authority: AuthorityConfig{
			PrimaryDomains: []string{
				"gov.br", "jus.br", "leg.br", "mp.br", "who.int", "un.org",
				"aosfatos.org", "lupa.uol.com.br", "lupa.news", "boatos.org", "e-farsas.com",
				"checamos.afp.com", "projetocomprova.com.br",
			},
			SecondaryDomains: []string{
				"g1.globo.com", "folha.uol.com.br", "estadao.com.br", "oglobo.globo.com",
				"uol.com.br", "cnnbrasil.com.br", "bbc.com", "agenciabrasil.ebc.com.br",
				"poder360.com.br", "valor.globo.com", "reuters.com", "apnews.com",
			},
			PathPatterns: []PathPattern{
				{Pattern: `/fato-ou-fake/`, Tier: "primary"},
				{Pattern: `/estadao-verifica/`, Tier: "primary"},
				{Pattern: `/uol-confere/`, Tier: "primary"},
			},
		},
		Classifier: ClassifierConfig{
			ConclusionMarkers:  []string{"conclusão final", "final conclusion"},
			ExplicitFalseTerms: []string{"é falsa", "é falso", "is false"},
			ExplicitTrueTerms:  []string{"é verdadeira", "é verdadeiro", "is true"},
			FalseIndicators: []string{
				"é falsa", "é falso", "informação falsa", "notícia falsa", "fake news",
				"foi desmentid", "não há evidências", "não há provas", "contradiz",
				"sem fundamento", "enganos",
			},
			TrueIndicators: []string{
				"é verdadeira", "é verdadeiro", "foi confirmad", "confirma a afirmação",
				"fontes confirmam", "evidências confirmam", "é corroborad", "é precisa",
			},
			ConfidenceMarkers:    []string{"nível de confiança", "confidence level"},
			LowConfidenceTerms:   []string{"baixo", "baixa", "limitad", "low", "limited"},
			NoContradictionTerms: []string{"nenhuma contradição", "não foram encontradas contradições", "no contradictions"},
			NegationPrefixes:     []string{"não ", "nao ", "not ", "isn't ", "nem "},
		},
		LLM: LLMConfig{
			Provider:    "groq",
			Model:       "",
			Timeout:     60,
			MaxTokens:   1500,
			Temperature: 0,
		},
		Concurrency: ConcurrencyConfig{
			ExtractWorkers: 4,
			BatchWorkers:   2,
		},
		Server: ServerConfig{
			Addr:           ":8090",
			RequestTimeout: 3 * time.Minute,
		},
	}
}
