package domain

import "time"

// Default configuration values.
const (
	DefaultChunkSize        = 1000
	DefaultChunkOverlap     = 200
	DefaultTopK             = 5
	DefaultMaxEvidenceChars = 12000
	DefaultWebSearchResults = 5
	DefaultWebSearchTimeout = 10 * time.Second
	DefaultGovernanceTime   = 30 * time.Second
)

// ChunkingSettings configures the ingestion chunker.
type ChunkingSettings struct {
	// Size is the chunk window size in characters.
	Size int `toml:"size"`

	// Overlap is the number of characters shared with the previous
	// chunk, so a match near a window boundary is not lost.
	Overlap int `toml:"overlap"`
}

// RetrievalSettings configures the lexical retrieval engine.
type RetrievalSettings struct {
	// TopK is the maximum number of document evidence items returned.
	TopK int `toml:"top_k"`

	// MaxEvidenceChars caps the total size of the evidence bundle
	// embedded into the model prompt.
	MaxEvidenceChars int `toml:"max_evidence_chars"`
}

// WebSearchSettings configures the external web search provider.
type WebSearchSettings struct {
	// Enabled toggles web evidence. Web search is optional context:
	// provider failures degrade to empty results.
	Enabled bool `toml:"enabled"`

	// MaxResults is the maximum number of web evidence items.
	MaxResults int `toml:"max_results"`

	// Timeout bounds each provider request.
	Timeout time.Duration `toml:"timeout"`
}

// GovernanceSettings configures the secondary evaluator.
type GovernanceSettings struct {
	// Enabled toggles the governance evaluation pass.
	Enabled bool `toml:"enabled"`

	// Timeout bounds the evaluator call; a timeout degrades to the
	// documented fallback report.
	Timeout time.Duration `toml:"timeout"`
}

// Supported LLM providers.
const (
	AIProviderOpenAI    = "openai"
	AIProviderAnthropic = "anthropic"
)

// LLMSettings configures a language model provider.
type LLMSettings struct {
	// Provider selects the adapter ("openai" or "anthropic").
	Provider string `toml:"provider"`

	// Model is the provider model identifier.
	Model string `toml:"model"`

	// BaseURL overrides the provider API base URL (optional).
	// Useful for OpenAI-compatible gateways such as OpenRouter.
	BaseURL string `toml:"base_url"`

	// APIKey authenticates against the provider. Usually supplied via
	// environment rather than the settings file.
	APIKey string `toml:"api_key"`

	// Timeout bounds each model request.
	Timeout time.Duration `toml:"timeout"`
}

// IsConfigured reports whether the settings identify a usable provider.
func (s *LLMSettings) IsConfigured() bool {
	return s != nil && s.Provider != "" && s.APIKey != ""
}

// Settings is the explicit configuration object passed into services at
// construction. There is no global configuration singleton.
type Settings struct {
	Chunking   ChunkingSettings   `toml:"chunking"`
	Retrieval  RetrievalSettings  `toml:"retrieval"`
	WebSearch  WebSearchSettings  `toml:"web_search"`
	Governance GovernanceSettings `toml:"governance"`

	// LLM configures the primary answering model.
	LLM LLMSettings `toml:"llm"`

	// Evaluator configures the secondary governance model. When empty,
	// the evaluator reuses the primary model settings.
	Evaluator LLMSettings `toml:"evaluator"`

	// SystemPrompt is prepended to the composed instruction.
	SystemPrompt string `toml:"system_prompt"`
}

// DefaultSettings returns the documented defaults.
func DefaultSettings() Settings {
	return Settings{
		Chunking: ChunkingSettings{
			Size:    DefaultChunkSize,
			Overlap: DefaultChunkOverlap,
		},
		Retrieval: RetrievalSettings{
			TopK:             DefaultTopK,
			MaxEvidenceChars: DefaultMaxEvidenceChars,
		},
		WebSearch: WebSearchSettings{
			Enabled:    true,
			MaxResults: DefaultWebSearchResults,
			Timeout:    DefaultWebSearchTimeout,
		},
		Governance: GovernanceSettings{
			Enabled: true,
			Timeout: DefaultGovernanceTime,
		},
	}
}
