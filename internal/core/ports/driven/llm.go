package driven

import "context"

// LLMService provides language model chat completions.
//
// Implementations may include:
//   - OpenAI and OpenAI-compatible gateways (OpenRouter)
//   - Anthropic (Claude)
type LLMService interface {
	// Chat conducts a conversation and returns the assistant's reply.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64

	// JSONResponse requests a schema-constrained JSON object response
	// where the provider supports it. Providers without native JSON
	// mode rely on prompt instructions instead.
	JSONResponse bool
}
