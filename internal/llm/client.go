package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sambhav-18066/ResumeCraftAI/internal/schemas"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/types"
)

// ErrRateLimited is wrapped into errors returned when the provider throttles us.
var ErrRateLimited = errors.New("rate limited by model provider")

// ErrEmptyResponse means the provider answered without any text.
var ErrEmptyResponse = errors.New("empty response from model")

// CompletionRequest is a single-shot call.
type CompletionRequest struct {
	Tier              ModelTier
	SystemInstruction string
	// Schema constrains output to JSON of this shape; nil asks for free text.
	Schema *schemas.Node
	Prompt string
	// MaxOutputTokens caps output length; zero uses the provider default.
	MaxOutputTokens int32
	// ThinkingBudget caps internal reasoning tokens; zero uses the provider default.
	ThinkingBudget int32
}

// Turn is one prior message of a conversation
type Turn struct {
	Role types.ChatRole
	Text string
}

// ChatRequest is a multi-turn call: History plus the new user Message.
type ChatRequest struct {
	Tier              ModelTier
	SystemInstruction string
	History           []Turn
	Message           string
}

// Client is an abstraction over LLM providers
type Client interface {
	// Complete returns the model's text for a single prompt
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	// Chat returns the model's reply to req.Message given the history
	Chat(ctx context.Context, req ChatRequest) (string, error)
	// GetModel returns the provider model name for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates the client for config.Provider
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	case ProviderGenAI, "":
		return NewGenAIClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", config.Provider)
	}
}

// IsRateLimited reports whether err came from provider throttling
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

func rateLimited(err error) error {
	return fmt.Errorf("%w: %v", ErrRateLimited, err)
}
