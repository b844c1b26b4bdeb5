package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Sambhav-18066/ResumeCraftAI/internal/types"
	legacy "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GeminiClient implements Client with github.com/google/generative-ai-go.
// That SDK has no thinking-budget knob, so CompletionRequest.ThinkingBudget
// is ignored here.
type GeminiClient struct {
	client *legacy.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := legacy.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// Complete implements Client
func (c *GeminiClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	model, err := c.model(req.Tier, req.SystemInstruction)
	if err != nil {
		return "", err
	}
	if req.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(req.MaxOutputTokens)
	}
	if req.Schema != nil {
		model.ResponseMIMEType = "application/json"
		model.ResponseSchema = toLegacySchema(req.Schema)
	}

	ctx, cancel := c.config.withTimeout(ctx)
	defer cancel()

	resp, err := model.GenerateContent(ctx, legacy.Text(req.Prompt))
	if err != nil {
		return "", classifyGeminiError(err)
	}
	return extractTextFromResponse(resp)
}

// Chat implements Client
func (c *GeminiClient) Chat(ctx context.Context, req ChatRequest) (string, error) {
	model, err := c.model(req.Tier, req.SystemInstruction)
	if err != nil {
		return "", err
	}

	session := model.StartChat()
	session.History = make([]*legacy.Content, 0, len(req.History))
	for _, turn := range req.History {
		role := "user"
		if turn.Role == types.RoleAssistant {
			role = "model"
		}
		session.History = append(session.History, &legacy.Content{
			Role:  role,
			Parts: []legacy.Part{legacy.Text(turn.Text)},
		})
	}

	ctx, cancel := c.config.withTimeout(ctx)
	defer cancel()

	resp, err := session.SendMessage(ctx, legacy.Text(req.Message))
	if err != nil {
		return "", classifyGeminiError(err)
	}
	return extractTextFromResponse(resp)
}

// GetModel returns the model name for a tier
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func (c *GeminiClient) model(tier ModelTier, systemInstruction string) (*legacy.GenerativeModel, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return nil, fmt.Errorf("no model configured for tier %s", tier)
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(c.config.Temperature)
	if systemInstruction != "" {
		model.SystemInstruction = legacy.NewUserContent(legacy.Text(systemInstruction))
	}
	return model, nil
}

// extractTextFromResponse joins the text parts of the first candidate
func extractTextFromResponse(resp *legacy.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(legacy.Text); ok {
			parts = append(parts, string(text))
		}
	}

	text := strings.Join(parts, "")
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// classifyGeminiError spots throttling on either transport the SDK may use:
// ResourceExhausted over gRPC, HTTP 429 over REST.
func classifyGeminiError(err error) error {
	if status.Code(err) == codes.ResourceExhausted {
		return rateLimited(err)
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusTooManyRequests {
		return rateLimited(err)
	}
	return fmt.Errorf("failed to generate content: %w", err)
}
