// Package llmtest provides a scriptable llm.Client for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/Sambhav-18066/ResumeCraftAI/internal/llm"
)

// MockClient implements llm.Client with optional function fields. Unset
// functions return the zero reply. Every call is recorded.
type MockClient struct {
	CompleteFunc func(ctx context.Context, req llm.CompletionRequest) (string, error)
	ChatFunc     func(ctx context.Context, req llm.ChatRequest) (string, error)
	GetModelFunc func(tier llm.ModelTier) string
	CloseFunc    func() error

	mu            sync.Mutex
	completeCalls []llm.CompletionRequest
	chatCalls     []llm.ChatRequest
}

// Complete implements llm.Client
func (m *MockClient) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	m.mu.Lock()
	m.completeCalls = append(m.completeCalls, req)
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return "", nil
}

// Chat implements llm.Client
func (m *MockClient) Chat(ctx context.Context, req llm.ChatRequest) (string, error) {
	m.mu.Lock()
	m.chatCalls = append(m.chatCalls, req)
	m.mu.Unlock()

	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, req)
	}
	return "", nil
}

// GetModel implements llm.Client
func (m *MockClient) GetModel(tier llm.ModelTier) string {
	if m.GetModelFunc != nil {
		return m.GetModelFunc(tier)
	}
	return "mock-model"
}

// Close implements llm.Client
func (m *MockClient) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// CompleteCalls returns a copy of every CompletionRequest received so far
func (m *MockClient) CompleteCalls() []llm.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]llm.CompletionRequest(nil), m.completeCalls...)
}

// ChatCalls returns a copy of every ChatRequest received so far
func (m *MockClient) ChatCalls() []llm.ChatRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]llm.ChatRequest(nil), m.chatCalls...)
}

// Replying returns a mock whose Complete and Chat always answer text.
func Replying(text string) *MockClient {
	return &MockClient{
		CompleteFunc: func(context.Context, llm.CompletionRequest) (string, error) { return text, nil },
		ChatFunc:     func(context.Context, llm.ChatRequest) (string, error) { return text, nil },
	}
}

// Failing returns a mock whose Complete and Chat always fail with err.
func Failing(err error) *MockClient {
	return &MockClient{
		CompleteFunc: func(context.Context, llm.CompletionRequest) (string, error) { return "", err },
		ChatFunc:     func(context.Context, llm.ChatRequest) (string, error) { return "", err },
	}
}
