package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Sambhav-18066/ResumeCraftAI/internal/llm"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/llm/llmtest"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/prompts"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSession(t *testing.T, client llm.Client, opts Options) *Session {
	t.Helper()
	s, err := Open(client, opts)
	require.NoError(t, err)
	return s
}

func TestOpen_StartsWithGreeting(t *testing.T) {
	s := openSession(t, llmtest.Replying("hi"), DefaultOptions())

	transcript := s.Transcript()
	require.Len(t, transcript, 1)
	assert.Equal(t, types.RoleAssistant, transcript[0].Role)
	assert.Equal(t, prompts.MustGet(prompts.ChatFile, "greeting"), transcript[0].Text)
	assert.True(t, transcript[0].Scripted)
	assert.NotEmpty(t, s.ID)
}

func TestOpen_SessionsAreIndependent(t *testing.T) {
	client := llmtest.Replying("reply")
	a := openSession(t, client, DefaultOptions())
	b := openSession(t, client, DefaultOptions())

	_, err := a.Send(context.Background(), "hello")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, a.Transcript(), 3)
	assert.Len(t, b.Transcript(), 1)
}

func TestSend_Success(t *testing.T) {
	client := llmtest.Replying("Lead with the outcome.")
	s := openSession(t, client, DefaultOptions())

	reply, err := s.Send(context.Background(), "How do I phrase a promotion?")
	require.NoError(t, err)
	assert.Equal(t, "Lead with the outcome.", reply)

	transcript := s.Transcript()
	require.Len(t, transcript, 3)
	assert.Equal(t, types.ChatMessage{Role: types.RoleUser, Text: "How do I phrase a promotion?"}, transcript[1])
	assert.Equal(t, types.ChatMessage{Role: types.RoleAssistant, Text: "Lead with the outcome."}, transcript[2])

	calls := client.ChatCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "How do I phrase a promotion?", calls[0].Message)
	assert.Equal(t, llm.TierAdvanced, calls[0].Tier)
	assert.Equal(t, prompts.MustGet(prompts.ChatFile, "system-instruction"), calls[0].SystemInstruction)
	assert.Empty(t, calls[0].History, "the scripted greeting is not sent upstream")
}

func TestSend_TransportFailureAppendsApology(t *testing.T) {
	s := openSession(t, llmtest.Failing(errors.New("connection reset")), DefaultOptions())
	before := len(s.Transcript())

	reply, err := s.Send(context.Background(), "How do I phrase a promotion?")

	var chatErr *ChatError
	require.ErrorAs(t, err, &chatErr)
	apology := prompts.MustGet(prompts.ChatFile, "apology")
	assert.Equal(t, apology, reply)

	transcript := s.Transcript()
	require.Len(t, transcript, before+2)
	assert.Equal(t, types.RoleUser, transcript[before].Role)
	assert.Equal(t, "How do I phrase a promotion?", transcript[before].Text)
	assert.Equal(t, types.RoleAssistant, transcript[before+1].Role)
	assert.Equal(t, apology, transcript[before+1].Text)
}

func TestSend_EmptyResponseUsesFallback(t *testing.T) {
	s := openSession(t, llmtest.Failing(llm.ErrEmptyResponse), DefaultOptions())

	reply, err := s.Send(context.Background(), "hello?")

	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)
	assert.Equal(t, prompts.MustGet(prompts.ChatFile, "empty-response"), reply)
	assert.Len(t, s.Transcript(), 3)
}

func TestSend_BlankMessage(t *testing.T) {
	client := llmtest.Replying("x")
	s := openSession(t, client, DefaultOptions())

	_, err := s.Send(context.Background(), "   ")

	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Len(t, s.Transcript(), 1)
	assert.Empty(t, client.ChatCalls())
}

func TestSend_HistoryCarriesCompletedExchanges(t *testing.T) {
	fail := true
	client := &llmtest.MockClient{
		ChatFunc: func(_ context.Context, req llm.ChatRequest) (string, error) {
			if req.Message == "second" && fail {
				fail = false
				return "", errors.New("timeout")
			}
			return "re: " + req.Message, nil
		},
	}
	s := openSession(t, client, DefaultOptions())
	ctx := context.Background()

	_, err := s.Send(ctx, "first")
	require.NoError(t, err)
	_, err = s.Send(ctx, "second")
	require.Error(t, err)
	_, err = s.Send(ctx, "third")
	require.NoError(t, err)

	calls := client.ChatCalls()
	require.Len(t, calls, 3)
	assert.Equal(t, []llm.Turn{
		{Role: types.RoleUser, Text: "first"},
		{Role: types.RoleAssistant, Text: "re: first"},
	}, calls[2].History, "the failed exchange and scripted lines stay local")

	// greeting + 3 user messages + 3 replies
	assert.Len(t, s.Transcript(), 7)
}

func TestSend_HistoryLimit(t *testing.T) {
	client := &llmtest.MockClient{
		ChatFunc: func(_ context.Context, req llm.ChatRequest) (string, error) {
			return "re: " + req.Message, nil
		},
	}
	s := openSession(t, client, Options{HistoryLimit: 3})
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		_, err := s.Send(ctx, fmt.Sprintf("q%d", i))
		require.NoError(t, err)
	}

	last := client.ChatCalls()[3]
	assert.Equal(t, []llm.Turn{
		{Role: types.RoleUser, Text: "q3"},
		{Role: types.RoleAssistant, Text: "re: q3"},
	}, last.History, "an odd limit never starts history on a model turn")
	assert.Len(t, s.Transcript(), 9, "the local transcript is never truncated")
}

func TestSend_ConcurrentSendsDoNotTear(t *testing.T) {
	s := openSession(t, llmtest.Replying("ok"), DefaultOptions())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = s.Send(context.Background(), fmt.Sprintf("m%d", i))
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.Transcript(), 21)
}
