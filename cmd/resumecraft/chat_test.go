package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Sambhav-18066/ResumeCraftAI/internal/llm"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/llm/llmtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runChatWith(t *testing.T, stdin string) string {
	t.Helper()
	var stdout, stderr bytes.Buffer
	chatCmd.SetIn(strings.NewReader(stdin))
	chatCmd.SetOut(&stdout)
	chatCmd.SetErr(&stderr)
	t.Cleanup(func() {
		chatCmd.SetIn(nil)
		chatCmd.SetOut(nil)
		chatCmd.SetErr(nil)
	})
	require.NoError(t, runChat(chatCmd, nil))
	return stdout.String()
}

func TestChat_Conversation(t *testing.T) {
	client := &llmtest.MockClient{
		ChatFunc: func(_ context.Context, req llm.ChatRequest) (string, error) {
			return "You asked: " + req.Message, nil
		},
	}
	useMockClient(t, client)

	out := runChatWith(t, "How do I phrase a promotion?\n\n/history\n/quit\nnever sent\n")

	assert.Contains(t, out, "Coach: Hi! I am your AI career coach.")
	assert.Contains(t, out, "Coach: You asked: How do I phrase a promotion?")
	assert.Contains(t, out, "CHAT (3 messages)")

	calls := client.ChatCalls()
	require.Len(t, calls, 1, "blank lines and commands are never sent")
	assert.Empty(t, calls[0].History, "the scripted greeting is not sent upstream")
}

func TestChat_FailureShowsApology(t *testing.T) {
	useMockClient(t, llmtest.Failing(errors.New("offline")))

	out := runChatWith(t, "hello\n")

	assert.Contains(t, out, "Coach: Sorry, I'm having trouble connecting. Let's try again.")
}
