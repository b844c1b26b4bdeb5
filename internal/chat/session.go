// Package chat implements the career-coach conversation. A Session owns its
// transcript; sessions share nothing but the llm.Client they are given.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Sambhav-18066/ResumeCraftAI/internal/llm"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/prompts"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/types"
	"github.com/google/uuid"
)

// ErrEmptyMessage is returned by Send for blank input. The transcript is left
// untouched.
var ErrEmptyMessage = errors.New("message is empty")

// ChatError reports a failed model call. By the time it is returned the
// failure has already been absorbed into the transcript as a scripted reply.
type ChatError struct {
	Message string
	Cause   error
}

func (e *ChatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("chat error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("chat error: %s", e.Message)
}

func (e *ChatError) Unwrap() error {
	return e.Cause
}

// Options configures a Session
type Options struct {
	Tier llm.ModelTier
	// HistoryLimit caps how many prior messages go upstream. Zero sends all.
	// The local transcript is never truncated.
	HistoryLimit int
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{Tier: llm.TierAdvanced}
}

// Session is one conversation. Concurrent Sends are allowed; replies are
// appended in arrival order.
type Session struct {
	ID string

	client      llm.Client
	opts        Options
	instruction string
	apology     string
	fallback    string
	now         func() time.Time

	mu         sync.Mutex
	transcript types.ChatTranscript
	lastActive time.Time
}

// Open starts a session whose transcript holds the scripted greeting.
func Open(client llm.Client, opts Options) (*Session, error) {
	script := make(map[string]string, 4)
	for _, key := range []string{"system-instruction", "greeting", "apology", "empty-response"} {
		text, err := prompts.Get(prompts.ChatFile, key)
		if err != nil {
			return nil, fmt.Errorf("failed to load chat script: %w", err)
		}
		script[key] = text
	}
	if opts.Tier == "" {
		opts.Tier = llm.TierAdvanced
	}

	s := &Session{
		ID:          uuid.NewString(),
		client:      client,
		opts:        opts,
		instruction: script["system-instruction"],
		apology:     script["apology"],
		fallback:    script["empty-response"],
		now:         time.Now,
	}
	s.transcript = types.ChatTranscript{{Role: types.RoleAssistant, Text: script["greeting"], Scripted: true}}
	s.lastActive = s.now()
	return s, nil
}

// Send appends message, asks the model for a reply and appends that too. On
// failure the scripted apology (or empty-response line) is appended and
// returned along with a *ChatError, so the caller can always display the
// returned text.
func (s *Session) Send(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}

	s.mu.Lock()
	history := s.upstreamHistory()
	s.transcript = append(s.transcript, types.ChatMessage{Role: types.RoleUser, Text: message})
	s.lastActive = s.now()
	s.mu.Unlock()

	reply, err := s.client.Chat(ctx, llm.ChatRequest{
		Tier:              s.opts.Tier,
		SystemInstruction: s.instruction,
		History:           history,
		Message:           message,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = s.now()

	if err != nil {
		text := s.apology
		if errors.Is(err, llm.ErrEmptyResponse) {
			text = s.fallback
		}
		log.Printf("[chat] session %s: reply failed: %v", s.ID, err)
		s.transcript = append(s.transcript, types.ChatMessage{Role: types.RoleAssistant, Text: text, Scripted: true})
		return text, &ChatError{Message: "failed to get reply", Cause: err}
	}

	s.transcript = append(s.transcript, types.ChatMessage{Role: types.RoleAssistant, Text: reply})
	return reply, nil
}

// Transcript returns a copy of the conversation so far
func (s *Session) Transcript() types.ChatTranscript {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(types.ChatTranscript(nil), s.transcript...)
}

// LastActive returns when the session was last opened or sent to
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// upstreamHistory returns the completed exchanges the model should see: each
// user message paired with the real reply that followed it. Scripted lines
// and unanswered questions are left out, so turns alternate starting with the
// user, the order Gemini requires. Caller holds s.mu.
func (s *Session) upstreamHistory() []llm.Turn {
	var turns []llm.Turn
	for i := 0; i+1 < len(s.transcript); i++ {
		q, a := s.transcript[i], s.transcript[i+1]
		if q.Role != types.RoleUser || a.Role != types.RoleAssistant || a.Scripted {
			continue
		}
		turns = append(turns,
			llm.Turn{Role: types.RoleUser, Text: q.Text},
			llm.Turn{Role: types.RoleAssistant, Text: a.Text},
		)
		i++
	}

	if limit := s.opts.HistoryLimit; limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
		if turns[0].Role != types.RoleUser {
			turns = turns[1:]
		}
	}
	return turns
}
