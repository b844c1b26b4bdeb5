package types

// ChatRole identifies who produced a transcript entry
type ChatRole string

const (
	// RoleUser marks messages typed by the user
	RoleUser ChatRole = "user"
	// RoleAssistant marks replies from the career coach
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one entry in a ChatTranscript.
// Scripted entries (greeting, fallbacks, apologies) are shown to the user but
// never sent upstream as model turns.
type ChatMessage struct {
	Role     ChatRole `json:"role"`
	Text     string   `json:"text"`
	Scripted bool     `json:"scripted,omitempty"`
}

// ChatTranscript is the ordered, append-only log of one chat session
type ChatTranscript []ChatMessage
