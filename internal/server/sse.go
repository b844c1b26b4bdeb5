package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Sambhav-18066/ResumeCraftAI/internal/app"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError sends an error event
func (s *SSEWriter) WriteError(body errorBody) {
	s.WriteEvent("error", body) //nolint:errcheck
}

// WriteComplete sends a completion event
func (s *SSEWriter) WriteComplete(sessionID string, ok bool) {
	status := "failed"
	if ok {
		status = "completed"
	}
	s.WriteEvent("complete", map[string]string{ //nolint:errcheck
		"session_id": sessionID,
		"status":     status,
	})
}

// handleGenerateStream runs a generation and reports it as events: "status"
// once accepted, then "document" or "error", then "complete". Requests that
// fail before the generation starts get a plain JSON error.
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	c, ok := s.workspace(w, r)
	if !ok {
		return
	}
	req, err := decodeGenerationRequest(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	if c.Pending() {
		s.fail(w, app.ErrInProgress)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	sse.WriteEvent("status", map[string]any{"session_id": c.ID, "pending": true}) //nolint:errcheck

	snap, err := c.Submit(r.Context(), req)
	if err != nil {
		sse.WriteError(newErrorBody(err))
		sse.WriteComplete(c.ID, false)
		return
	}
	resp, err := generateResponse(snap)
	if err != nil {
		sse.WriteError(newErrorBody(err))
		sse.WriteComplete(c.ID, false)
		return
	}
	sse.WriteEvent("document", resp) //nolint:errcheck
	sse.WriteComplete(c.ID, true)
}
