package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/Sambhav-18066/ResumeCraftAI/internal/app"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/rendering"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/types"
)

// maxBodyBytes bounds request bodies; pasted resumes are small.
const maxBodyBytes = 1 << 20

// SessionResponse is returned when a workspace is created or inspected
type SessionResponse struct {
	ID         string               `json:"id"`
	Status     app.Status           `json:"status"`
	Transcript types.ChatTranscript `json:"transcript"`
}

// GenerateResponse carries a new document and its rendered fragment
type GenerateResponse struct {
	Document *types.ResumeDocument `json:"document"`
	HTML     string                `json:"html"`
}

// ChatRequest is the body of POST /sessions/{id}/chat
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries the reply and the whole transcript after it
type ChatResponse struct {
	Reply      string               `json:"reply"`
	Transcript types.ChatTranscript `json:"transcript"`
	Error      string               `json:"error,omitempty"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	c, err := s.registry.Open()
	if err != nil {
		log.Printf("[server] failed to open workspace: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to open session")
		return
	}
	s.jsonResponse(w, http.StatusCreated, sessionResponse(c))
}

func (s *Server) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	c, ok := s.workspace(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, sessionResponse(c))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.registry.Close(id) {
		s.fail(w, &ErrSessionNotFound{ID: id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	c, ok := s.workspace(w, r)
	if !ok {
		return
	}
	req, err := decodeGenerationRequest(r)
	if err != nil {
		s.fail(w, err)
		return
	}

	snap, err := c.Submit(r.Context(), req)
	if err != nil {
		s.fail(w, err)
		return
	}

	resp, err := generateResponse(snap)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	c, ok := s.workspace(w, r)
	if !ok {
		return
	}
	c.Reset()
	s.jsonResponse(w, http.StatusOK, c.Status())
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	c, ok := s.workspace(w, r)
	if !ok {
		return
	}
	snap := c.Current()
	if snap == nil {
		s.fail(w, app.ErrNoDocument)
		return
	}
	s.jsonResponse(w, http.StatusOK, snap.Document)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	s.serveView(w, r, "text/html; charset=utf-8", (*app.Controller).PreviewHTML)
}

func (s *Server) handlePrint(w http.ResponseWriter, r *http.Request) {
	s.serveView(w, r, "text/html; charset=utf-8", (*app.Controller).PrintHTML)
}

func (s *Server) handleLaTeX(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Disposition", `attachment; filename="resume.tex"`)
	s.serveView(w, r, "application/x-tex; charset=utf-8", (*app.Controller).LaTeX)
}

func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
	c, ok := s.workspace(w, r)
	if !ok {
		return
	}
	pdf, err := c.PDF(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="resume.pdf"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("[export] failed to write PDF: %v", err)
	}
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	c, ok := s.workspace(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"transcript": c.Chat().Transcript()})
}

// handleChat always answers 200 once the message reached the session: a
// failed model call is already part of the transcript as an apology.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	c, ok := s.workspace(w, r)
	if !ok {
		return
	}
	var body ChatRequest
	if err := decodeBody(r, &body); err != nil {
		s.fail(w, err)
		return
	}

	session := c.Chat()
	reply, err := session.Send(r.Context(), body.Message)
	resp := ChatResponse{Reply: reply}
	if err != nil {
		if reply == "" {
			s.fail(w, err)
			return
		}
		log.Printf("[chat] workspace %s: %v", c.ID, err)
		resp.Error = err.Error()
	}
	resp.Transcript = session.Transcript()
	s.jsonResponse(w, http.StatusOK, resp)
}

// workspace resolves {id} or writes a 404
func (s *Server) workspace(w http.ResponseWriter, r *http.Request) (*app.Controller, bool) {
	id := r.PathValue("id")
	c, ok := s.registry.Get(id)
	if !ok {
		s.fail(w, &ErrSessionNotFound{ID: id})
		return nil, false
	}
	return c, true
}

func (s *Server) serveView(w http.ResponseWriter, r *http.Request, contentType string, view func(*app.Controller) (string, error)) {
	c, ok := s.workspace(w, r)
	if !ok {
		return
	}
	body, err := view(c)
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, body); err != nil {
		log.Printf("[server] failed to write view: %v", err)
	}
}

// fail writes err with the status HTTPStatus maps it to
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError && s.verbose {
		log.Printf("[server] %d: %v", status, err)
	}
	s.jsonResponse(w, status, newErrorBody(err))
}

func sessionResponse(c *app.Controller) SessionResponse {
	return SessionResponse{
		ID:         c.ID,
		Status:     c.Status(),
		Transcript: c.Chat().Transcript(),
	}
}

func generateResponse(snap *app.Snapshot) (GenerateResponse, error) {
	tree := rendering.RenderSections(snap.Document, snap.Style, snap.Selection)
	html, err := rendering.HTMLFragment(tree)
	if err != nil {
		return GenerateResponse{}, err
	}
	return GenerateResponse{Document: snap.Document, HTML: html}, nil
}

// decodeGenerationRequest reads the body and fills in defaults: page limit 1,
// the Professional style and every section when the list is missing.
func decodeGenerationRequest(r *http.Request) (types.GenerationRequest, error) {
	var req types.GenerationRequest
	if err := decodeBody(r, &req); err != nil {
		return req, err
	}
	if req.PageLimit == 0 {
		req.PageLimit = 1
	}
	if req.Style == "" {
		req.Style = types.StyleProfessional
	}
	if req.SelectedSections == nil {
		req.SelectedSections = types.AllSections()
	}
	return req, nil
}

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return &ErrBadRequest{Message: "request body is empty"}
		}
		return &ErrBadRequest{Message: "invalid JSON body", Cause: err}
	}
	return nil
}
