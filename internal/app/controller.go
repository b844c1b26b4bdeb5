// Package app wires generation, rendering, export and chat into the
// application controller behind the CLI and the HTTP server.
package app

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Sambhav-18066/ResumeCraftAI/internal/chat"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/export"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/generation"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/rendering"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/types"
)

var (
	// ErrInProgress is returned by Submit while another generation is pending
	ErrInProgress = errors.New("a resume generation is already in progress")
	// ErrNoDocument is returned by views before the first successful generation
	ErrNoDocument = errors.New("no resume has been generated yet")
	// ErrExportUnavailable is returned by PDF when no renderer is configured
	ErrExportUnavailable = errors.New("PDF export is not configured")
)

// Snapshot is the current resume together with the options it was made with.
// Snapshots are replaced wholesale and never modified.
type Snapshot struct {
	Document    *types.ResumeDocument
	Style       types.StyleVariant
	Selection   types.SectionSelection
	GeneratedAt time.Time
}

// Status is what a UI needs to draw its form state
type Status struct {
	Pending     bool                 `json:"pending"`
	HasDocument bool                 `json:"has_document"`
	Error       string               `json:"error,omitempty"`
	ErrorKind   generation.ErrorKind `json:"error_kind,omitempty"`
}

// Controller owns one user's workspace: at most one generation in flight,
// the latest document, one error message, and a chat session.
type Controller struct {
	ID string

	extractor generation.Extractor
	session   *chat.Session
	pdf       export.Renderer
	now       func() time.Time

	pending atomic.Bool

	mu         sync.RWMutex
	current    *Snapshot
	errMsg     string
	errKind    generation.ErrorKind
	lastActive time.Time
}

// NewController creates a controller. pdf may be nil to disable PDF export.
// The controller takes its ID from the chat session.
func NewController(extractor generation.Extractor, session *chat.Session, pdf export.Renderer) *Controller {
	c := &Controller{
		ID:        session.ID,
		extractor: extractor,
		session:   session,
		pdf:       pdf,
		now:       time.Now,
	}
	c.lastActive = c.now()
	return c
}

// Submit runs one generation. While it is outstanding further calls fail
// fast with ErrInProgress and change nothing. On failure the previous
// document is kept and the error slot holds the new user message; on success
// the document is swapped in and the error slot cleared.
func (c *Controller) Submit(ctx context.Context, req types.GenerationRequest) (*Snapshot, error) {
	if !c.pending.CompareAndSwap(false, true) {
		return nil, ErrInProgress
	}
	defer c.pending.Store(false)
	c.touch()

	doc, err := c.extractor.Generate(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastActive = c.now()

	if err != nil {
		c.errMsg, c.errKind = userMessage(err)
		log.Printf("[generate] workspace %s: %v", c.ID, err)
		return nil, err
	}

	c.current = &Snapshot{
		Document:    doc,
		Style:       req.Style,
		Selection:   req.Selection(),
		GeneratedAt: c.now(),
	}
	c.errMsg, c.errKind = "", ""
	return c.current, nil
}

// Pending reports whether a generation is in flight
func (c *Controller) Pending() bool {
	return c.pending.Load()
}

// Current returns the latest snapshot, or nil
func (c *Controller) Current() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Status returns pending state, presence of a document and the error slot
func (c *Controller) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Status{
		Pending:     c.pending.Load(),
		HasDocument: c.current != nil,
		Error:       c.errMsg,
		ErrorKind:   c.errKind,
	}
}

// Reset drops the document and the error message. The chat is untouched.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
	c.errMsg, c.errKind = "", ""
	c.lastActive = c.now()
}

// View renders the current document with the style and sections it was
// generated with.
func (c *Controller) View() (*rendering.Node, error) {
	snap := c.Current()
	if snap == nil {
		return nil, ErrNoDocument
	}
	c.touch()
	return rendering.RenderSections(snap.Document, snap.Style, snap.Selection), nil
}

// PreviewHTML is the interactive HTML page
func (c *Controller) PreviewHTML() (string, error) {
	tree, err := c.View()
	if err != nil {
		return "", err
	}
	return rendering.PreviewPage(tree)
}

// PrintHTML is the page with interactive controls removed
func (c *Controller) PrintHTML() (string, error) {
	tree, err := c.View()
	if err != nil {
		return "", err
	}
	return rendering.PrintPage(tree)
}

// LaTeX exports the current view as LaTeX source
func (c *Controller) LaTeX() (string, error) {
	tree, err := c.View()
	if err != nil {
		return "", err
	}
	return rendering.LaTeX(tree)
}

// PDF prints the printable page through the configured renderer
func (c *Controller) PDF(ctx context.Context) ([]byte, error) {
	if c.pdf == nil {
		return nil, ErrExportUnavailable
	}
	page, err := c.PrintHTML()
	if err != nil {
		return nil, err
	}
	return c.pdf.RenderPDF(ctx, page)
}

// Chat returns the workspace's chat session; always the same one.
func (c *Controller) Chat() *chat.Session {
	return c.session
}

// LastActive is the later of the last controller and chat activity
func (c *Controller) LastActive() time.Time {
	c.mu.RLock()
	last := c.lastActive
	c.mu.RUnlock()
	if chatLast := c.session.LastActive(); chatLast.After(last) {
		return chatLast
	}
	return last
}

func (c *Controller) touch() {
	c.mu.Lock()
	c.lastActive = c.now()
	c.mu.Unlock()
}

func userMessage(err error) (string, generation.ErrorKind) {
	var gerr generation.GenerationError
	if errors.As(err, &gerr) {
		return gerr.UserMessage(), gerr.Kind()
	}
	return generation.MsgFailed, generation.KindTransport
}
