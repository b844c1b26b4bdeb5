package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/Sambhav-18066/ResumeCraftAI/internal/llm"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/prompts"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/schemas"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Options tunes the model call. Zero token values defer to the provider.
type Options struct {
	Tier            llm.ModelTier
	MaxOutputTokens int32
	ThinkingBudget  int32
	Verbose         bool
}

// DefaultOptions returns the tuning used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Tier:            llm.TierStandard,
		MaxOutputTokens: 20000,
		ThinkingBudget:  10000,
	}
}

// Extractor produces resume documents. Generator and Deduper implement it.
type Extractor interface {
	Generate(ctx context.Context, req types.GenerationRequest) (*types.ResumeDocument, error)
}

// Generator runs one schema-constrained model call per request. It holds no
// per-request state and is safe for concurrent use.
type Generator struct {
	client      llm.Client
	opts        Options
	newBoundary func() string
}

// NewGenerator creates a Generator backed by client
func NewGenerator(client llm.Client, opts Options) *Generator {
	if opts.Tier == "" {
		opts.Tier = llm.TierStandard
	}
	return &Generator{
		client:      client,
		opts:        opts,
		newBoundary: randomBoundary,
	}
}

// Generate validates req, asks the model for a document and re-validates the
// answer. Every failure is a GenerationError; on failure no document is
// returned at all.
func (g *Generator) Generate(ctx context.Context, req types.GenerationRequest) (*types.ResumeDocument, error) {
	if strings.TrimSpace(req.RawText) == "" {
		return nil, &PreconditionError{Message: MsgEmptyInput}
	}
	if err := req.Validate(); err != nil {
		return nil, &PreconditionError{Message: describeInvalid(err), Cause: err}
	}

	instruction, err := prompts.Get(prompts.ResumeFile, "role-instruction")
	if err != nil {
		return nil, &TransportError{Message: "failed to load role instruction", Cause: err}
	}
	payload, err := g.buildPayload(req)
	if err != nil {
		return nil, &TransportError{Message: "failed to build payload", Cause: err}
	}

	if g.opts.Verbose {
		log.Printf("[generate] %d chars, page_limit=%d, style=%s, sections=%d, model=%s",
			len(req.RawText), req.PageLimit, req.Style, len(req.SelectedSections), g.client.GetModel(g.opts.Tier))
	}

	text, err := g.client.Complete(ctx, llm.CompletionRequest{
		Tier:              g.opts.Tier,
		SystemInstruction: instruction,
		Schema:            schemas.ResumeDocument(),
		Prompt:            payload,
		MaxOutputTokens:   g.opts.MaxOutputTokens,
		ThinkingBudget:    g.opts.ThinkingBudget,
	})
	if err != nil {
		return nil, classify(err)
	}

	doc, err := ParseDocument(text)
	if err != nil {
		return nil, err
	}
	if g.opts.Verbose {
		log.Printf("[generate] document ok: %d experience, %d education, %d projects",
			len(doc.Sections.Experience), len(doc.Sections.Education), len(doc.Sections.Projects))
	}
	return doc, nil
}

// ParseDocument turns model output into a normalized document. The text is
// unwrapped from any markdown fence, checked against the document shape and
// only then decoded.
func ParseDocument(text string) (*types.ResumeDocument, error) {
	cleaned := llm.CleanJSONBlock(text)
	if !json.Valid([]byte(cleaned)) {
		return nil, &MalformedResponseError{Message: "response is not valid JSON"}
	}
	if err := schemas.ValidateDocument(cleaned, schemas.Tolerant); err != nil {
		return nil, &MalformedResponseError{Message: "response does not match the document schema", Cause: err}
	}

	// Models write page_limit as 1.0 often enough that a whole float is kept.
	var doc types.ResumeDocument
	wire := struct {
		PageLimit json.Number `json:"page_limit"`
		*types.ResumeDocument
	}{ResumeDocument: &doc}
	if err := json.Unmarshal([]byte(cleaned), &wire); err != nil {
		return nil, &MalformedResponseError{Message: "failed to decode document", Cause: err}
	}
	limit, err := wholeNumber(wire.PageLimit)
	if err != nil {
		return nil, &MalformedResponseError{Message: "page_limit must be a whole number", Cause: err}
	}
	doc.PageLimit = limit
	doc.Normalize()
	return &doc, nil
}

func wholeNumber(n json.Number) (int, error) {
	if i, err := n.Int64(); err == nil && i >= math.MinInt32 && i <= math.MaxInt32 {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, fmt.Errorf("got %s", n)
	}
	return int(f), nil
}

type payloadData struct {
	Boundary  string
	RawText   string
	PageLimit int
	Style     types.StyleVariant
	Sections  string
}

func (g *Generator) buildPayload(req types.GenerationRequest) (string, error) {
	names := make([]string, len(req.SelectedSections))
	for i, s := range req.SelectedSections {
		names[i] = string(s)
	}
	sections := strings.Join(names, ", ")
	if sections == "" {
		sections = "(none)"
	}

	return prompts.Render(prompts.ResumeFile, "payload", payloadData{
		Boundary:  g.newBoundary(),
		RawText:   req.RawText,
		PageLimit: req.PageLimit,
		Style:     req.Style,
		Sections:  sections,
	})
}

// randomBoundary returns a fence marker pasted text cannot predict.
func randomBoundary() string {
	return "<<<RAW_INPUT_" + strings.ReplaceAll(uuid.NewString(), "-", "") + ">>>"
}

func classify(err error) error {
	switch {
	case llm.IsRateLimited(err):
		return &RateLimitError{Message: "model provider throttled the request", Cause: err}
	case errors.Is(err, llm.ErrEmptyResponse):
		return &MalformedResponseError{Message: "model returned no text", Cause: err}
	default:
		return &TransportError{Message: "model call failed", Cause: err}
	}
}

func describeInvalid(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid generation options."
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s must be one of [%s]", jsonField(fe.Field()), fe.Param()))
	}
	return "Invalid generation options: " + strings.Join(parts, "; ") + "."
}

func jsonField(name string) string {
	switch {
	case name == "PageLimit":
		return "page_limit"
	case name == "Style":
		return "style"
	case strings.HasPrefix(name, "SelectedSections"):
		return "sections"
	default:
		return name
	}
}
