package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/Sambhav-18066/ResumeCraftAI/internal/config"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/export"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/ingestion"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/llm"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/types"
)

// newLLMClient is swapped out by tests
var newLLMClient = func(ctx context.Context, cfg config.Config) (llm.Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s environment variable is required", config.EnvAPIKey)
	}
	return llm.NewClient(ctx, cfg.LLMConfig(), cfg.APIKey)
}

// usageError marks command-line mistakes so main exits with code 2
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func exitCode(err error) int {
	var ue *usageError
	if errors.As(err, &ue) {
		return 2
	}
	return 1
}

// loadConfig resolves env, the --config file and defaults; --verbose wins.
func loadConfig() (config.Config, error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// pdfRenderer returns a Chrome renderer, or nil when no browser is available
func pdfRenderer(cfg config.Config) export.Renderer {
	path := cfg.ChromePath
	if path == "" {
		path = export.FindChrome()
	}
	if path == "" {
		if cfg.Verbose {
			log.Printf("[export] no Chrome found; PDF export disabled")
		}
		return nil
	}
	r := export.NewChromeRenderer(path)
	r.Verbose = cfg.Verbose
	return r
}

// buildRequest turns flag values into a GenerationRequest. An empty section
// list selects every section.
func buildRequest(raw string, pageLimit int, style string, sections []string) (types.GenerationRequest, error) {
	sv, err := types.ParseStyle(style)
	if err != nil {
		return types.GenerationRequest{}, usagef("%v", err)
	}
	if pageLimit != 1 && pageLimit != 2 {
		return types.GenerationRequest{}, usagef("--page-limit must be 1 or 2, got %d", pageLimit)
	}

	names := types.AllSections()
	if len(sections) > 0 {
		names = make([]types.SectionName, 0, len(sections))
		for _, s := range sections {
			name, err := types.ParseSectionName(s)
			if err != nil {
				return types.GenerationRequest{}, usagef("%v", err)
			}
			names = append(names, name)
		}
	}

	return types.GenerationRequest{
		RawText:          raw,
		PageLimit:        pageLimit,
		Style:            sv,
		SelectedSections: names,
	}, nil
}

// readInput reads path, or stdin when path is empty or "-". Both go through
// ingestion so saved HTML pages and pasted bullet glyphs are normalized.
func readInput(path string, stdin io.Reader) (string, error) {
	var (
		text string
		meta *ingestion.Metadata
		err  error
	)
	if path == "" || path == "-" {
		b, readErr := io.ReadAll(stdin)
		if readErr != nil {
			return "", fmt.Errorf("failed to read stdin: %w", readErr)
		}
		text, meta, err = ingestion.FromBytes(b, "stdin")
	} else {
		text, meta, err = ingestion.FromFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	if verbose {
		log.Printf("[ingest] %s: %s, %d lines, %d bullets, sha256 %s", meta.Path, meta.Format, meta.Lines, meta.Bullets, meta.Hash[:12])
	}
	return text, nil
}

// writeOutput writes data to path, or to w when path is empty
func writeOutput(path string, w io.Writer, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func formatFromPath(path string) string {
	switch {
	case strings.HasSuffix(path, ".html"), strings.HasSuffix(path, ".htm"):
		return "html"
	case strings.HasSuffix(path, ".tex"):
		return "tex"
	case strings.HasSuffix(path, ".pdf"):
		return "pdf"
	default:
		return "json"
	}
}
