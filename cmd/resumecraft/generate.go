package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Sambhav-18066/ResumeCraftAI/internal/config"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/export"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/generation"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/observability"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/rendering"
	"github.com/Sambhav-18066/ResumeCraftAI/internal/types"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a structured resume from pasted text",
	Long: `Reads raw resume text from a file or stdin, extracts a structured resume with the model
and writes it as JSON, an HTML page, LaTeX source or a PDF.`,
	RunE: runGenerate,
}

var (
	generateInput     string
	generateOutput    string
	generateFormat    string
	generatePageLimit int
	generateStyle     string
	generateSections  []string
)

func init() {
	generateCmd.Flags().StringVarP(&generateInput, "in", "i", "", "Path to raw resume text (default: stdin)")
	generateCmd.Flags().StringVarP(&generateOutput, "out", "o", "", "Output path (default: stdout)")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "", "Output format: json, html, tex or pdf (default: from --out extension, else json)")
	generateCmd.Flags().IntVarP(&generatePageLimit, "page-limit", "p", 1, "Target length in pages (1 or 2)")
	generateCmd.Flags().StringVarP(&generateStyle, "style", "s", string(types.StyleProfessional), "Style: Minimal, Professional, Modern or Academic")
	generateCmd.Flags().StringSliceVar(&generateSections, "sections", nil, "Sections to include (default: all)")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	format := generateFormat
	if format == "" {
		format = formatFromPath(generateOutput)
	}
	switch format {
	case "json", "html", "tex", "pdf":
	default:
		return usagef("unknown --format %q (want json, html, tex or pdf)", format)
	}

	raw, err := readInput(generateInput, cmd.InOrStdin())
	if err != nil {
		return err
	}
	req, err := buildRequest(raw, generatePageLimit, generateStyle, generateSections)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var renderer export.Renderer
	if format == "pdf" {
		if renderer = pdfRenderer(cfg); renderer == nil {
			return fmt.Errorf("PDF export needs Chrome; install it or set %s", config.EnvChromePath)
		}
	}

	ctx := context.Background()
	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	printer := observability.NewPrinter(cmd.ErrOrStderr())
	if cfg.Verbose {
		printer.PrintRequest(req)
	}

	doc, err := generation.NewGenerator(client, cfg.GenerationOptions()).Generate(ctx, req)
	if err != nil {
		var gerr generation.GenerationError
		if errors.As(err, &gerr) {
			fmt.Fprintln(cmd.ErrOrStderr(), gerr.UserMessage())
		}
		return err
	}
	if cfg.Verbose {
		printer.PrintDocument(doc)
	}

	data, err := encodeDocument(ctx, doc, req, format, renderer)
	if err != nil {
		return err
	}
	if err := writeOutput(generateOutput, cmd.OutOrStdout(), data); err != nil {
		return err
	}
	if generateOutput != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s resume to %s\n", format, generateOutput)
	}
	return nil
}

// encodeDocument serializes doc in format. renderer is only used for pdf.
func encodeDocument(ctx context.Context, doc *types.ResumeDocument, req types.GenerationRequest, format string, renderer export.Renderer) ([]byte, error) {
	if format == "json" {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal document: %w", err)
		}
		return append(data, '\n'), nil
	}

	tree := rendering.RenderSections(doc, req.Style, req.Selection())
	switch format {
	case "html":
		page, err := rendering.PreviewPage(tree)
		return []byte(page), err
	case "tex":
		tex, err := rendering.LaTeX(tree)
		return []byte(tex), err
	}

	page, err := rendering.PrintPage(tree)
	if err != nil {
		return nil, err
	}
	return renderer.RenderPDF(ctx, page)
}
