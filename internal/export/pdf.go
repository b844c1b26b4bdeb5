// Package export turns printable HTML into PDF with headless Chrome.
package export

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ExportError wraps a failed PDF export
type ExportError struct {
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("export error: %s", e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}

// Paper is a page size in inches
type Paper struct {
	Width  float64
	Height float64
}

// Common paper sizes
var (
	PaperA4     = Paper{Width: 8.27, Height: 11.69}
	PaperLetter = Paper{Width: 8.5, Height: 11}
)

// Renderer converts an HTML document to PDF bytes
type Renderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// ChromeRenderer prints pages through a headless Chrome it starts per call.
type ChromeRenderer struct {
	// ChromePath overrides browser discovery. Empty lets chromedp search.
	ChromePath string
	Timeout    time.Duration
	Paper      Paper
	Verbose    bool
}

// NewChromeRenderer returns a renderer printing A4 with a 60s budget
func NewChromeRenderer(chromePath string) *ChromeRenderer {
	return &ChromeRenderer{
		ChromePath: chromePath,
		Timeout:    60 * time.Second,
		Paper:      PaperA4,
	}
}

// RenderPDF implements Renderer. The page is loaded from a temporary file so
// relative resources and print CSS behave as they would in a browser.
func (r *ChromeRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.ChromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	if r.Timeout > 0 {
		browserCtx, cancel = context.WithTimeout(browserCtx, r.Timeout)
		defer cancel()
	}

	tmpDir, err := os.MkdirTemp("", "resumecraft-")
	if err != nil {
		return nil, &ExportError{Message: "failed to create temp dir", Cause: err}
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	htmlPath := filepath.Join(tmpDir, "resume.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, &ExportError{Message: "failed to write page", Cause: err}
	}

	paper := r.Paper
	if paper.Width == 0 || paper.Height == 0 {
		paper = PaperA4
	}

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+filepath.ToSlash(htmlPath)),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paper.Width).
				WithPaperHeight(paper.Height).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &ExportError{Message: "chrome failed to print page", Cause: err}
	}

	if r.Verbose {
		log.Printf("[export] rendered PDF: %d bytes", len(pdf))
	}
	return pdf, nil
}

// FindChrome returns the first Chrome or Chromium binary on PATH, or "".
func FindChrome() string {
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "headless-shell"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}
