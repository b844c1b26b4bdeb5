// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/Sambhav-18066/ResumeCraftAI/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRequest outputs the options of a generation request. The raw text is
// reported by length only.
func (p *Printer) PrintRequest(req types.GenerationRequest) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Input:      %d characters\n", len(req.RawText)))
	sb.WriteString(fmt.Sprintf("Page limit: %d\n", req.PageLimit))
	sb.WriteString(fmt.Sprintf("Style:      %s\n", req.Style))

	names := make([]string, len(req.SelectedSections))
	for i, s := range req.SelectedSections {
		names[i] = string(s)
	}
	if len(names) == 0 {
		names = []string{"(none)"}
	}
	sb.WriteString(fmt.Sprintf("Sections:   %s", strings.Join(names, ", ")))

	p.printBox("GENERATION REQUEST", sb.String())
}

// PrintDocument outputs a human-readable summary of a generated resume.
func (p *Printer) PrintDocument(doc *types.ResumeDocument) {
	if doc == nil {
		return
	}
	s := doc.Sections

	var sb strings.Builder
	name := types.Deref(s.Contact.Name)
	if name == "" {
		name = "(no name)"
	}
	sb.WriteString(fmt.Sprintf("Name:       %s\n", name))
	if types.Present(s.Contact.Email) {
		sb.WriteString(fmt.Sprintf("Email:      %s\n", types.Deref(s.Contact.Email)))
	}
	sb.WriteString(fmt.Sprintf("Page limit: %d\n", doc.PageLimit))
	sb.WriteString("\n")

	if len(s.Experience) > 0 {
		sb.WriteString(fmt.Sprintf("Experience (%d):\n", len(s.Experience)))
		count := min(len(s.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := s.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s", orDash(e.Role)))
			if types.Present(e.Organization) {
				sb.WriteString(fmt.Sprintf(" @ %s", types.Deref(e.Organization)))
			}
			sb.WriteString(fmt.Sprintf(" (%d bullets)\n", len(e.Responsibilities)))
		}
		if len(s.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(s.Experience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(s.Education) > 0 {
		sb.WriteString(fmt.Sprintf("Education (%d):\n", len(s.Education)))
		count := min(len(s.Education), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", orDash(s.Education[i].Degree)))
		}
		if len(s.Education) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(s.Education)-3))
		}
		sb.WriteString("\n")
	}

	skillCount := len(s.Skills.Technical) + len(s.Skills.Software) + len(s.Skills.Laboratory) + len(s.Skills.Soft)
	sb.WriteString(fmt.Sprintf("Skills:     %d\n", skillCount))
	sb.WriteString(fmt.Sprintf("Projects:   %d\n", len(s.Projects)))
	sb.WriteString(fmt.Sprintf("Languages:  %d", len(s.Languages)))

	p.printBox("GENERATED RESUME", sb.String())
}

// PrintTranscript outputs the last few chat messages
func (p *Printer) PrintTranscript(transcript types.ChatTranscript) {
	if len(transcript) == 0 {
		return
	}

	start := max(0, len(transcript)-maxItemsToShow)
	var sb strings.Builder
	if start > 0 {
		sb.WriteString(fmt.Sprintf("... %d earlier messages\n", start))
	}
	for i, m := range transcript[start:] {
		role := "You"
		if m.Role == types.RoleAssistant {
			role = "Coach"
		}
		sb.WriteString(fmt.Sprintf("%-6s %s", role+":", strings.ReplaceAll(m.Text, "\n", " ")))
		if i < len(transcript)-start-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("CHAT (%d messages)", len(transcript)), sb.String())
}

// truncate shortens s to width runes, marking the cut with "..."
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

func orDash(p *string) string {
	if !types.Present(p) {
		return "-"
	}
	return types.Deref(p)
}
