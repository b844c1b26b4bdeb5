// Package ingestion loads pasted or saved resume text and normalizes it
// before it is sent for extraction.
package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	multiSpace     = regexp.MustCompile(`[ \t]+`)
	excessiveBlank = regexp.MustCompile(`\n\n\n+`)
)

// bulletMarkers are the glyphs word processors paste in front of list items
var bulletMarkers = []string{"• ", "· ", "▪ ", "◦ ", "– "}

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// Normalize line endings (CRLF → LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u00a0", " ")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = excessiveBlank.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving headings and bullets
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	// Markdown headings lose their indentation
	if strings.HasPrefix(trimmed, "#") {
		return multiSpace.ReplaceAllString(trimmed, " ")
	}

	indent := ""
	if n := len(line) - len(trimmed); n > 0 {
		indent = strings.Repeat(" ", n)
	}

	for _, marker := range bulletMarkers {
		if strings.HasPrefix(trimmed, marker) {
			trimmed = "- " + strings.TrimPrefix(trimmed, marker)
			break
		}
	}
	return indent + multiSpace.ReplaceAllString(trimmed, " ")
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		return true
	}
	for _, marker := range bulletMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return false
}

// FromFile reads a resume from path. HTML files are reduced to their text;
// anything else is read as plain text. The result is cleaned.
func FromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	return FromBytes(content, path)
}

// FromBytes treats content as if read from a file called name: the
// extension picks the format and the result is cleaned like FromFile.
func FromBytes(content []byte, name string) (string, *Metadata, error) {
	var err error
	text := string(content)
	format := FormatText
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		format = FormatHTML
		text, err = TextFromHTML(text)
		if err != nil {
			return "", nil, err
		}
	case ".md", ".markdown":
		format = FormatMarkdown
	}

	cleaned := CleanText(text)
	return cleaned, NewMetadata(cleaned, name, format), nil
}
