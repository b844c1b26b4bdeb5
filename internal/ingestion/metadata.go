package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Format is the kind of file a resume was read from
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Metadata describes ingested resume text. The text itself is not kept.
type Metadata struct {
	Path      string `json:"path,omitempty"`
	Format    Format `json:"format"`
	Timestamp string `json:"timestamp"` // RFC3339 format
	Hash      string `json:"hash"`      // SHA256 hex digest of the cleaned text
	Chars     int    `json:"chars"`
	Lines     int    `json:"lines"`
	Bullets   int    `json:"bullets"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content string, path string, format Format) *Metadata {
	m := &Metadata{
		Path:      path,
		Format:    format,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
		Chars:     len(content),
	}
	if content != "" {
		for _, line := range splitLines(content) {
			m.Lines++
			if isBulletLine(line) {
				m.Bullets++
			}
		}
	}
	return m
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

func splitLines(content string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			lines = append(lines, content[start:i])
			start = i + 1
		}
	}
	return append(lines, content[start:])
}
