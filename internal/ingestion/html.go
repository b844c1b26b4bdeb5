package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockSelector lists elements that start a new line in the extracted text
const blockSelector = "p, div, br, li, h1, h2, h3, h4, h5, h6, tr, section, article, header, footer"

// TextFromHTML extracts readable text from a saved resume page. Scripts,
// styles and navigation are dropped; list items become "- " bullets.
func TextFromHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, nav, .no-print").Remove()
	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("- ")
	})
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	root := doc.Find("main").First()
	if root.Length() == 0 {
		root = doc.Find("body")
	}

	lines := strings.Split(root.Text(), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		kept = append(kept, strings.TrimSpace(line))
	}
	return strings.Join(kept, "\n"), nil
}
