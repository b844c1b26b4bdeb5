package rendering

import (
	"embed"
	"html/template"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

//go:embed templates/resume.html.tmpl
var htmlTemplates embed.FS

var htmlTmpl = template.Must(template.New("resume").Funcs(template.FuncMap{
	"join": joinItems,
}).ParseFS(htmlTemplates, "templates/resume.html.tmpl"))

// PageOptions controls the standalone HTML page
type PageOptions struct {
	Title string
	// Controls adds the interactive toolbar. Toolbar elements carry the
	// no-print class and are stripped by PrintView.
	Controls bool
}

type pageData struct {
	Title    string
	Controls bool
	Tree     *Node
}

// HTMLFragment serializes tree as an <article> element
func HTMLFragment(tree *Node) (string, error) {
	var sb strings.Builder
	if err := htmlTmpl.ExecuteTemplate(&sb, "fragment", tree); err != nil {
		return "", &TemplateError{Message: "failed to render HTML fragment", Cause: err}
	}
	return sb.String(), nil
}

// HTMLPage serializes tree as a complete document with inline styles
func HTMLPage(tree *Node, opts PageOptions) (string, error) {
	if opts.Title == "" {
		opts.Title = "Resume"
		if name := tree.Find(KindName); name != nil {
			opts.Title = name.Text + " - Resume"
		}
	}

	var sb strings.Builder
	err := htmlTmpl.ExecuteTemplate(&sb, "page", pageData{Title: opts.Title, Controls: opts.Controls, Tree: tree})
	if err != nil {
		return "", &TemplateError{Message: "failed to render HTML page", Cause: err}
	}
	return sb.String(), nil
}

// PreviewPage is the interactive page with the print control
func PreviewPage(tree *Node) (string, error) {
	return HTMLPage(tree, PageOptions{Controls: true})
}

// PrintView removes every .no-print element from an HTML page, leaving only
// what belongs on paper.
func PrintView(page string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", &RenderError{Message: "failed to parse HTML page", Cause: err}
	}
	doc.Find(".no-print").Remove()

	out, err := goquery.OuterHtml(doc.Selection)
	if err != nil {
		return "", &RenderError{Message: "failed to serialize print view", Cause: err}
	}
	return out, nil
}

// PrintPage renders tree straight to its printable form
func PrintPage(tree *Node) (string, error) {
	page, err := PreviewPage(tree)
	if err != nil {
		return "", err
	}
	return PrintView(page)
}

func joinItems(items []*Node) string {
	return joinTexts(items, ", ")
}
