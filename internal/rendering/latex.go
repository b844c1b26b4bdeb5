package rendering

import (
	"embed"
	"strings"
	"text/template"
)

//go:embed templates/resume.tex.tmpl
var latexTemplates embed.FS

var latexTmpl = template.Must(template.New("resume.tex.tmpl").Funcs(template.FuncMap{
	"join": strings.Join,
}).ParseFS(latexTemplates, "templates/resume.tex.tmpl"))

// LaTeXData is the template input. Every string is already escaped.
type LaTeXData struct {
	Name     string
	Contact  string
	Links    []string
	Sections []LaTeXSection
}

// LaTeXSection is one rendered section block
type LaTeXSection struct {
	Title     string
	Paragraph string
	Inline    string
	Entries   []LaTeXEntry
}

// LaTeXEntry is an experience, education or project entry, or a labelled
// skill group when Label is set.
type LaTeXEntry struct {
	Label   string
	Heading string
	Dates   string
	Sub     string
	Note    string
	Inline  string
	Bullets []string
}

// LaTeX serializes tree as a standalone LaTeX article. Style classes have no
// LaTeX counterpart, so every style shares one layout.
func LaTeX(tree *Node) (string, error) {
	if tree == nil {
		return "", &RenderError{Message: "nothing to render"}
	}

	var sb strings.Builder
	if err := latexTmpl.Execute(&sb, buildLaTeXData(tree)); err != nil {
		return "", &TemplateError{Message: "failed to execute LaTeX template", Cause: err}
	}
	return sb.String(), nil
}

func buildLaTeXData(tree *Node) *LaTeXData {
	data := &LaTeXData{Name: EscapeLaTeX(DefaultName)}
	if name := tree.Find(KindName); name != nil {
		data.Name = EscapeLaTeX(name.Text)
	}
	if contact := tree.Find(KindContact); contact != nil {
		data.Contact = EscapeLaTeX(joinTexts(contact.Children, " | "))
	}
	if links := tree.Find(KindLinks); links != nil {
		for _, l := range links.Children {
			if l.Href != "" {
				data.Links = append(data.Links, `\href{`+escapeLaTeXURL(l.Href)+`}{`+EscapeLaTeX(l.Text)+`}`)
			} else {
				data.Links = append(data.Links, EscapeLaTeX(l.Text))
			}
		}
	}

	for _, s := range tree.Sections() {
		section := LaTeXSection{}
		for _, c := range s.Children {
			switch c.Kind {
			case KindTitle:
				section.Title = EscapeLaTeX(c.Text)
			case KindParagraph:
				section.Paragraph = EscapeLaTeX(c.Text)
			case KindInlineList:
				section.Inline = EscapeLaTeX(joinTexts(c.Children, ", "))
			case KindEntry:
				section.Entries = append(section.Entries, latexEntry(c))
			}
		}
		data.Sections = append(data.Sections, section)
	}
	return data
}

func latexEntry(n *Node) LaTeXEntry {
	var e LaTeXEntry
	for _, c := range n.Children {
		switch c.Kind {
		case KindLabel:
			e.Label = EscapeLaTeX(c.Text)
		case KindHeading:
			e.Heading = EscapeLaTeX(c.Text)
		case KindDates:
			e.Dates = EscapeLaTeX(c.Text)
		case KindSubheading:
			e.Sub = EscapeLaTeX(c.Text)
		case KindNote:
			e.Note = EscapeLaTeX(c.Text)
		case KindInlineList:
			e.Inline = EscapeLaTeX(joinTexts(c.Children, ", "))
		case KindBulletList:
			for _, item := range c.Children {
				e.Bullets = append(e.Bullets, EscapeLaTeX(item.Text))
			}
		}
	}
	return e
}

func joinTexts(items []*Node, sep string) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.Text
	}
	return strings.Join(parts, sep)
}
