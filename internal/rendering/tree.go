// Package rendering maps a ResumeDocument onto a styled visual tree and
// serializes that tree as HTML or LaTeX.
package rendering

import "strings"

// NodeKind identifies what a visual node displays
type NodeKind string

// Node kinds
const (
	KindDocument   NodeKind = "document"
	KindHeader     NodeKind = "header"
	KindName       NodeKind = "name"
	KindContact    NodeKind = "contact"
	KindLinks      NodeKind = "links"
	KindLink       NodeKind = "link"
	KindSection    NodeKind = "section"
	KindTitle      NodeKind = "title"
	KindDivider    NodeKind = "divider"
	KindEntry      NodeKind = "entry"
	KindHeading    NodeKind = "heading"
	KindSubheading NodeKind = "subheading"
	KindDates      NodeKind = "dates"
	KindNote       NodeKind = "note"
	KindLabel      NodeKind = "label"
	KindParagraph  NodeKind = "paragraph"
	KindInlineList NodeKind = "inline-list"
	KindBulletList NodeKind = "bullet-list"
	KindItem       NodeKind = "item"
)

// SectionID names a rendered section block
type SectionID string

// Section blocks in the order they are rendered
const (
	SectionSummary    SectionID = "summary"
	SectionExperience SectionID = "experience"
	SectionSkills     SectionID = "skills"
	SectionEducation  SectionID = "education"
	SectionProjects   SectionID = "projects"
	SectionLanguages  SectionID = "languages"
)

// SectionOrder returns the fixed block order
func SectionOrder() []SectionID {
	return []SectionID{
		SectionSummary, SectionExperience, SectionSkills,
		SectionEducation, SectionProjects, SectionLanguages,
	}
}

// Node is one element of the visual tree. Trees are built fresh on every
// render and share nothing with the document they came from.
type Node struct {
	Kind     NodeKind
	Class    string
	BlockID  SectionID // set on KindSection nodes
	Text     string
	Href     string // set on KindLink nodes
	Children []*Node
}

// Sections returns the section blocks in display order
func (n *Node) Sections() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == KindSection {
			out = append(out, c)
		}
	}
	return out
}

// Section returns the block for id, or nil when it was omitted
func (n *Node) Section(id SectionID) *Node {
	for _, c := range n.Children {
		if c.Kind == KindSection && c.BlockID == id {
			return c
		}
	}
	return nil
}

// Find returns the first node of kind in depth-first order, or nil.
func (n *Node) Find(kind NodeKind) *Node {
	if n == nil {
		return nil
	}
	if n.Kind == kind {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(kind); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every node of kind in depth-first order
func (n *Node) FindAll(kind NodeKind) []*Node {
	var out []*Node
	n.Walk(func(c *Node) {
		if c.Kind == kind {
			out = append(out, c)
		}
	})
	return out
}

// Walk visits n and its descendants depth-first
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// PlainText concatenates every Text in the subtree, one per line.
func (n *Node) PlainText() string {
	var lines []string
	n.Walk(func(c *Node) {
		if c.Text != "" {
			lines = append(lines, c.Text)
		}
	})
	return strings.Join(lines, "\n")
}
