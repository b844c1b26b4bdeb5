package rendering

import (
	"strings"

	"github.com/Sambhav-18066/ResumeCraftAI/internal/types"
)

// DefaultName is shown when the document has no contact name.
const DefaultName = "Your Name"

// Section titles
const (
	TitleSummary    = "Professional Summary"
	TitleExperience = "Experience"
	TitleSkills     = "Skills"
	TitleEducation  = "Education"
	TitleProjects   = "Projects"
	TitleLanguages  = "Languages"
)

// Render maps doc onto a visual tree with every section selected.
func Render(doc *types.ResumeDocument, style types.StyleVariant) *Node {
	return RenderSections(doc, style, nil)
}

// RenderSections maps doc onto a visual tree, showing only selected sections.
// A nil selection shows everything. The header name is always present.
// Absent or blank values produce no node at all, so an empty section leaves
// no trace in the output.
func RenderSections(doc *types.ResumeDocument, style types.StyleVariant, sel types.SectionSelection) *Node {
	if doc == nil {
		doc = &types.ResumeDocument{}
	}
	policy := PolicyFor(style)
	s := &doc.Sections

	root := &Node{Kind: KindDocument, Class: policy.ContainerClass()}
	root.Children = append(root.Children, header(s, sel))

	builders := []struct {
		selected bool
		build    func() *Node
	}{
		{sel.Has(types.SectionIntroduction), func() *Node { return summary(policy, s.Introduction) }},
		{sel.Has(types.SectionExperience), func() *Node { return experience(policy, s.Experience) }},
		{sel.Has(types.SectionSkills), func() *Node { return skills(policy, s.Skills) }},
		{sel.Has(types.SectionEducation), func() *Node { return education(policy, s.Education) }},
		{sel.Has(types.SectionProjects), func() *Node { return projects(policy, s.Projects) }},
		{sel.Has(types.SectionLanguages), func() *Node { return languages(policy, s.Languages) }},
	}
	for _, b := range builders {
		if !b.selected {
			continue
		}
		if block := b.build(); block != nil {
			root.Children = append(root.Children, block)
		}
	}
	return root
}

func header(s *types.SectionSet, sel types.SectionSelection) *Node {
	name := DefaultName
	if types.Present(s.Contact.Name) {
		name = strings.TrimSpace(*s.Contact.Name)
	}
	h := &Node{Kind: KindHeader, Children: []*Node{{Kind: KindName, Text: name}}}

	if sel.Has(types.SectionContact) {
		if line := inline(KindContact, []*string{s.Contact.Location, s.Contact.Email, s.Contact.Phone}); line != nil {
			h.Children = append(h.Children, line)
		}
	}

	if sel.Has(types.SectionSocials) {
		links := &Node{Kind: KindLinks}
		if types.Present(s.Socials.LinkedIn) {
			links.Children = append(links.Children, &Node{Kind: KindLink, Text: "LinkedIn", Href: strings.TrimSpace(*s.Socials.LinkedIn)})
		}
		if types.Present(s.Socials.Portfolio) {
			links.Children = append(links.Children, &Node{Kind: KindLink, Text: "Portfolio", Href: strings.TrimSpace(*s.Socials.Portfolio)})
		}
		for _, other := range nonBlank(s.Socials.Other) {
			links.Children = append(links.Children, &Node{Kind: KindItem, Text: other})
		}
		if len(links.Children) > 0 {
			h.Children = append(h.Children, links)
		}
	}
	return h
}

func section(policy Policy, id SectionID, title string, body ...*Node) *Node {
	return &Node{
		Kind:     KindSection,
		Class:    "section section-" + string(id),
		BlockID:  id,
		Children: append([]*Node{policy.SectionTitle(title)}, body...),
	}
}

func summary(policy Policy, intro *string) *Node {
	if !types.Present(intro) {
		return nil
	}
	return section(policy, SectionSummary, TitleSummary, &Node{Kind: KindParagraph, Text: strings.TrimSpace(*intro)})
}

func experience(policy Policy, entries []types.ExperienceEntry) *Node {
	var body []*Node
	for _, e := range entries {
		entry := &Node{Kind: KindEntry}
		entry.add(text(KindHeading, e.Role))
		entry.add(text(KindDates, span(e.StartDate, e.EndDate)))
		entry.add(text(KindSubheading, joinPresent(", ", e.Organization, e.Location)))
		entry.add(bullets(e.Responsibilities))
		if len(entry.Children) > 0 {
			body = append(body, entry)
		}
	}
	if len(body) == 0 {
		return nil
	}
	return section(policy, SectionExperience, TitleExperience, body...)
}

func skills(policy Policy, sk types.Skills) *Node {
	groups := []struct {
		label string
		items []string
	}{
		{"Technical", sk.Technical},
		{"Software", sk.Software},
		{"Laboratory", sk.Laboratory},
		{"Soft Skills", sk.Soft},
	}

	var body []*Node
	for _, g := range groups {
		list := inlineList(g.items)
		if list == nil {
			continue
		}
		body = append(body, &Node{
			Kind:     KindEntry,
			Class:    "skill-group",
			Children: []*Node{{Kind: KindLabel, Text: g.label}, list},
		})
	}
	if len(body) == 0 {
		return nil
	}
	return section(policy, SectionSkills, TitleSkills, body...)
}

func education(policy Policy, entries []types.EducationEntry) *Node {
	var body []*Node
	for _, e := range entries {
		entry := &Node{Kind: KindEntry}
		entry.add(text(KindHeading, e.Degree))
		entry.add(text(KindDates, span(e.StartYear, e.EndYear)))
		entry.add(text(KindSubheading, joinPresent(", ", e.Institution, e.Location)))
		entry.add(text(KindNote, e.Details))
		if len(entry.Children) > 0 {
			body = append(body, entry)
		}
	}
	if len(body) == 0 {
		return nil
	}
	return section(policy, SectionEducation, TitleEducation, body...)
}

func projects(policy Policy, entries []types.ProjectEntry) *Node {
	var body []*Node
	for _, p := range entries {
		entry := &Node{Kind: KindEntry}
		entry.add(text(KindHeading, p.Title))
		entry.add(bullets(p.Description))
		if len(entry.Children) > 0 {
			body = append(body, entry)
		}
	}
	if len(body) == 0 {
		return nil
	}
	return section(policy, SectionProjects, TitleProjects, body...)
}

func languages(policy Policy, langs []string) *Node {
	list := inlineList(langs)
	if list == nil {
		return nil
	}
	return section(policy, SectionLanguages, TitleLanguages, list)
}

// add appends c when it is non-nil
func (n *Node) add(c *Node) {
	if c != nil {
		n.Children = append(n.Children, c)
	}
}

func text(kind NodeKind, p *string) *Node {
	if !types.Present(p) {
		return nil
	}
	return &Node{Kind: kind, Text: strings.TrimSpace(*p)}
}

func inline(kind NodeKind, values []*string) *Node {
	var items []*Node
	for _, v := range values {
		if types.Present(v) {
			items = append(items, &Node{Kind: KindItem, Text: strings.TrimSpace(*v)})
		}
	}
	if len(items) == 0 {
		return nil
	}
	return &Node{Kind: kind, Children: items}
}

func inlineList(values []string) *Node {
	return listOf(KindInlineList, values)
}

func bullets(values []string) *Node {
	return listOf(KindBulletList, values)
}

func listOf(kind NodeKind, values []string) *Node {
	items := nonBlank(values)
	if len(items) == 0 {
		return nil
	}
	n := &Node{Kind: kind, Children: make([]*Node, len(items))}
	for i, v := range items {
		n.Children[i] = &Node{Kind: KindItem, Text: v}
	}
	return n
}

// span formats a date range; a single known end is shown alone.
func span(start, end *string) *string {
	switch {
	case types.Present(start) && types.Present(end):
		return types.Str(strings.TrimSpace(*start) + " – " + strings.TrimSpace(*end))
	case types.Present(start):
		return types.Str(strings.TrimSpace(*start))
	case types.Present(end):
		return types.Str(strings.TrimSpace(*end))
	default:
		return nil
	}
}

func joinPresent(sep string, values ...*string) *string {
	var parts []string
	for _, v := range values {
		if types.Present(v) {
			parts = append(parts, strings.TrimSpace(*v))
		}
	}
	if len(parts) == 0 {
		return nil
	}
	return types.Str(strings.Join(parts, sep))
}

func nonBlank(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
