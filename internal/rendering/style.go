package rendering

import "github.com/Sambhav-18066/ResumeCraftAI/internal/types"

// Policy is the presentation seam for a style. Section logic never branches
// on the style; it asks the policy instead.
type Policy interface {
	// ContainerClass is the class of the document root
	ContainerClass() string
	// SectionTitle builds the title node placed at the top of a section
	SectionTitle(title string) *Node
}

// ruleTitle is a heavy title with a bottom rule and tight tracking.
type ruleTitle struct {
	container string
}

func (p ruleTitle) ContainerClass() string { return p.container }

func (p ruleTitle) SectionTitle(title string) *Node {
	return &Node{Kind: KindTitle, Class: "title-rule", Text: title}
}

// labelTitle is a colored label followed by a divider.
type labelTitle struct {
	container string
}

func (p labelTitle) ContainerClass() string { return p.container }

func (p labelTitle) SectionTitle(title string) *Node {
	return &Node{
		Kind:     KindTitle,
		Class:    "title-label",
		Text:     title,
		Children: []*Node{{Kind: KindDivider, Class: "title-divider"}},
	}
}

var policies = map[types.StyleVariant]Policy{
	types.StyleMinimal:      ruleTitle{container: "resume resume-minimal"},
	types.StyleProfessional: ruleTitle{container: "resume resume-professional"},
	types.StyleModern:       labelTitle{container: "resume resume-modern"},
	types.StyleAcademic:     ruleTitle{container: "resume resume-academic"},
}

// PolicyFor returns the policy for style. Unknown styles get Minimal.
func PolicyFor(style types.StyleVariant) Policy {
	if p, ok := policies[style]; ok {
		return p
	}
	return policies[types.StyleMinimal]
}
