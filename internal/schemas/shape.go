package schemas

// Kind is the JSON type of a shape node
type Kind string

// Supported node kinds. They map one-to-one onto JSON Schema types and the
// Gemini response-schema types.
const (
	KindObject  Kind = "object"
	KindArray   Kind = "array"
	KindString  Kind = "string"
	KindInteger Kind = "integer"
)

// Node is one level of a declarative output shape. The same tree is sent to
// the model as its response schema and used locally to re-validate what comes
// back.
type Node struct {
	Kind        Kind
	Nullable    bool
	Description string
	Properties  []Property // object only, in declaration order
	Items       *Node      // array only
	Required    []string   // object only
}

// Property is a named member of an object node
type Property struct {
	Name string
	Node *Node
}

// Mode selects how strictly JSONSchema treats missing or null containers.
type Mode int

const (
	// Strict describes the canonical document: sequences are always arrays
	// and nested objects are always present.
	Strict Mode = iota
	// Tolerant accepts null sequences and null nested objects below the
	// required top-level keys. Model output is checked in this mode and then
	// normalized, so a model that writes "languages": null still yields a
	// usable document instead of a failed generation.
	Tolerant
)

func str() *Node { return &Node{Kind: KindString} }
func optStr() *Node { return &Node{Kind: KindString, Nullable: true} }
func strList() *Node { return &Node{Kind: KindArray, Items: str()} }
func object(props ...Property) *Node {
	return &Node{Kind: KindObject, Properties: props}
}

func prop(name string, n *Node) Property { return Property{Name: name, Node: n} }

// ResumeDocument returns the shape every generated resume must satisfy.
// A fresh tree is built on each call so callers may annotate it freely.
func ResumeDocument() *Node {
	contact := object(
		prop("name", optStr()),
		prop("email", optStr()),
		prop("phone", optStr()),
		prop("location", optStr()),
	)
	socials := object(
		prop("linkedin", optStr()),
		prop("portfolio", optStr()),
		prop("other", strList()),
	)
	education := &Node{Kind: KindArray, Items: object(
		prop("degree", optStr()),
		prop("institution", optStr()),
		prop("location", optStr()),
		prop("start_year", optStr()),
		prop("end_year", optStr()),
		prop("details", optStr()),
	)}
	skills := object(
		prop("technical", strList()),
		prop("laboratory", strList()),
		prop("software", strList()),
		prop("soft", strList()),
	)
	experience := &Node{Kind: KindArray, Items: object(
		prop("role", optStr()),
		prop("organization", optStr()),
		prop("location", optStr()),
		prop("start_date", optStr()),
		prop("end_date", optStr()),
		prop("responsibilities", strList()),
	)}
	projects := &Node{Kind: KindArray, Items: object(
		prop("title", optStr()),
		prop("description", strList()),
	)}

	sections := object(
		prop("introduction", optStr()),
		prop("contact", contact),
		prop("socials", socials),
		prop("education", education),
		prop("skills", skills),
		prop("experience", experience),
		prop("projects", projects),
		prop("languages", strList()),
	)

	root := object(
		prop("page_limit", &Node{Kind: KindInteger}),
		prop("sections", sections),
	)
	root.Required = []string{"page_limit", "sections"}
	return root
}

// JSONSchema renders the shape as a JSON Schema (draft-07) document suitable
// for gojsonschema.NewGoLoader or for writing to disk.
func JSONSchema(root *Node, mode Mode) map[string]any {
	out := toJSONSchema(root, mode, 0)
	out["$schema"] = "http://json-schema.org/draft-07/schema#"
	out["title"] = "ResumeDocument"
	return out
}

func toJSONSchema(n *Node, mode Mode, depth int) map[string]any {
	out := map[string]any{}
	if n.Description != "" {
		out["description"] = n.Description
	}

	// depth 0 is the root and depth 1 its direct members (page_limit,
	// sections); those stay non-null in every mode.
	loose := mode == Tolerant && depth > 1 && (n.Kind == KindArray || n.Kind == KindObject)
	if n.Nullable || loose {
		out["type"] = []any{string(n.Kind), "null"}
	} else {
		out["type"] = string(n.Kind)
	}

	switch n.Kind {
	case KindObject:
		props := make(map[string]any, len(n.Properties))
		for _, p := range n.Properties {
			props[p.Name] = toJSONSchema(p.Node, mode, depth+1)
		}
		out["properties"] = props
		if len(n.Required) > 0 {
			req := make([]any, len(n.Required))
			for i, r := range n.Required {
				req[i] = r
			}
			out["required"] = req
		}
	case KindArray:
		if n.Items != nil {
			out["items"] = toJSONSchema(n.Items, mode, depth+1)
		}
	}
	return out
}
