package llm

import (
	"github.com/Sambhav-18066/ResumeCraftAI/internal/schemas"
	legacy "github.com/google/generative-ai-go/genai"
	"google.golang.org/genai"
)

func toGenAISchema(n *schemas.Node) *genai.Schema {
	if n == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        genAIType(n.Kind),
		Description: n.Description,
	}
	if n.Nullable {
		out.Nullable = genai.Ptr(true)
	}
	if len(n.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(n.Properties))
		out.PropertyOrdering = make([]string, 0, len(n.Properties))
		for _, p := range n.Properties {
			out.Properties[p.Name] = toGenAISchema(p.Node)
			out.PropertyOrdering = append(out.PropertyOrdering, p.Name)
		}
	}
	if n.Items != nil {
		out.Items = toGenAISchema(n.Items)
	}
	if len(n.Required) > 0 {
		out.Required = append([]string(nil), n.Required...)
	}
	return out
}

func genAIType(k schemas.Kind) genai.Type {
	switch k {
	case schemas.KindObject:
		return genai.TypeObject
	case schemas.KindArray:
		return genai.TypeArray
	case schemas.KindInteger:
		return genai.TypeInteger
	default:
		return genai.TypeString
	}
}

func toLegacySchema(n *schemas.Node) *legacy.Schema {
	if n == nil {
		return nil
	}

	out := &legacy.Schema{
		Type:        legacyType(n.Kind),
		Description: n.Description,
		Nullable:    n.Nullable,
	}
	if len(n.Properties) > 0 {
		out.Properties = make(map[string]*legacy.Schema, len(n.Properties))
		for _, p := range n.Properties {
			out.Properties[p.Name] = toLegacySchema(p.Node)
		}
	}
	if n.Items != nil {
		out.Items = toLegacySchema(n.Items)
	}
	if len(n.Required) > 0 {
		out.Required = append([]string(nil), n.Required...)
	}
	return out
}

func legacyType(k schemas.Kind) legacy.Type {
	switch k {
	case schemas.KindObject:
		return legacy.TypeObject
	case schemas.KindArray:
		return legacy.TypeArray
	case schemas.KindInteger:
		return legacy.TypeInteger
	default:
		return legacy.TypeString
	}
}
