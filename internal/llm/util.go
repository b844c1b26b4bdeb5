package llm

import "strings"

// CleanJSONBlock pulls the JSON payload out of a model reply. Models wrap
// JSON in ```json fences or surround it with chatter even when told not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// drop a language tag such as "json" on the opening fence line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			tag := strings.TrimSpace(text[:idx])
			if len(tag) < 20 && !strings.ContainsAny(tag, " {[") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	if text == "" || text[0] == '{' || text[0] == '[' {
		if extracted := extractBalanced(text); extracted != "" {
			return extracted
		}
		return text
	}

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	if extracted := extractBalanced(text[start:]); extracted != "" {
		return extracted
	}
	return text
}

// extractBalanced returns the prefix of text up to the bracket closing its
// first character, skipping brackets inside string literals. It returns ""
// when the value never closes.
func extractBalanced(text string) string {
	if text == "" {
		return ""
	}
	open := text[0]
	var closer byte
	switch open {
	case '{':
		closer = '}'
	case '[':
		closer = ']'
	default:
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}
	return ""
}
