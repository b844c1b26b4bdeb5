package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock_MarkdownCodeBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"page_limit\": 1}\n```",
			expected: `{"page_limit": 1}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"page_limit\": 1}\n```",
			expected: `{"page_limit": 1}`,
		},
		{
			name:     "plain JSON",
			input:    `{"page_limit": 2}`,
			expected: `{"page_limit": 2}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "\n\n  {\"a\": 1}  \n",
			expected: `{"a": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestCleanJSONBlock_Chatter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "preamble before object",
			input:    "Here is the resume:\n{\"sections\": {}}",
			expected: `{"sections": {}}`,
		},
		{
			name:     "trailing text",
			input:    "{\"page_limit\": 1}\n\nLet me know if you need changes!",
			expected: `{"page_limit": 1}`,
		},
		{
			name:     "braces inside strings",
			input:    `Result: {"summary": "Built {things} and [stuff]"}`,
			expected: `{"summary": "Built {things} and [stuff]"}`,
		},
		{
			name:     "escaped quotes",
			input:    `Result: {"summary": "She said \"hi\" }"}`,
			expected: `{"summary": "She said \"hi\" }"}`,
		},
		{
			name:     "no JSON at all",
			input:    "I cannot help with that.",
			expected: "I cannot help with that.",
		},
		{
			name:     "unterminated object is left alone",
			input:    `{"page_limit": 1`,
			expected: `{"page_limit": 1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractBalanced(t *testing.T) {
	assert.Equal(t, `{"a": {"b": 1}}`, extractBalanced(`{"a": {"b": 1}} tail`))
	assert.Equal(t, `[[1, 2], [3]]`, extractBalanced(`[[1, 2], [3]] extra`))
	assert.Equal(t, `{"s": "}"}`, extractBalanced(`{"s": "}"}`))
	assert.Equal(t, "", extractBalanced("not json"))
	assert.Equal(t, "", extractBalanced(`{"open": `))
	assert.Equal(t, "", extractBalanced(""))
}
