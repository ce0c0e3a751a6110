package opencode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextOf(t *testing.T) {
	parts := []Part{
		{Type: "text", Text: "  first"},
		{Type: "tool", Tool: "bash", State: &PartState{Output: "ignored"}},
		{Type: "text", Text: "second  "},
	}

	assert.Equal(t, "  first\nsecond  ", TextOf(parts, false))
	assert.Equal(t, "first\nsecond", TextOf(parts, true))
	assert.Equal(t, "", TextOf(nil, true))
}

func TestToolOutputOf(t *testing.T) {
	tests := []struct {
		name     string
		parts    []Part
		expected string
	}{
		{
			name: "state output",
			parts: []Part{
				{Type: "tool", State: &PartState{Output: "hello\n"}},
			},
			expected: "hello\n",
		},
		{
			name: "metadata fallback",
			parts: []Part{
				{Type: "tool", State: &PartState{Metadata: map[string]any{"output": "from metadata"}}},
			},
			expected: "from metadata",
		},
		{
			name: "output wins over metadata",
			parts: []Part{
				{Type: "tool", State: &PartState{
					Output:   "direct",
					Metadata: map[string]any{"output": "fallback"},
				}},
			},
			expected: "direct",
		},
		{
			name: "text parts ignored",
			parts: []Part{
				{Type: "text", Text: "not tool output"},
				{Type: "tool", State: &PartState{Output: "real"}},
			},
			expected: "real",
		},
		{
			name: "stateless tool part skipped",
			parts: []Part{
				{Type: "tool"},
			},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToolOutputOf(tt.parts))
		})
	}
}
