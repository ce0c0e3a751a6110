package opencode

import (
	"encoding/json"
	"fmt"

	"github.com/flowbaker/flowbaker-opencode/pkg/ai-sdk/types"
	"github.com/rs/xid"
)

// ToolCallParser extracts tool calls from reply text. The OpenCode API has no
// native tool-call channel, so models are instructed to emit calls as JSON
// objects inline and a parser recovers them.
type ToolCallParser interface {
	Parse(content string) []types.ToolCall
}

// JSONTextParser recognizes tool calls written as JSON objects of the form
// {"tool": "name", "args": {...}} anywhere in the reply text. Objects that do
// not parse, or that parse to something else, are left alone.
type JSONTextParser struct{}

// NewJSONTextParser creates the default tool call parser
func NewJSONTextParser() *JSONTextParser {
	return &JSONTextParser{}
}

type toolCallEnvelope struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args"`
}

// Parse scans the content for embedded tool call objects
func (p *JSONTextParser) Parse(content string) []types.ToolCall {
	var calls []types.ToolCall

	for i := 0; i < len(content); i++ {
		if content[i] != '{' {
			continue
		}

		end, ok := matchBraces(content, i)
		if !ok {
			continue
		}

		var envelope toolCallEnvelope

		candidate := content[i : end+1]
		if err := json.Unmarshal([]byte(candidate), &envelope); err != nil || envelope.Tool == "" {
			continue
		}

		args := envelope.Args
		if args == nil {
			args = map[string]any{}
		}

		calls = append(calls, types.ToolCall{
			ID:        fmt.Sprintf("call_%s", xid.New().String()),
			Name:      envelope.Tool,
			Arguments: args,
		})

		i = end
	}

	return calls
}

// matchBraces returns the index of the brace closing the one at start,
// skipping braces inside JSON string literals.
func matchBraces(content string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(content); i++ {
		c := content[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}

			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}

	return 0, false
}
