package opencode

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/flowbaker/flowbaker-opencode/pkg/ai-sdk/types"
)

// toolInstructions renders the tool catalog as a system instruction teaching
// the model the inline JSON call convention that JSONTextParser recovers.
func toolInstructions(tools []types.Tool) string {
	var b strings.Builder

	b.WriteString("You have access to the following tools:\n\n")

	for _, t := range tools {
		fmt.Fprintf(&b, "- %s: %s\n", t.Name, t.Description)

		if t.Parameters != nil {
			if schema, err := json.Marshal(t.Parameters); err == nil {
				fmt.Fprintf(&b, "  parameters: %s\n", schema)
			}
		}
	}

	b.WriteString("\nTo call a tool, reply with a JSON object on its own line in the form ")
	b.WriteString(`{"tool": "name", "args": {...}}. `)
	b.WriteString("Reply with plain text when no tool is needed.")

	return b.String()
}
